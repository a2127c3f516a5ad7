package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/interfaces"
	"github.com/saathi-app/saathi/pkg/domain/model"
	"github.com/saathi-app/saathi/pkg/domain/model/auth"
	"github.com/saathi-app/saathi/pkg/domain/types"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// AuthUseCaseInterface abstracts authentication so the HTTP layer
// works with both real password auth and no-auth development mode.
type AuthUseCaseInterface interface {
	Signup(ctx context.Context, email, password, name string) (*auth.Token, error)
	Login(ctx context.Context, email, password string) (*auth.Token, error)
	ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error)
	Logout(ctx context.Context, tokenID auth.TokenID) error
	IsNoAuthn() bool
}

// AuthUseCase implements email/password authentication with
// server-side session tokens.
type AuthUseCase struct {
	repo  interfaces.Repository
	cache *authCache
}

var _ AuthUseCaseInterface = (*AuthUseCase)(nil)

func NewAuthUseCase(repo interfaces.Repository) *AuthUseCase {
	return &AuthUseCase{
		repo:  repo,
		cache: newAuthCache(),
	}
}

// IsNoAuthn returns false for regular AuthUseCase
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

// Signup registers a new account and issues a session token.
func (uc *AuthUseCase) Signup(ctx context.Context, email, password, name string) (*auth.Token, error) {
	email = strings.TrimSpace(email)
	if len(password) < minPasswordLength {
		return nil, goerr.Wrap(ErrInvalidInput, "password is too short",
			goerr.V("minLength", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	profile := &model.Profile{
		UserID:       types.NewUserID(),
		Email:        email,
		DisplayName:  name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}

	if _, err := uc.repo.Profile().GetByEmail(ctx, email); err == nil {
		return nil, goerr.Wrap(ErrEmailTaken, "signup rejected", goerr.V("email", email))
	}

	created, err := uc.repo.Profile().Create(ctx, profile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create profile")
	}

	return uc.issueToken(ctx, created)
}

// Login verifies credentials and issues a session token.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*auth.Token, error) {
	profile, err := uc.repo.Profile().GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		// Same error for unknown email and bad password.
		return nil, goerr.Wrap(ErrInvalidCredential, "login rejected")
	}

	if err := bcrypt.CompareHashAndPassword(profile.PasswordHash, []byte(password)); err != nil {
		return nil, goerr.Wrap(ErrInvalidCredential, "login rejected")
	}

	return uc.issueToken(ctx, profile)
}

func (uc *AuthUseCase) issueToken(ctx context.Context, profile *model.Profile) (*auth.Token, error) {
	token := auth.NewToken(profile.UserID.String(), profile.Email, profile.DisplayName)
	if err := uc.repo.PutToken(ctx, token); err != nil {
		return nil, goerr.Wrap(err, "failed to store token")
	}
	return token, nil
}

// ValidateToken validates the token pair and returns the session.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	return uc.validateTokenWithCache(ctx, tokenID, tokenSecret)
}

// Logout deletes the session token.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	uc.cache.remove(tokenID)
	return uc.repo.DeleteToken(ctx, tokenID)
}
