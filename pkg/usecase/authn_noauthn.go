package usecase

import (
	"context"

	"github.com/saathi-app/saathi/pkg/domain/model/auth"
)

// NoAuthnUseCase skips authentication and binds every request to a
// fixed anonymous user. Development only.
type NoAuthnUseCase struct{}

var _ AuthUseCaseInterface = (*NoAuthnUseCase)(nil)

func NewNoAuthnUseCase() *NoAuthnUseCase {
	return &NoAuthnUseCase{}
}

func (uc *NoAuthnUseCase) Signup(ctx context.Context, email, password, name string) (*auth.Token, error) {
	return auth.NewAnonymousUser(), nil
}

func (uc *NoAuthnUseCase) Login(ctx context.Context, email, password string) (*auth.Token, error) {
	return auth.NewAnonymousUser(), nil
}

func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	return auth.NewAnonymousUser(), nil
}

func (uc *NoAuthnUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	return nil
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
