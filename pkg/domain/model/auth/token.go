package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// TokenID identifies a session token.
type TokenID string

// TokenSecret is the secret half of a session token pair. It is matched
// against the stored secret on every authenticated request.
type TokenSecret string

// NewTokenID generates a new random token ID.
func NewTokenID() TokenID {
	return TokenID(uuid.New().String())
}

// NewTokenSecret generates a new random token secret.
func NewTokenSecret() TokenSecret {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic(err)
	}
	return TokenSecret(hex.EncodeToString(buf))
}

func (id TokenID) String() string {
	return string(id)
}

func (id TokenID) Validate() error {
	if id == "" {
		return goerr.New("token ID is empty")
	}
	return nil
}

func (s TokenSecret) String() string {
	return string(s)
}

// Match reports whether the presented secret equals the stored one. The
// comparison is constant-time so latency does not leak secret prefixes.
func (s TokenSecret) Match(presented TokenSecret) bool {
	return subtle.ConstantTimeCompare([]byte(s), []byte(presented)) == 1
}

// TokenTTL is how long a session token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// Token is a server-side session record. The (ID, Secret) pair is handed to
// the browser as a cookie pair and validated against this record.
type Token struct {
	ID        TokenID
	Secret    TokenSecret
	Sub       string // user ID
	Email     string
	Name      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewToken issues a fresh session token for the given user identity.
func NewToken(sub, email, name string) *Token {
	now := time.Now().UTC()
	return &Token{
		ID:        NewTokenID(),
		Secret:    NewTokenSecret(),
		Sub:       sub,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(TokenTTL),
	}
}

// Validate checks the token shape before persistence.
func (t *Token) Validate() error {
	if err := t.ID.Validate(); err != nil {
		return err
	}
	if t.Secret == "" {
		return goerr.New("token secret is empty")
	}
	if t.Sub == "" {
		return goerr.New("token subject is empty")
	}
	if t.ExpiresAt.IsZero() {
		return goerr.New("token expiry is not set")
	}
	return nil
}

// IsExpired reports whether the token has passed its expiry.
func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// AnonymousSub is the fixed subject used when authentication is disabled.
const AnonymousSub = "anonymous"

// NewAnonymousUser returns the fixed token used in no-auth development mode.
func NewAnonymousUser() *Token {
	now := time.Now().UTC()
	return &Token{
		ID:        TokenID("anonymous"),
		Secret:    TokenSecret("anonymous"),
		Sub:       AnonymousSub,
		Email:     "anonymous@localhost",
		Name:      "Anonymous",
		CreatedAt: now,
		ExpiresAt: now.Add(TokenTTL),
	}
}

type ctxKey struct{}

// ContextWithToken embeds the token into the context.
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// TokenFromContext extracts the token placed by the auth middleware.
func TokenFromContext(ctx context.Context) (*Token, bool) {
	token, ok := ctx.Value(ctxKey{}).(*Token)
	return token, ok
}
