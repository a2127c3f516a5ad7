package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/saathi-app/saathi/pkg/domain/model/auth"
)

func TestNewToken(t *testing.T) {
	token := auth.NewToken("user-1", "u@example.com", "U")

	gt.NoError(t, token.Validate()).Required()
	gt.Value(t, token.Sub).Equal("user-1")
	gt.Bool(t, token.IsExpired()).False()
	gt.Bool(t, token.ExpiresAt.After(token.CreatedAt)).True()

	other := auth.NewToken("user-1", "u@example.com", "U")
	gt.Value(t, token.ID).NotEqual(other.ID)
	gt.Value(t, token.Secret).NotEqual(other.Secret)
}

func TestTokenValidate(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		token := auth.NewToken("user-1", "u@example.com", "U")
		token.Secret = ""
		gt.Value(t, token.Validate()).NotNil()
	})

	t.Run("missing subject", func(t *testing.T) {
		token := auth.NewToken("", "u@example.com", "U")
		gt.Value(t, token.Validate()).NotNil()
	})
}

func TestTokenSecretMatch(t *testing.T) {
	secret := auth.NewTokenSecret()

	gt.Bool(t, secret.Match(secret)).True()
	gt.Bool(t, secret.Match(auth.NewTokenSecret())).False()
	gt.Bool(t, secret.Match("")).False()
	gt.Bool(t, auth.TokenSecret("").Match("")).True()
}

func TestTokenExpiry(t *testing.T) {
	token := auth.NewToken("user-1", "u@example.com", "U")
	token.ExpiresAt = time.Now().Add(-time.Minute)
	gt.Bool(t, token.IsExpired()).True()
}

func TestTokenContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		token := auth.NewToken("user-1", "u@example.com", "U")
		ctx := auth.ContextWithToken(context.Background(), token)

		got, ok := auth.TokenFromContext(ctx)
		gt.Bool(t, ok).True()
		gt.Value(t, got.Sub).Equal("user-1")
	})

	t.Run("absent", func(t *testing.T) {
		_, ok := auth.TokenFromContext(context.Background())
		gt.Bool(t, ok).False()
	})
}
