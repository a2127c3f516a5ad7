package model

import (
	"net/mail"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/saathi-app/saathi/pkg/domain/types"
)

// Profile is a user account record.
type Profile struct {
	UserID      types.UserID
	Email       string
	DisplayName string
	// PasswordHash is a bcrypt hash. Redacted from logs by the logging
	// filter; never serialized into API responses.
	PasswordHash []byte
	CreatedAt    time.Time
}

// Validate checks the profile invariants before persistence.
func (p *Profile) Validate() error {
	if err := p.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid profile user ID")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return goerr.Wrap(err, "invalid profile email", goerr.V("email", p.Email))
	}
	if len(p.PasswordHash) == 0 {
		return goerr.New("profile password hash is required")
	}
	return nil
}
