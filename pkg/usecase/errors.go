package usecase

import "errors"

// Sentinel errors for the use case layer. The HTTP controller maps
// these to status codes.
var (
	// Validation errors (-> 400)
	ErrEmptyMessage = errors.New("message is required")
	ErrInvalidMood  = errors.New("invalid mood entry")
	ErrInvalidInput = errors.New("invalid input")

	// Authentication errors (-> 401)
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrTokenInvalid      = errors.New("token is invalid or expired")

	// Conflict errors (-> 409)
	ErrEmailTaken = errors.New("email is already registered")
)
