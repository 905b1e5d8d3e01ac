package domain

import "errors"

// Validation and lookup errors
var (
	ErrValidation = errors.New("validation failed")
	ErrPhoneTaken = errors.New("a user with this phone number already exists")
	ErrNotFound   = errors.New("not found")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("user account is not active")
)

// OTP errors. Wrong code, expired code and unknown user deliberately share a
// single sentinel so callers cannot tell which part failed.
var (
	ErrOTPInvalidOrExpired = errors.New("invalid or expired OTP")
)

// Dispatch errors
var (
	ErrInvalidAction = errors.New("invalid action")
)

// Token errors
var (
	ErrTokenMissing   = errors.New("refresh token is required")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenRevoked   = errors.New("token has been revoked")
)
