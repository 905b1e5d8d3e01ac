package domain

import (
	"context"
	"time"
)

// UserRepository defines identity store data access. Create assigns the
// user's slug as an explicit step, probing numeric suffixes until unique.
// Operations that pair a user transition with OTP cleanup run in a single
// atomic unit so a concurrent reader never observes a half-applied state.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindBySlug(ctx context.Context, slug string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Update(ctx context.Context, user *User) error
	// ActivateAndClearOTPs flips is_active to true and deletes every
	// outstanding passcode for the user, atomically.
	ActivateAndClearOTPs(ctx context.Context, userID uint) error
	// ResetPasswordAndClearOTPs replaces the password hash and deletes every
	// outstanding passcode for the user, atomically.
	ResetPasswordAndClearOTPs(ctx context.Context, userID uint, passwordHash string) error
	Deactivate(ctx context.Context, userID uint) error
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)
}

// OTPRepository defines the durable passcode ledger.
type OTPRepository interface {
	// Add persists a new passcode alongside any existing ones.
	Add(ctx context.Context, userID uint, code string) (*OneTimePassword, error)
	// Replace deletes the user's existing passcodes and persists a new one
	// in a single atomic unit.
	Replace(ctx context.Context, userID uint, code string) (*OneTimePassword, error)
	// FindValid returns the owning user if an un-expired matching passcode
	// exists for the given phone number; ErrOTPInvalidOrExpired otherwise.
	FindValid(ctx context.Context, phone, code string, createdAfter time.Time) (*User, error)
	// DeleteAllForUser removes every passcode for the user; no-op when none exist.
	DeleteAllForUser(ctx context.Context, userID uint) error
	CountForUser(ctx context.Context, userID uint) (int64, error)
}

// AuthService defines the credential lifecycle operations.
type AuthService interface {
	Register(ctx context.Context, phone, password, firstName string) (*User, error)
	VerifyOTP(ctx context.Context, phone, code string) (*AuthResult, error)
	CompleteProfile(ctx context.Context, slug string, age uint, gender Gender) (*User, error)
	Login(ctx context.Context, phone, password string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, phone string) (*User, error)
	ResetPassword(ctx context.Context, phone, code, newPassword string) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	LogoutAll(ctx context.Context, userID uint) error
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	GetProfile(ctx context.Context, userID uint) (*User, error)
	UpdateProfile(ctx context.Context, user *User, update ProfileUpdate) (*User, error)
	DeactivateAccount(ctx context.Context, userID uint) error
}

// OTPService defines passcode ledger business logic.
type OTPService interface {
	// Issue generates a passcode for the user, persists it and dispatches it
	// through the notification gateway with the given template. When
	// clearExisting is set, prior passcodes are removed in the same atomic
	// unit as the insert.
	Issue(ctx context.Context, user *User, template SMSTemplate, clearExisting bool) (*OneTimePassword, error)
	// Validate returns the owning user for an un-expired matching passcode.
	Validate(ctx context.Context, phone, code string) (*User, error)
	// Consume removes every passcode for the user; idempotent.
	Consume(ctx context.Context, userID uint) error
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService mints and validates signed session credentials.
type TokenService interface {
	IssuePair(user *User) (*TokenPair, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// TokenStore tracks outstanding refresh tokens and a revocation list.
// RevokeAll is best-effort: partial revocation is preferable to blocking.
type TokenStore interface {
	Register(ctx context.Context, userID uint, tokenID string, expiresAt time.Time) error
	Revoke(ctx context.Context, userID uint, tokenID string, expiresAt time.Time) error
	RevokeAll(ctx context.Context, userID uint) (int, error)
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// SMSTemplate names a notification message template.
type SMSTemplate string

const (
	SMSTemplateRegistration   SMSTemplate = "registration"
	SMSTemplateForgotPassword SMSTemplate = "forgot_password"
)

// NotificationService delivers a templated message to a phone number.
// Delivery failures are logged by callers, never propagated to the request
// that triggered them.
type NotificationService interface {
	Send(phone string, template SMSTemplate, params map[string]string) error
}
