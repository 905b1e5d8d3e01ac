package domain

import "time"

// Gender is the closed set of profile gender values.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is one of the known gender values.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// User represents an account in the identity store. PhoneNumber and Slug are
// immutable once the record is created.
type User struct {
	ID           uint
	PhoneNumber  string
	PasswordHash string
	FirstName    string
	LastName     string
	ProfileImage string
	Age          uint
	Gender       Gender
	Slug         string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	DateJoined   time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name, skipping an empty last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// OneTimePassword is a short-lived 6-digit passcode bound to a user.
// Validity is computed from CreatedAt at check time; there is no stored
// expiry column.
type OneTimePassword struct {
	ID        uint
	UserID    uint
	Passcode  string
	CreatedAt time.Time
}

// TokenPair is an access/refresh credential pair. RefreshID and
// RefreshExpiresAt identify the refresh token in the revocation registry.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshID        string
	RefreshExpiresAt time.Time
	ExpiresIn        int64
}

// AuthResult is the outcome of an operation that authenticates a user.
type AuthResult struct {
	User   *User
	Tokens *TokenPair
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// corresponding field untouched. The phone number is deliberately absent:
// it can never be updated.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	ProfileImage *string
	Age          *uint
	Gender       *Gender
}

// UserFilter narrows and pages a user listing.
type UserFilter struct {
	Search   string
	Gender   Gender
	Age      *uint
	Ordering string
	Page     int
	PageSize int
}

// TokenClaims represents the claims carried by issued JWTs.
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Slug      string `json:"slug"`
	IsStaff   bool   `json:"is_staff"`
	TokenID   string `json:"jti"`
	TokenType string `json:"typ"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
