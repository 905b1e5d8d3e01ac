package repositories

import (
	"time"

	"github.com/Shaxzodbek16/clot/domain"
)

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint      `gorm:"primaryKey"`
	PhoneNumber  string    `gorm:"uniqueIndex;size:13"`
	PasswordHash string    `gorm:"column:password"`
	FirstName    string    `gorm:"size:150"`
	LastName     string    `gorm:"size:150"`
	ProfileImage string    `gorm:"size:255"`
	Age          uint      `gorm:"default:0"`
	Gender       string    `gorm:"size:6;default:male"`
	Slug         string    `gorm:"uniqueIndex;size:160"`
	IsActive     bool      `gorm:"index"`
	IsStaff      bool
	IsSuperuser  bool
	DateJoined   time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// DBOneTimePassword represents the database model for OneTimePassword.
// Rows cascade-delete with the owning user.
type DBOneTimePassword struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	User      DBUser    `gorm:"constraint:OnDelete:CASCADE"`
	Passcode  string    `gorm:"size:6"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBOneTimePassword) TableName() string {
	return "otp"
}

func userToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:           user.ID,
		PhoneNumber:  user.PhoneNumber,
		PasswordHash: user.PasswordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		ProfileImage: user.ProfileImage,
		Age:          user.Age,
		Gender:       string(user.Gender),
		Slug:         user.Slug,
		IsActive:     user.IsActive,
		IsStaff:      user.IsStaff,
		IsSuperuser:  user.IsSuperuser,
		DateJoined:   user.DateJoined,
		UpdatedAt:    user.UpdatedAt,
	}
}

func userToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		PhoneNumber:  dbUser.PhoneNumber,
		PasswordHash: dbUser.PasswordHash,
		FirstName:    dbUser.FirstName,
		LastName:     dbUser.LastName,
		ProfileImage: dbUser.ProfileImage,
		Age:          dbUser.Age,
		Gender:       domain.Gender(dbUser.Gender),
		Slug:         dbUser.Slug,
		IsActive:     dbUser.IsActive,
		IsStaff:      dbUser.IsStaff,
		IsSuperuser:  dbUser.IsSuperuser,
		DateJoined:   dbUser.DateJoined,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}

func otpToDomain(dbOTP *DBOneTimePassword) *domain.OneTimePassword {
	return &domain.OneTimePassword{
		ID:        dbOTP.ID,
		UserID:    dbOTP.UserID,
		Passcode:  dbOTP.Passcode,
		CreatedAt: dbOTP.CreatedAt,
	}
}
