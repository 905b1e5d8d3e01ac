package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Shaxzodbek16/clot/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using GORM
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTP ledger repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Add implements domain.OTPRepository
func (r *OTPRepositoryImpl) Add(ctx context.Context, userID uint, code string) (*domain.OneTimePassword, error) {
	dbOTP := &DBOneTimePassword{UserID: userID, Passcode: code}
	if err := r.db.WithContext(ctx).Create(dbOTP).Error; err != nil {
		return nil, err
	}
	return otpToDomain(dbOTP), nil
}

// Replace implements domain.OTPRepository. Delete and insert share one
// transaction so no window exists where the user has zero or duplicate
// outstanding registration codes.
func (r *OTPRepositoryImpl) Replace(ctx context.Context, userID uint, code string) (*domain.OneTimePassword, error) {
	dbOTP := &DBOneTimePassword{UserID: userID, Passcode: code}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&DBOneTimePassword{}).Error; err != nil {
			return err
		}
		return tx.Create(dbOTP).Error
	})
	if err != nil {
		return nil, err
	}
	return otpToDomain(dbOTP), nil
}

// FindValid implements domain.OTPRepository. A single sentinel covers wrong
// code, expired code and unknown phone number alike.
func (r *OTPRepositoryImpl) FindValid(ctx context.Context, phone, code string, createdAfter time.Time) (*domain.User, error) {
	var dbOTP DBOneTimePassword
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = otp.user_id").
		Where("users.phone_number = ? AND otp.passcode = ? AND otp.created_at >= ?", phone, code, createdAfter).
		Order("otp.created_at DESC").
		First(&dbOTP).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPInvalidOrExpired
		}
		return nil, err
	}

	var dbUser DBUser
	if err := r.db.WithContext(ctx).Where("id = ?", dbOTP.UserID).First(&dbUser).Error; err != nil {
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// DeleteAllForUser implements domain.OTPRepository; no-op when none exist.
func (r *OTPRepositoryImpl) DeleteAllForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&DBOneTimePassword{}).Error
}

// CountForUser implements domain.OTPRepository
func (r *OTPRepositoryImpl) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBOneTimePassword{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
