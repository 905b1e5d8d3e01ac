package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/Shaxzodbek16/clot/domain"
)

// OTPServiceImpl implements domain.OTPService on top of the durable ledger.
// Expiry is computed lazily at validation time; nothing sweeps old rows.
type OTPServiceImpl struct {
	otpRepo         domain.OTPRepository
	notificationSvc domain.NotificationService
	ttl             time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OTPRepository, notificationSvc domain.NotificationService, ttl time.Duration) domain.OTPService {
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		ttl:             ttl,
	}
}

// Issue implements domain.OTPService. SMS delivery is fire-and-forget: a
// gateway failure is logged for operators but never fails the issuance.
func (s *OTPServiceImpl) Issue(ctx context.Context, user *domain.User, template domain.SMSTemplate, clearExisting bool) (*domain.OneTimePassword, error) {
	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate passcode: %w", err)
	}

	var otp *domain.OneTimePassword
	if clearExisting {
		otp, err = s.otpRepo.Replace(ctx, user.ID, code)
	} else {
		otp, err = s.otpRepo.Add(ctx, user.ID, code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to persist passcode: %w", err)
	}

	params := map[string]string{"name": user.FirstName, "code": code}
	if err := s.notificationSvc.Send(user.PhoneNumber, template, params); err != nil {
		log.Printf("%s", domain.NewAuditEvent(domain.SMSDeliveryFailedEvent, user.ID).WithPhone(user.PhoneNumber).WithError(err))
	}

	log.Printf("%s", domain.NewAuditEvent(domain.OTPIssuedEvent, user.ID).WithPhone(user.PhoneNumber))
	return otp, nil
}

// Validate implements domain.OTPService
func (s *OTPServiceImpl) Validate(ctx context.Context, phone, code string) (*domain.User, error) {
	cutoff := time.Now().Add(-s.ttl)
	return s.otpRepo.FindValid(ctx, phone, code, cutoff)
}

// Consume implements domain.OTPService
func (s *OTPServiceImpl) Consume(ctx context.Context, userID uint) error {
	return s.otpRepo.DeleteAllForUser(ctx, userID)
}

// generateCode produces a uniformly random 6-digit passcode in
// [100000, 999999]. Collisions across users are permitted.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
