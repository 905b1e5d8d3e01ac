package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/Shaxzodbek16/clot/domain"
)

// AuthServiceImpl implements domain.AuthService. It orchestrates the
// identity store, OTP ledger, token issuer and notification gateway into
// the registration/verification/login/reset/logout protocols.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	otpSvc      domain.OTPService
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	tokenStore  domain.TokenStore
	phoneRe     *regexp.Regexp
	passwordMin int

	// dummyHash is compared against for unknown phone numbers so login
	// latency does not reveal whether an account exists.
	dummyHash string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	otpSvc domain.OTPService,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	tokenStore domain.TokenStore,
	phoneRe *regexp.Regexp,
	passwordMinLength int,
) (domain.AuthService, error) {
	dummy, err := passwordSvc.Hash("decoy-password-for-unknown-users")
	if err != nil {
		return nil, fmt.Errorf("failed to precompute decoy hash: %w", err)
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		otpSvc:      otpSvc,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		tokenStore:  tokenStore,
		phoneRe:     phoneRe,
		passwordMin: passwordMinLength,
		dummyHash:   dummy,
	}, nil
}

// Register implements domain.AuthService. The new user starts inactive and
// receives a registration passcode; any passcodes left over from a previous
// attempt are cleared in the same atomic unit.
func (s *AuthServiceImpl) Register(ctx context.Context, phone, password, firstName string) (*domain.User, error) {
	if !s.phoneRe.MatchString(phone) {
		return nil, fmt.Errorf("%w: invalid phone number format", domain.ErrValidation)
	}
	if len(password) < s.passwordMin {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", domain.ErrValidation, s.passwordMin)
	}
	if firstName == "" {
		return nil, fmt.Errorf("%w: first name is required", domain.ErrValidation)
	}

	taken, err := s.userRepo.ExistsByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check phone number: %w", err)
	}
	if taken {
		return nil, domain.ErrPhoneTaken
	}

	hash, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		PhoneNumber:  phone,
		PasswordHash: hash,
		FirstName:    firstName,
		Gender:       domain.GenderMale,
		IsActive:     false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.otpSvc.Issue(ctx, user, domain.SMSTemplateRegistration, true); err != nil {
		return nil, err
	}

	log.Printf("%s", domain.NewAuditEvent(domain.UserRegisteredEvent, user.ID).WithPhone(user.PhoneNumber))
	return user, nil
}

// VerifyOTP implements domain.AuthService. Activation and passcode cleanup
// happen atomically; a token pair is only issued afterwards.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	user, err := s.otpSvc.Validate(ctx, phone, code)
	if err != nil {
		log.Printf("%s", domain.NewAuditEvent(domain.OTPVerifyFailedEvent, 0).WithPhone(phone).WithError(err))
		return nil, err
	}

	if err := s.userRepo.ActivateAndClearOTPs(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}
	user.IsActive = true

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("%s", domain.NewAuditEvent(domain.UserActivatedEvent, user.ID).WithPhone(user.PhoneNumber))
	return &domain.AuthResult{User: user, Tokens: tokens}, nil
}

// CompleteProfile implements domain.AuthService
func (s *AuthServiceImpl) CompleteProfile(ctx context.Context, slug string, age uint, gender domain.Gender) (*domain.User, error) {
	if !gender.Valid() {
		return nil, fmt.Errorf("%w: gender must be male or female", domain.ErrValidation)
	}

	user, err := s.userRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	user.Age = age
	user.Gender = gender
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// Login implements domain.AuthService. Unknown phone and wrong password
// share one error; the decoy comparison keeps latency comparable for both.
func (s *AuthServiceImpl) Login(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.passwordSvc.Verify(s.dummyHash, password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		log.Printf("%s", domain.NewAuditEvent(domain.UserLoginFailedEvent, user.ID).WithPhone(phone).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("%s", domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithPhone(phone))
	return &domain.AuthResult{User: user, Tokens: tokens}, nil
}

// ForgotPassword implements domain.AuthService. Unlike registration, prior
// passcodes are kept: several may be valid within their own windows.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, phone string) (*domain.User, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	if _, err := s.otpSvc.Issue(ctx, user, domain.SMSTemplateForgotPassword, false); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword implements domain.AuthService. Activation state is not
// required: an unverified account may reset its password via OTP.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, phone, code, newPassword string) (*domain.AuthResult, error) {
	if len(newPassword) < s.passwordMin {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", domain.ErrValidation, s.passwordMin)
	}

	user, err := s.otpSvc.Validate(ctx, phone, code)
	if err != nil {
		log.Printf("%s", domain.NewAuditEvent(domain.OTPVerifyFailedEvent, 0).WithPhone(phone).WithError(err))
		return nil, err
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.ResetPasswordAndClearOTPs(ctx, user.ID, hash); err != nil {
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}
	user.PasswordHash = hash

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("%s", domain.NewAuditEvent(domain.PasswordResetEvent, user.ID).WithPhone(phone))
	return &domain.AuthResult{User: user, Tokens: tokens}, nil
}

// Logout implements domain.AuthService by revoking the presented refresh token.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domain.ErrTokenMissing
	}

	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return domain.ErrTokenInvalid
	}

	revoked, err := s.tokenStore.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return fmt.Errorf("failed to check revocation list: %w", err)
	}
	if revoked {
		return domain.ErrTokenInvalid
	}

	if err := s.tokenStore.Revoke(ctx, claims.UserID, claims.TokenID, time.Unix(claims.ExpiresAt, 0)); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	log.Printf("%s", domain.NewAuditEvent(domain.UserLogoutEvent, claims.UserID))
	return nil
}

// LogoutAll implements domain.AuthService. Revocation is best-effort over
// the outstanding tokens; partial revocation beats blocking.
func (s *AuthServiceImpl) LogoutAll(ctx context.Context, userID uint) error {
	n, err := s.tokenStore.RevokeAll(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke all tokens (revoked %d): %w", n, err)
	}
	log.Printf("%s", domain.NewAuditEvent(domain.UserLogoutAllEvent, userID))
	return nil
}

// Refresh implements domain.AuthService. Tokens rotate: the presented
// refresh token is revoked and a fresh pair is issued.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrTokenMissing
	}

	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		log.Printf("%s", domain.NewAuditEvent(domain.TokenRefreshFailedEvent, 0).WithError(err))
		return nil, err
	}

	revoked, err := s.tokenStore.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation list: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	if err := s.tokenStore.Revoke(ctx, claims.UserID, claims.TokenID, time.Unix(claims.ExpiresAt, 0)); err != nil {
		return nil, fmt.Errorf("failed to rotate token: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("%s", domain.NewAuditEvent(domain.TokenRefreshEvent, user.ID))
	return tokens, nil
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateProfile implements domain.AuthService. Phone number and slug stay
// untouched regardless of input.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, user *domain.User, update domain.ProfileUpdate) (*domain.User, error) {
	if update.Gender != nil && !update.Gender.Valid() {
		return nil, fmt.Errorf("%w: gender must be male or female", domain.ErrValidation)
	}
	if update.FirstName != nil {
		if *update.FirstName == "" {
			return nil, fmt.Errorf("%w: first name is required", domain.ErrValidation)
		}
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.ProfileImage != nil {
		user.ProfileImage = *update.ProfileImage
	}
	if update.Age != nil {
		user.Age = *update.Age
	}
	if update.Gender != nil {
		user.Gender = *update.Gender
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// DeactivateAccount implements domain.AuthService; soft delete plus
// best-effort revocation of outstanding tokens.
func (s *AuthServiceImpl) DeactivateAccount(ctx context.Context, userID uint) error {
	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}
	if _, err := s.tokenStore.RevokeAll(ctx, userID); err != nil {
		log.Printf("%s", domain.NewAuditEvent(domain.UserDeactivatedEvent, userID).WithError(err))
		return nil
	}
	log.Printf("%s", domain.NewAuditEvent(domain.UserDeactivatedEvent, userID))
	return nil
}

// issueTokens mints a pair and registers the refresh token in the registry.
func (s *AuthServiceImpl) issueTokens(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	tokens, err := s.tokenSvc.IssuePair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}
	if err := s.tokenStore.Register(ctx, user.ID, tokens.RefreshID, tokens.RefreshExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to register refresh token: %w", err)
	}
	return tokens, nil
}
