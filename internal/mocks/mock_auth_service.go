package mocks

import (
	"context"

	"github.com/Shaxzodbek16/clot/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc          func(ctx context.Context, phone, password, firstName string) (*domain.User, error)
	VerifyOTPFunc         func(ctx context.Context, phone, code string) (*domain.AuthResult, error)
	CompleteProfileFunc   func(ctx context.Context, slug string, age uint, gender domain.Gender) (*domain.User, error)
	LoginFunc             func(ctx context.Context, phone, password string) (*domain.AuthResult, error)
	ForgotPasswordFunc    func(ctx context.Context, phone string) (*domain.User, error)
	ResetPasswordFunc     func(ctx context.Context, phone, code, newPassword string) (*domain.AuthResult, error)
	LogoutFunc            func(ctx context.Context, refreshToken string) error
	LogoutAllFunc         func(ctx context.Context, userID uint) error
	RefreshFunc           func(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	GetProfileFunc        func(ctx context.Context, userID uint) (*domain.User, error)
	UpdateProfileFunc     func(ctx context.Context, user *domain.User, update domain.ProfileUpdate) (*domain.User, error)
	DeactivateAccountFunc func(ctx context.Context, userID uint) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, phone, password, firstName string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, phone, password, firstName)
	}
	return &domain.User{PhoneNumber: phone, FirstName: firstName, Slug: "test-slug"}, nil
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, phone, code)
	}
	return nil, domain.ErrOTPInvalidOrExpired
}

func (m *MockAuthService) CompleteProfile(ctx context.Context, slug string, age uint, gender domain.Gender) (*domain.User, error) {
	if m.CompleteProfileFunc != nil {
		return m.CompleteProfileFunc(ctx, slug, age, gender)
	}
	return nil, domain.ErrNotFound
}

func (m *MockAuthService) Login(ctx context.Context, phone, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, phone, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, phone string) (*domain.User, error) {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, phone)
	}
	return nil, domain.ErrNotFound
}

func (m *MockAuthService) ResetPassword(ctx context.Context, phone, code, newPassword string) (*domain.AuthResult, error) {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, phone, code, newPassword)
	}
	return nil, domain.ErrOTPInvalidOrExpired
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

func (m *MockAuthService) LogoutAll(ctx context.Context, userID uint) error {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, userID)
	}
	return nil
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, user *domain.User, update domain.ProfileUpdate) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, user, update)
	}
	return user, nil
}

func (m *MockAuthService) DeactivateAccount(ctx context.Context, userID uint) error {
	if m.DeactivateAccountFunc != nil {
		return m.DeactivateAccountFunc(ctx, userID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
