package mocks

import (
	"context"
	"time"

	"github.com/Shaxzodbek16/clot/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc    func(ctx context.Context, user *domain.User, template domain.SMSTemplate, clearExisting bool) (*domain.OneTimePassword, error)
	ValidateFunc func(ctx context.Context, phone, code string) (*domain.User, error)
	ConsumeFunc  func(ctx context.Context, userID uint) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Issue(ctx context.Context, user *domain.User, template domain.SMSTemplate, clearExisting bool) (*domain.OneTimePassword, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, user, template, clearExisting)
	}
	return &domain.OneTimePassword{UserID: user.ID, Passcode: "123456", CreatedAt: time.Now()}, nil
}

func (m *MockOTPService) Validate(ctx context.Context, phone, code string) (*domain.User, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, phone, code)
	}
	return nil, domain.ErrOTPInvalidOrExpired
}

func (m *MockOTPService) Consume(ctx context.Context, userID uint) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, userID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
