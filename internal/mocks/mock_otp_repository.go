package mocks

import (
	"context"
	"time"

	"github.com/Shaxzodbek16/clot/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing
type MockOTPRepository struct {
	AddFunc              func(ctx context.Context, userID uint, code string) (*domain.OneTimePassword, error)
	ReplaceFunc          func(ctx context.Context, userID uint, code string) (*domain.OneTimePassword, error)
	FindValidFunc        func(ctx context.Context, phone, code string, createdAfter time.Time) (*domain.User, error)
	DeleteAllForUserFunc func(ctx context.Context, userID uint) error
	CountForUserFunc     func(ctx context.Context, userID uint) (int64, error)
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

func (m *MockOTPRepository) Add(ctx context.Context, userID uint, code string) (*domain.OneTimePassword, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, userID, code)
	}
	return &domain.OneTimePassword{UserID: userID, Passcode: code, CreatedAt: time.Now()}, nil
}

func (m *MockOTPRepository) Replace(ctx context.Context, userID uint, code string) (*domain.OneTimePassword, error) {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, userID, code)
	}
	return &domain.OneTimePassword{UserID: userID, Passcode: code, CreatedAt: time.Now()}, nil
}

func (m *MockOTPRepository) FindValid(ctx context.Context, phone, code string, createdAfter time.Time) (*domain.User, error) {
	if m.FindValidFunc != nil {
		return m.FindValidFunc(ctx, phone, code, createdAfter)
	}
	return nil, domain.ErrOTPInvalidOrExpired
}

func (m *MockOTPRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	if m.DeleteAllForUserFunc != nil {
		return m.DeleteAllForUserFunc(ctx, userID)
	}
	return nil
}

func (m *MockOTPRepository) CountForUser(ctx context.Context, userID uint) (int64, error) {
	if m.CountForUserFunc != nil {
		return m.CountForUserFunc(ctx, userID)
	}
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.OTPRepository = (*MockOTPRepository)(nil)
