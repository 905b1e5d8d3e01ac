package mocks

import (
	"context"

	"github.com/Shaxzodbek16/clot/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc                    func(ctx context.Context, user *domain.User) error
	FindByPhoneFunc               func(ctx context.Context, phone string) (*domain.User, error)
	FindBySlugFunc                func(ctx context.Context, slug string) (*domain.User, error)
	FindByIDFunc                  func(ctx context.Context, id uint) (*domain.User, error)
	ExistsByPhoneFunc             func(ctx context.Context, phone string) (bool, error)
	UpdateFunc                    func(ctx context.Context, user *domain.User) error
	ActivateAndClearOTPsFunc      func(ctx context.Context, userID uint) error
	ResetPasswordAndClearOTPsFunc func(ctx context.Context, userID uint, passwordHash string) error
	DeactivateFunc                func(ctx context.Context, userID uint) error
	ListFunc                      func(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success with a deterministic slug
	user.ID = 1
	user.Slug = "998901234567-" + user.FirstName
	return nil
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepository) FindBySlug(ctx context.Context, slug string) (*domain.User, error) {
	if m.FindBySlugFunc != nil {
		return m.FindBySlugFunc(ctx, slug)
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	if m.ExistsByPhoneFunc != nil {
		return m.ExistsByPhoneFunc(ctx, phone)
	}
	return false, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) ActivateAndClearOTPs(ctx context.Context, userID uint) error {
	if m.ActivateAndClearOTPsFunc != nil {
		return m.ActivateAndClearOTPsFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) ResetPasswordAndClearOTPs(ctx context.Context, userID uint, passwordHash string) error {
	if m.ResetPasswordAndClearOTPsFunc != nil {
		return m.ResetPasswordAndClearOTPsFunc(ctx, userID, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) Deactivate(ctx context.Context, userID uint) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
