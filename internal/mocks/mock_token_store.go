package mocks

import (
	"context"
	"time"

	"github.com/Shaxzodbek16/clot/domain"
)

// MockTokenStore implements domain.TokenStore interface for testing
type MockTokenStore struct {
	RegisterFunc  func(ctx context.Context, userID uint, tokenID string, expiresAt time.Time) error
	RevokeFunc    func(ctx context.Context, userID uint, tokenID string, expiresAt time.Time) error
	RevokeAllFunc func(ctx context.Context, userID uint) (int, error)
	IsRevokedFunc func(ctx context.Context, tokenID string) (bool, error)
}

// NewMockTokenStore creates a new MockTokenStore with default behaviors
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{}
}

func (m *MockTokenStore) Register(ctx context.Context, userID uint, tokenID string, expiresAt time.Time) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, userID, tokenID, expiresAt)
	}
	return nil
}

func (m *MockTokenStore) Revoke(ctx context.Context, userID uint, tokenID string, expiresAt time.Time) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, userID, tokenID, expiresAt)
	}
	return nil
}

func (m *MockTokenStore) RevokeAll(ctx context.Context, userID uint) (int, error) {
	if m.RevokeAllFunc != nil {
		return m.RevokeAllFunc(ctx, userID)
	}
	return 0, nil
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if m.IsRevokedFunc != nil {
		return m.IsRevokedFunc(ctx, tokenID)
	}
	return false, nil
}

// Compile-time interface compliance verification
var _ domain.TokenStore = (*MockTokenStore)(nil)
