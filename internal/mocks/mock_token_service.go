package mocks

import (
	"time"

	"github.com/Shaxzodbek16/clot/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssuePairFunc            func(user *domain.User) (*domain.TokenPair, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) IssuePair(user *domain.User) (*domain.TokenPair, error) {
	if m.IssuePairFunc != nil {
		return m.IssuePairFunc(user)
	}
	return &domain.TokenPair{
		AccessToken:      "access_token",
		RefreshToken:     "refresh_token",
		RefreshID:        "refresh_id",
		RefreshExpiresAt: time.Now().Add(time.Hour),
		ExpiresIn:        900,
	}, nil
}

func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
