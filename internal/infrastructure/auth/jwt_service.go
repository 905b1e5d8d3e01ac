package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Shaxzodbek16/clot/domain"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

func (j *JWTServiceImpl) sign(user *domain.User, tokenType, jti string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"slug":     user.Slug,
		"is_staff": user.IsStaff,
		"typ":      tokenType,
		"iss":      j.issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
		"jti":      jti,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// IssuePair implements domain.TokenService. The refresh token's jti is
// returned so callers can register it in the revocation registry.
func (j *JWTServiceImpl) IssuePair(user *domain.User) (*domain.TokenPair, error) {
	access, err := j.sign(user, tokenTypeAccess, uuid.NewString(), j.accessTokenTTL)
	if err != nil {
		return nil, err
	}

	refreshID := uuid.NewString()
	refresh, err := j.sign(user, tokenTypeRefresh, refreshID, j.refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshID:        refreshID,
		RefreshExpiresAt: time.Now().Add(j.refreshTokenTTL),
		ExpiresIn:        int64(j.accessTokenTTL.Seconds()),
	}, nil
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, tokenTypeAccess)
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, tokenTypeRefresh)
}

// validateToken validates a JWT token and returns claims
func (j *JWTServiceImpl) validateToken(tokenString, wantType string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})

	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	slug, ok := claims["slug"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	tokenType, ok := claims["typ"].(string)
	if !ok || tokenType != wantType {
		return nil, domain.ErrTokenInvalid
	}

	jti, ok := claims["jti"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	isStaff, _ := claims["is_staff"].(bool)

	return &domain.TokenClaims{
		UserID:    uint(userID),
		Slug:      slug,
		IsStaff:   isStaff,
		TokenID:   jti,
		TokenType: tokenType,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
