package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shaxzodbek16/clot/domain"
)

// AuthMW wraps the token service for middleware
type AuthMW struct {
	tokenSvc domain.TokenService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc}
}

// WithJWT returns the JWT middleware function
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc)
}

// AuthMiddleware validates the bearer access token and stores its claims in
// the request context.
func AuthMiddleware(tokenSvc domain.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := BearerClaims(c, tokenSvc)
		if err != nil {
			switch err {
			case domain.ErrTokenExpired:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			case domain.ErrTokenMissing:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_slug", claims.Slug)
		c.Set("is_staff", claims.IsStaff)
		c.Next()
	}
}

// BearerClaims extracts and validates the access token from the
// Authorization header. Shared with handlers that authenticate inside an
// action dispatch rather than behind route middleware.
func BearerClaims(c *gin.Context, tokenSvc domain.TokenService) (*domain.TokenClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, domain.ErrTokenMissing
	}

	tokenParts := strings.SplitN(authHeader, " ", 2)
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, domain.ErrTokenMalformed
	}

	return tokenSvc.ValidateAccessToken(tokenParts[1])
}
