package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shaxzodbek16/clot/domain"
	"github.com/Shaxzodbek16/clot/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(tokenSvc domain.TokenService) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokenSvc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.GetUint("user_id"),
			"user_slug": c.GetString("user_slug"),
			"is_staff":  c.GetBool("is_staff"),
		})
	})
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid token populates context", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
			assert.Equal(t, "good-token", token)
			return &domain.TokenClaims{UserID: 7, Slug: "998901234567-ali", IsStaff: true}, nil
		}

		w := get(protectedRouter(tokenSvc), "Bearer good-token")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":7,"user_slug":"998901234567-ali","is_staff":true}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := get(protectedRouter(mocks.NewMockTokenService()), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authorization header required")
	})

	t.Run("malformed header", func(t *testing.T) {
		w := get(protectedRouter(mocks.NewMockTokenService()), "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
			return nil, domain.ErrTokenExpired
		}

		w := get(protectedRouter(tokenSvc), "Bearer stale-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token expired")
	})

	t.Run("invalid token", func(t *testing.T) {
		w := get(protectedRouter(mocks.NewMockTokenService()), "Bearer junk")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid token")
	})
}

func TestBearerClaims(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.ValidateAccessTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: 3}, nil
	}

	newCtx := func(header string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			c.Request.Header.Set("Authorization", header)
		}
		return c
	}

	t.Run("extracts claims", func(t *testing.T) {
		claims, err := BearerClaims(newCtx("Bearer tok"), tokenSvc)
		require.NoError(t, err)
		assert.Equal(t, uint(3), claims.UserID)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := BearerClaims(newCtx(""), tokenSvc)
		assert.ErrorIs(t, err, domain.ErrTokenMissing)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, err := BearerClaims(newCtx("Basic dXNlcjpwYXNz"), tokenSvc)
		assert.ErrorIs(t, err, domain.ErrTokenMalformed)
	})
}
