package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shaxzodbek16/clot/domain"
	"github.com/Shaxzodbek16/clot/internal/http/middleware"
)

// Action names accepted by the dispatch endpoint.
const (
	ActionRegister        = "register"
	ActionVerifyOTP       = "verify_otp"
	ActionCompleteProfile = "complete_profile"
	ActionLogin           = "login"
	ActionForgotPassword  = "forgot_password"
	ActionResetPassword   = "reset_password"
	ActionLogout          = "logout"
	ActionLogoutAll       = "logout_all"
	ActionRefreshToken    = "refresh_token"
)

// AuthHandlers handles the credential lifecycle HTTP surface
type AuthHandlers struct {
	authSvc  domain.AuthService
	tokenSvc domain.TokenService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, tokenSvc domain.TokenService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, tokenSvc: tokenSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
}

// VerifyOTPRequest represents OTP verification request
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	OTPCode     string `json:"otp_code" binding:"required,len=6,numeric"`
}

// CompleteProfileRequest represents profile completion request
type CompleteProfileRequest struct {
	UserSlug string `json:"user_slug" binding:"required"`
	Age      *uint  `json:"age" binding:"required"`
	Gender   string `json:"gender" binding:"required"`
}

// LoginRequest represents login request
type LoginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// ForgotPasswordRequest represents forgot-password request
type ForgotPasswordRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// ResetPasswordRequest represents password reset request
type ResetPasswordRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	OTPCode     string `json:"otp_code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required"`
}

// RefreshRequest represents token refresh and logout requests
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Dispatch routes POST /auth/:action over the closed action set. Unknown
// actions fail with a client error.
func (h *AuthHandlers) Dispatch(c *gin.Context) {
	switch c.Param("action") {
	case ActionRegister:
		h.register(c)
	case ActionVerifyOTP:
		h.verifyOTP(c)
	case ActionCompleteProfile:
		h.completeProfile(c)
	case ActionLogin:
		h.login(c)
	case ActionForgotPassword:
		h.forgotPassword(c)
	case ActionResetPassword:
		h.resetPassword(c)
	case ActionLogout:
		h.logout(c)
	case ActionLogoutAll:
		h.logoutAll(c)
	case ActionRefreshToken:
		h.refreshToken(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidAction.Error()})
	}
}

func (h *AuthHandlers) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req.PhoneNumber, req.Password, req.FirstName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "OTP sent successfully.",
		"user_slug": user.Slug,
	})
}

func (h *AuthHandlers) verifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), req.PhoneNumber, req.OTPCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "OTP verified successfully",
		"user_slug": result.User.Slug,
		"access":    result.Tokens.AccessToken,
		"refresh":   result.Tokens.RefreshToken,
	})
}

func (h *AuthHandlers) completeProfile(c *gin.Context) {
	var req CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.CompleteProfile(c.Request.Context(), req.UserSlug, *req.Age, domain.Gender(req.Gender))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Profile completed successfully",
		"user_slug": user.Slug,
	})
}

func (h *AuthHandlers) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"user_slug": result.User.Slug,
		"access":    result.Tokens.AccessToken,
		"refresh":   result.Tokens.RefreshToken,
	})
}

func (h *AuthHandlers) forgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.ForgotPassword(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "OTP sent successfully",
		"user_slug": user.Slug,
	})
}

func (h *AuthHandlers) resetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.ResetPassword(c.Request.Context(), req.PhoneNumber, req.OTPCode, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Password reset successfully",
		"user_slug": result.User.Slug,
		"access":    result.Tokens.AccessToken,
		"refresh":   result.Tokens.RefreshToken,
	})
}

// logout requires an authenticated caller and the refresh token to revoke.
func (h *AuthHandlers) logout(c *gin.Context) {
	if _, err := middleware.BearerClaims(c, h.tokenSvc); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrTokenMissing.Error()})
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), req.Refresh); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (h *AuthHandlers) logoutAll(c *gin.Context) {
	claims, err := middleware.BearerClaims(c, h.tokenSvc)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.authSvc.LogoutAll(c.Request.Context(), claims.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out from all devices"})
}

func (h *AuthHandlers) refreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrTokenMissing.Error()})
		return
	}

	tokens, err := h.authSvc.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  tokens.AccessToken,
		"refresh": tokens.RefreshToken,
	})
}

// respondError maps domain sentinels onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPhoneTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "User with this phone number already exists"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrOTPInvalidOrExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, domain.ErrAccountInactive):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User account is not active"})
	case errors.Is(err, domain.ErrTokenMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token is required"})
	case errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrTokenRevoked):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
	case errors.Is(err, domain.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
