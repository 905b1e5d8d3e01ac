package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shaxzodbek16/clot/domain"
)

// UserHandlers handles the user detail HTTP surface. The ":slug" parameter
// accepts the literal "me" for the authenticated user's own record; any
// other slug is staff-only (enforced by the policy middleware).
type UserHandlers struct {
	authSvc  domain.AuthService
	userRepo domain.UserRepository
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(authSvc domain.AuthService, userRepo domain.UserRepository) *UserHandlers {
	return &UserHandlers{authSvc: authSvc, userRepo: userRepo}
}

// UpdateUserRequest represents a profile update. Pointer fields distinguish
// "absent" from "zero" for PATCH semantics.
type UpdateUserRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	ProfileImage *string `json:"profile_image"`
	Age          *uint   `json:"age"`
	Gender       *string `json:"gender"`
}

func userResponse(u *domain.User) gin.H {
	return gin.H{
		"slug":          u.Slug,
		"phone_number":  u.PhoneNumber,
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"profile_image": u.ProfileImage,
		"age":           u.Age,
		"gender":        u.Gender,
		"date_joined":   u.DateJoined.Format(time.RFC3339),
		"is_active":     u.IsActive,
	}
}

// resolve finds the target user for a :slug route, mapping "me" to the
// caller's own record.
func (h *UserHandlers) resolve(c *gin.Context) (*domain.User, bool) {
	slug := c.Param("slug")
	if slug == "me" {
		userID := c.GetUint("user_id")
		user, err := h.authSvc.GetProfile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return nil, false
		}
		return user, true
	}

	user, err := h.userRepo.FindBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return user, true
}

// Get handles GET /users/:slug
func (h *UserHandlers) Get(c *gin.Context) {
	user, ok := h.resolve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, userResponse(user))
}

// Update handles PUT and PATCH /users/:slug. The phone number is silently
// ignored even if present in the body.
func (h *UserHandlers) Update(c *gin.Context) {
	user, ok := h.resolve(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := domain.ProfileUpdate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		ProfileImage: req.ProfileImage,
		Age:          req.Age,
	}
	if req.Gender != nil {
		g := domain.Gender(*req.Gender)
		update.Gender = &g
	}

	updated, err := h.authSvc.UpdateProfile(c.Request.Context(), user, update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(updated))
}

// Delete handles DELETE /users/:slug; a soft delete that deactivates the
// account and revokes its tokens.
func (h *UserHandlers) Delete(c *gin.Context) {
	user, ok := h.resolve(c)
	if !ok {
		return
	}

	if err := h.authSvc.DeactivateAccount(c.Request.Context(), user.ID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User account deactivated successfully"})
}

// List handles GET /users (staff only): search, gender and age filters,
// ordering and pagination.
func (h *UserHandlers) List(c *gin.Context) {
	filter := domain.UserFilter{
		Search:   c.Query("search"),
		Gender:   domain.Gender(c.Query("gender")),
		Ordering: c.DefaultQuery("ordering", "-date_joined"),
	}

	if ageStr := c.Query("age"); ageStr != "" {
		age, err := strconv.ParseUint(ageStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid age filter"})
			return
		}
		a := uint(age)
		filter.Age = &a
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}

	users, total, err := h.userRepo.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]gin.H, 0, len(users))
	for i := range users {
		results = append(results, userResponse(&users[i]))
	}

	totalPages := (total + int64(filter.PageSize) - 1) / int64(filter.PageSize)
	c.JSON(http.StatusOK, gin.H{
		"results":     results,
		"total":       total,
		"page":        filter.Page,
		"total_pages": totalPages,
		"page_size":   filter.PageSize,
	})
}
