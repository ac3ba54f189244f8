package api

import (
	"fmt"
	"net/http"

	"liftlog/api/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type UpdateProfileRequest struct {
	Name            *string  `json:"name"`
	Email           *string  `json:"email" binding:"omitempty,email"`
	Age             *int     `json:"age" binding:"omitempty,min=0,max=150"`
	BodyWeight      *float64 `json:"bodyWeight" binding:"omitempty,min=0"`
	CurrentPassword string   `json:"currentPassword"`
	NewPassword     string   `json:"newPassword"`
}

// GetMe returns the caller's profile.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	user, err := h.profileService.Get(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdateMe changes profile fields and, with the current password, the password.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.profileService.Update(c.Request.Context(), session, service.ProfileUpdate{
		Name:            req.Name,
		Email:           req.Email,
		Age:             req.Age,
		BodyWeight:      req.BodyWeight,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}
