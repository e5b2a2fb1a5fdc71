package handler

import (
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user profile requests.
type UserHandler struct {
	auth service.AuthService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(auth service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// GetMyProfile godoc
// @Summary Get My Profile
// @Description Retrieves the profile information of the logged-in user.
// @Tags users
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	email, _ := c.Locals(middleware.UserEmailKey).(string)

	profile, err := h.auth.GetProfile(c.Context(), userID, email)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
