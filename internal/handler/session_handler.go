package handler

import (
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles chat session and message HTTP requests.
type SessionHandler struct {
	sessions  service.SessionService
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(sessions service.SessionService, validator *validation.Validator) *SessionHandler {
	return &SessionHandler{sessions: sessions, validator: validator}
}

// ListSessions godoc
// @Summary List the caller's chat sessions
// @Tags sessions
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.SessionResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /api/sessions [get]
func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	sessions, err := h.sessions.ListSessions(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}

// CreateSession godoc
// @Summary Create a chat session
// @Tags sessions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Session details"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /api/sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}
	req.UserID = userID

	if errs := h.validator.ValidateCreateSessionRequest(&req); len(errs) > 0 {
		return errs
	}

	session, err := h.sessions.CreateSession(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// UpdateSession godoc
// @Summary Rename a chat session
// @Tags sessions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.UpdateSessionRequest true "New title"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/sessions/{id} [patch]
func (h *SessionHandler) UpdateSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateID("id", sessionID); len(errs) > 0 {
		return errs
	}

	var req dto.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}
	if req.Title == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("title")}
	}

	session, err := h.sessions.RenameSession(c.Context(), sessionID, req.Title)
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// DeleteSession godoc
// @Summary Delete a chat session and everything in it
// @Tags sessions
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateID("id", sessionID); len(errs) > 0 {
		return errs
	}

	if err := h.sessions.DeleteSession(c.Context(), sessionID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMessages godoc
// @Summary List the messages of a session
// @Tags messages
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} dto.MessageResponse
// @Router /api/sessions/{id}/messages [get]
func (h *SessionHandler) ListMessages(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if errs := h.validator.ValidateID("id", sessionID); len(errs) > 0 {
		return errs
	}

	messages, err := h.sessions.ListMessages(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(messages)
}

// CreateMessage godoc
// @Summary Persist a chat message
// @Tags messages
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMessageRequest true "Message details"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/messages [post]
func (h *SessionHandler) CreateMessage(c *fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}

	if errs := h.validator.ValidateCreateMessageRequest(&req); len(errs) > 0 {
		return errs
	}

	message, err := h.sessions.CreateMessage(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// requireUserID reads the authenticated user ID set by the auth middleware.
func requireUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", domain.NewUnauthorizedError("User ID not found in context")
	}
	return userID, nil
}
