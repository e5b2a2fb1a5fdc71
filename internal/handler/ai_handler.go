package handler

import (
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AIHandler handles the LLM-backed endpoints.
type AIHandler struct {
	quizGen   service.QuizGenerationService
	chat      service.ChatService
	validator *validation.Validator
}

// NewAIHandler creates a new AIHandler instance
func NewAIHandler(quizGen service.QuizGenerationService, chat service.ChatService, validator *validation.Validator) *AIHandler {
	return &AIHandler{
		quizGen:   quizGen,
		chat:      chat,
		validator: validator,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from study material
// @Description Generates multiple-choice questions from the submitted text
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Study material"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Failure 504 {object} middleware.ErrorResponse
// @Router /ai/generate-quiz [post]
func (h *AIHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}

	if errs := h.validator.ValidateGenerateQuizRequest(req.Text); len(errs) > 0 {
		return errs
	}

	result, err := h.quizGen.GenerateQuiz(c.Context(), req.Text, service.DefaultQuestionCount)
	if err != nil {
		return err
	}

	logger.Get().Info("Quiz generated",
		zap.Int("question_count", len(result.Questions)),
	)
	return c.JSON(dto.GenerateQuizResponse{
		Quiz: dto.ToQuizQuestionResponses(result.Questions),
	})
}

// Explain godoc
// @Summary Answer a chat message
// @Description Answers the trailing user message; quiz requests get a generated quiz attached
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.ExplainRequest true "Conversation so far"
// @Success 200 {object} dto.ExplainResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Failure 504 {object} middleware.ErrorResponse
// @Router /ai/explain [post]
func (h *AIHandler) Explain(c *fiber.Ctx) error {
	var req dto.ExplainRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}

	if errs := h.validator.ValidateExplainRequest(req.Messages); len(errs) > 0 {
		return errs
	}

	resp, err := h.chat.Explain(c.Context(), req.Messages)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
