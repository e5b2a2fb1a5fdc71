package handler

import (
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// StudyHandler handles quiz record, question, answer and progress requests.
type StudyHandler struct {
	study     service.StudyService
	validator *validation.Validator
}

// NewStudyHandler creates a new StudyHandler instance
func NewStudyHandler(study service.StudyService, validator *validation.Validator) *StudyHandler {
	return &StudyHandler{study: study, validator: validator}
}

// CreateQuiz godoc
// @Summary Start a quiz in a session
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz details"
// @Success 201 {object} dto.QuizRecordResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /api/quizzes [post]
func (h *StudyHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}

	if errs := h.validator.ValidateCreateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	quiz, err := h.study.CreateQuiz(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// GetQuiz godoc
// @Summary Get one quiz record
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizRecordResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/quizzes/{id} [get]
func (h *StudyHandler) GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")
	if errs := h.validator.ValidateID("id", quizID); len(errs) > 0 {
		return errs
	}

	quiz, err := h.study.GetQuiz(c.Context(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// ListQuizzes godoc
// @Summary List the quizzes of a session
// @Tags quizzes
// @Security ApiKeyAuth
// @Produce json
// @Param session_id query string true "Session ID"
// @Success 200 {array} dto.QuizRecordResponse
// @Router /api/quizzes [get]
func (h *StudyHandler) ListQuizzes(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if errs := h.validator.ValidateID("session_id", sessionID); len(errs) > 0 {
		return errs
	}

	quizzes, err := h.study.ListQuizzes(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// UpdateQuiz godoc
// @Summary Update a quiz's score or finished flag
// @Tags quizzes
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.UpdateQuizRequest true "Fields to update"
// @Success 200 {object} dto.QuizRecordResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/quizzes/{id} [patch]
func (h *StudyHandler) UpdateQuiz(c *fiber.Ctx) error {
	quizID := c.Params("id")
	if errs := h.validator.ValidateID("id", quizID); len(errs) > 0 {
		return errs
	}

	var req dto.UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}
	if errs := h.validator.ValidateUpdateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	quiz, err := h.study.UpdateQuiz(c.Context(), quizID, &req)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// ListQuestions godoc
// @Summary List the questions of a quiz
// @Tags questions
// @Security ApiKeyAuth
// @Produce json
// @Param quiz_id query string true "Quiz ID"
// @Success 200 {array} dto.QuestionResponse
// @Router /api/questions [get]
func (h *StudyHandler) ListQuestions(c *fiber.Ctx) error {
	quizID := c.Query("quiz_id")
	if errs := h.validator.ValidateID("quiz_id", quizID); len(errs) > 0 {
		return errs
	}

	questions, err := h.study.ListQuestions(c.Context(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// CreateQuestion godoc
// @Summary Persist a quiz question
// @Tags questions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question details"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /api/questions [post]
func (h *StudyHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}

	if errs := h.validator.ValidateCreateQuestionRequest(&req); len(errs) > 0 {
		return errs
	}

	question, err := h.study.CreateQuestion(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(question)
}

// CreateQuestionBatch godoc
// @Summary Persist all questions of a quiz at once
// @Tags questions
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionBatchRequest true "Questions to persist"
// @Success 201 {array} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/questions/batch [post]
func (h *StudyHandler) CreateQuestionBatch(c *fiber.Ctx) error {
	var req dto.CreateQuestionBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}

	if errs := h.validator.ValidateCreateQuestionBatchRequest(&req); len(errs) > 0 {
		return errs
	}

	questions, err := h.study.CreateQuestions(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(questions)
}

// CreateAnswer godoc
// @Summary Record the student's answer to a question
// @Tags answers
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAnswerRequest true "Answer details"
// @Success 201 {object} dto.AnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /api/answers [post]
func (h *StudyHandler) CreateAnswer(c *fiber.Ctx) error {
	var req dto.CreateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}

	if errs := h.validator.ValidateCreateAnswerRequest(&req); len(errs) > 0 {
		return errs
	}

	answer, err := h.study.CreateAnswer(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(answer)
}

// ListAnswers godoc
// @Summary List the answers recorded for a quiz
// @Tags answers
// @Security ApiKeyAuth
// @Produce json
// @Param quiz_id query string true "Quiz ID"
// @Success 200 {array} dto.AnswerResponse
// @Router /api/answers [get]
func (h *StudyHandler) ListAnswers(c *fiber.Ctx) error {
	quizID := c.Query("quiz_id")
	if errs := h.validator.ValidateID("quiz_id", quizID); len(errs) > 0 {
		return errs
	}

	answers, err := h.study.ListAnswers(c.Context(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(answers)
}

// GetProgress godoc
// @Summary Per-session quiz progress for the caller
// @Tags progress
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.SessionProgressResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /api/progress [get]
func (h *StudyHandler) GetProgress(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	progress, err := h.study.GetProgress(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(progress)
}
