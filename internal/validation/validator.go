package validation

import (
	"regexp"
	"strings"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
)

const maxSourceTextLength = 20000

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates the generate quiz request body.
func (v *Validator) ValidateGenerateQuizRequest(text string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(text) == "" {
		errors = append(errors, domain.NewMissingFieldError("text"))
	} else if len(text) > maxSourceTextLength {
		errors = append(errors, domain.NewOutOfRangeError("text", len(text), 1, maxSourceTextLength))
	}

	return errors
}

// ValidateExplainRequest validates the explain request body. Roles are
// checked here so the provider never sees an unknown speaker.
func (v *Validator) ValidateExplainRequest(messages []dto.ChatMessage) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(messages) == 0 {
		errors = append(errors, domain.NewMissingFieldError("messages"))
		return errors
	}

	for _, m := range messages {
		if !isValidChatRole(m.Role) {
			errors = append(errors, domain.NewInvalidFormatError("messages.role", m.Role))
		}
	}

	return errors
}

// ValidateID validates a path or body identifier field.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}

	return errors
}

// ValidateCreateSessionRequest validates the create session request body.
func (v *Validator) ValidateCreateSessionRequest(req *dto.CreateSessionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.UserID) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_id"))
	}
	if len(req.Title) > 200 {
		errors = append(errors, domain.NewOutOfRangeError("title", len(req.Title), 0, 200))
	}

	return errors
}

// ValidateCreateMessageRequest validates the create message request body.
func (v *Validator) ValidateCreateMessageRequest(req *dto.CreateMessageRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if idErrors := v.ValidateID("session_id", req.SessionID); len(idErrors) > 0 {
		errors = append(errors, idErrors...)
	}
	if !isValidSender(req.Sender) {
		errors = append(errors, domain.NewInvalidFormatError("sender", req.Sender))
	}
	if strings.TrimSpace(req.Content) == "" {
		errors = append(errors, domain.NewMissingFieldError("content"))
	}

	return errors
}

// ValidateCreateQuizRequest validates the create quiz request body.
func (v *Validator) ValidateCreateQuizRequest(req *dto.CreateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if idErrors := v.ValidateID("session_id", req.SessionID); len(idErrors) > 0 {
		errors = append(errors, idErrors...)
	}
	if req.NoOfQuestions <= 0 || req.NoOfQuestions > 50 {
		errors = append(errors, domain.NewOutOfRangeError("no_of_questions", req.NoOfQuestions, 1, 50))
	}

	return errors
}

// ValidateUpdateQuizRequest validates the update quiz request body.
func (v *Validator) ValidateUpdateQuizRequest(req *dto.UpdateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.Score == nil && req.IsFinished == nil {
		errors = append(errors, domain.NewMissingFieldError("score"))
		return errors
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 50) {
		errors = append(errors, domain.NewOutOfRangeError("score", *req.Score, 0, 50))
	}

	return errors
}

// ValidateCreateQuestionRequest validates the create question request body.
func (v *Validator) ValidateCreateQuestionRequest(req *dto.CreateQuestionRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if idErrors := v.ValidateID("quiz_id", req.QuizID); len(idErrors) > 0 {
		errors = append(errors, idErrors...)
	}
	if strings.TrimSpace(req.QuizQuestion) == "" {
		errors = append(errors, domain.NewMissingFieldError("quiz_question"))
	}
	if strings.TrimSpace(req.CorrectAnswer) == "" {
		errors = append(errors, domain.NewMissingFieldError("correct_answer"))
	}

	return errors
}

// ValidateCreateQuestionBatchRequest validates the batch question create body.
func (v *Validator) ValidateCreateQuestionBatchRequest(req *dto.CreateQuestionBatchRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if idErrors := v.ValidateID("quiz_id", req.QuizID); len(idErrors) > 0 {
		errors = append(errors, idErrors...)
	}
	if len(req.Questions) == 0 {
		errors = append(errors, domain.NewMissingFieldError("questions"))
		return errors
	}
	for _, q := range req.Questions {
		if strings.TrimSpace(q.QuizQuestion) == "" {
			errors = append(errors, domain.NewMissingFieldError("questions.quiz_question"))
		}
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			errors = append(errors, domain.NewMissingFieldError("questions.correct_answer"))
		}
	}

	return errors
}

// ValidateCreateAnswerRequest validates the create answer request body.
func (v *Validator) ValidateCreateAnswerRequest(req *dto.CreateAnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if idErrors := v.ValidateID("question_id", req.QuestionID); len(idErrors) > 0 {
		errors = append(errors, idErrors...)
	}
	if strings.TrimSpace(req.Answer) == "" {
		errors = append(errors, domain.NewMissingFieldError("answer"))
	}

	return errors
}

// Helper functions for validation

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}

func isValidChatRole(role string) bool {
	switch role {
	case "user", "assistant", "system":
		return true
	}
	return false
}

func isValidSender(sender string) bool {
	switch sender {
	case "user", "assistant":
		return true
	}
	return false
}
