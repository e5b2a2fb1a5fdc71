package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/middleware"
	"quizcraft/internal/service"
	"quizcraft/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// mockQuizGenService is a manual mock for service.QuizGenerationService.
type mockQuizGenService struct {
	GenerateQuizFunc         func(ctx context.Context, sourceText string, desiredCount int) (*domain.GeneratedQuizResult, error)
	GenerateQuizFromChatFunc func(ctx context.Context, topic string, turns []domain.ChatTurn) (*domain.GeneratedQuizResult, error)
}

func (m *mockQuizGenService) GenerateQuiz(ctx context.Context, sourceText string, desiredCount int) (*domain.GeneratedQuizResult, error) {
	return m.GenerateQuizFunc(ctx, sourceText, desiredCount)
}

func (m *mockQuizGenService) GenerateQuizFromChat(ctx context.Context, topic string, turns []domain.ChatTurn) (*domain.GeneratedQuizResult, error) {
	return m.GenerateQuizFromChatFunc(ctx, topic, turns)
}

// mockChatService is a manual mock for service.ChatService.
type mockChatService struct {
	ExplainFunc func(ctx context.Context, messages []dto.ChatMessage) (*dto.ExplainResponse, error)
}

func (m *mockChatService) Explain(ctx context.Context, messages []dto.ChatMessage) (*dto.ExplainResponse, error) {
	return m.ExplainFunc(ctx, messages)
}

var (
	_ service.QuizGenerationService = (*mockQuizGenService)(nil)
	_ service.ChatService           = (*mockChatService)(nil)
)

func setupAIApp(quizGen service.QuizGenerationService, chat service.ChatService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := NewAIHandler(quizGen, chat, validation.NewValidator())
	app.Post("/ai/generate-quiz", h.GenerateQuiz)
	app.Post("/ai/explain", h.Explain)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	return resp, raw
}

func TestGenerateQuizHandler_Success(t *testing.T) {
	quizGen := &mockQuizGenService{
		GenerateQuizFunc: func(ctx context.Context, sourceText string, desiredCount int) (*domain.GeneratedQuizResult, error) {
			assert.Equal(t, "The cell is the basic unit of life.", sourceText)
			assert.Equal(t, service.DefaultQuestionCount, desiredCount)
			return &domain.GeneratedQuizResult{Questions: []domain.QuizQuestion{
				{Question: "Q1", Options: []string{"A", "B", "C", "D"}, Answer: "A"},
			}}, nil
		},
	}
	app := setupAIApp(quizGen, &mockChatService{})

	resp, raw := postJSON(t, app, "/ai/generate-quiz", dto.GenerateQuizRequest{
		Text: "The cell is the basic unit of life.",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.GenerateQuizResponse
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Len(t, body.Quiz, 1)
	assert.Equal(t, "Q1", body.Quiz[0].Question)
}

func TestGenerateQuizHandler_MissingText(t *testing.T) {
	app := setupAIApp(&mockQuizGenService{}, &mockChatService{})

	resp, raw := postJSON(t, app, "/ai/generate-quiz", dto.GenerateQuizRequest{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body middleware.ValidationErrorResponse
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, string(domain.CodeValidation), body.Code)
	assert.Len(t, body.Errors, 1)
	assert.Equal(t, "text", body.Errors[0].Field)
}

func TestGenerateQuizHandler_ParseFailure(t *testing.T) {
	rawResponse := "I cannot make a quiz from that."
	quizGen := &mockQuizGenService{
		GenerateQuizFunc: func(ctx context.Context, sourceText string, desiredCount int) (*domain.GeneratedQuizResult, error) {
			return &domain.GeneratedQuizResult{ParseFailed: true, RawResponse: rawResponse},
				domain.NewParseError(domain.CodeParseNotJSON, "Provider response is not valid JSON", rawResponse, nil)
		},
	}
	app := setupAIApp(quizGen, &mockChatService{})

	resp, raw := postJSON(t, app, "/ai/generate-quiz", dto.GenerateQuizRequest{Text: "some notes"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body middleware.ErrorResponse
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, string(domain.CodeParseNotJSON), body.Code)
	assert.Equal(t, rawResponse, body.Details["raw_response"])
}

func TestGenerateQuizHandler_ProviderTimeout(t *testing.T) {
	quizGen := &mockQuizGenService{
		GenerateQuizFunc: func(ctx context.Context, sourceText string, desiredCount int) (*domain.GeneratedQuizResult, error) {
			return nil, domain.NewProviderTimeoutError(context.DeadlineExceeded)
		},
	}
	app := setupAIApp(quizGen, &mockChatService{})

	resp, raw := postJSON(t, app, "/ai/generate-quiz", dto.GenerateQuizRequest{Text: "some notes"})
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)

	var body middleware.ErrorResponse
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, string(domain.CodeProviderTimeout), body.Code)
}

func TestExplainHandler_PlainAnswer(t *testing.T) {
	chat := &mockChatService{
		ExplainFunc: func(ctx context.Context, messages []dto.ChatMessage) (*dto.ExplainResponse, error) {
			assert.Len(t, messages, 1)
			return &dto.ExplainResponse{Answer: "Photosynthesis is how plants make food."}, nil
		},
	}
	app := setupAIApp(&mockQuizGenService{}, chat)

	resp, raw := postJSON(t, app, "/ai/explain", dto.ExplainRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "What is photosynthesis?"}},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Photosynthesis is how plants make food.", body["answer"])
	// omitempty: no quiz keys on the plain path
	_, hasQuiz := body["quiz"]
	assert.False(t, hasQuiz)
	_, hasTopic := body["quiz_topic"]
	assert.False(t, hasTopic)
}

func TestExplainHandler_QuizAttached(t *testing.T) {
	chat := &mockChatService{
		ExplainFunc: func(ctx context.Context, messages []dto.ChatMessage) (*dto.ExplainResponse, error) {
			return &dto.ExplainResponse{
				Answer:    "Here's a quiz about biology. Good luck!",
				Quiz:      []dto.QuizQuestionResponse{{Question: "Q1", Options: []string{"A", "B", "C", "D"}, Answer: "A"}},
				QuizTopic: "biology",
			}, nil
		},
	}
	app := setupAIApp(&mockQuizGenService{}, chat)

	resp, raw := postJSON(t, app, "/ai/explain", dto.ExplainRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "quiz me about biology"}},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ExplainResponse
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "biology", body.QuizTopic)
	assert.Len(t, body.Quiz, 1)
}

func TestExplainHandler_EmptyMessages(t *testing.T) {
	app := setupAIApp(&mockQuizGenService{}, &mockChatService{})

	resp, _ := postJSON(t, app, "/ai/explain", dto.ExplainRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExplainHandler_InvalidRole(t *testing.T) {
	app := setupAIApp(&mockQuizGenService{}, &mockChatService{})

	resp, raw := postJSON(t, app, "/ai/explain", dto.ExplainRequest{
		Messages: []dto.ChatMessage{{Role: "robot", Content: "beep"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body middleware.ValidationErrorResponse
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "messages.role", body.Errors[0].Field)
}

func TestExplainHandler_ServiceError(t *testing.T) {
	chat := &mockChatService{
		ExplainFunc: func(ctx context.Context, messages []dto.ChatMessage) (*dto.ExplainResponse, error) {
			return nil, domain.NewProviderError(errors.New("upstream down"))
		},
	}
	app := setupAIApp(&mockQuizGenService{}, chat)

	resp, raw := postJSON(t, app, "/ai/explain", dto.ExplainRequest{
		Messages: []dto.ChatMessage{{Role: "user", Content: "hello"}},
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body middleware.ErrorResponse
	assert.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, string(domain.CodeProviderError), body.Code)
}
