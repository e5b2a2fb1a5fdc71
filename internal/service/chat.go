package service

import (
	"context"
	"fmt"
	"strings"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"

	"go.uber.org/zap"
)

const tutorSystemInstruction = "You are a friendly tutor who explains things clearly for students."

// ChatService answers free-form chat messages, branching into quiz
// generation when the intent classifier fires.
type ChatService interface {
	Explain(ctx context.Context, messages []dto.ChatMessage) (*dto.ExplainResponse, error)
}

type chatService struct {
	provider   domain.TextProvider
	classifier domain.IntentClassifier
	quizGen    QuizGenerationService
}

func NewChatService(provider domain.TextProvider, classifier domain.IntentClassifier, quizGen QuizGenerationService) ChatService {
	return &chatService{
		provider:   provider,
		classifier: classifier,
		quizGen:    quizGen,
	}
}

// Explain implements ChatService. The trailing user message decides the
// branch: quiz intent routes through the generation pipeline with a
// topic-flavored prompt, anything else gets a plain tutor answer.
func (s *chatService) Explain(ctx context.Context, messages []dto.ChatMessage) (*dto.ExplainResponse, error) {
	turns := toChatTurns(messages)

	lastUserIdx := lastUserIndex(turns)
	if lastUserIdx == -1 || strings.TrimSpace(turns[lastUserIdx].Content) == "" {
		return nil, domain.NewInvalidInputError("conversation contains no user message")
	}
	lastUser := turns[lastUserIdx].Content

	if s.classifier.IsQuizRequest(lastUser) {
		topic := s.classifier.ExtractTopic(lastUser)
		logger.Get().Info("Quiz intent detected in chat",
			zap.String("topic", topic),
		)

		result, err := s.quizGen.GenerateQuizFromChat(ctx, topic, turns)
		if err != nil {
			return nil, err
		}
		return &dto.ExplainResponse{
			Answer:    fmt.Sprintf("Here's a quiz about %s. Good luck!", topic),
			Quiz:      dto.ToQuizQuestionResponses(result.Questions),
			QuizTopic: topic,
		}, nil
	}

	priorTurns := turns[:lastUserIdx]
	answer, err := s.provider.GenerateText(ctx, lastUser, &domain.GenerateOptions{
		SystemInstruction: tutorSystemInstruction,
		PriorTurns:        priorTurns,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ExplainResponse{Answer: answer}, nil
}

func toChatTurns(messages []dto.ChatMessage) []domain.ChatTurn {
	turns := make([]domain.ChatTurn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, domain.ChatTurn{Role: domain.ChatRole(m.Role), Content: m.Content})
	}
	return turns
}

func lastUserIndex(turns []domain.ChatTurn) int {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == domain.RoleUser {
			return i
		}
	}
	return -1
}
