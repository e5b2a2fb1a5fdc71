package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"quizcraft/internal/cache"
	"quizcraft/internal/domain"
	"quizcraft/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultQuestionCount is used for quizzes generated from uploaded study material.
	DefaultQuestionCount = 10
	// ChatQuestionCount is used for quizzes requested inside a chat session.
	ChatQuestionCount = 5
	// chatContextWindow is how many trailing chat turns flavor the prompt.
	chatContextWindow = 5
)

const quizPromptTemplate = `You are an expert quiz generator. Create exactly %d multiple-choice questions from the study material below.

For each question provide:
1. "question": the question text.
2. "options": an array of exactly %d distinct answer choices.
3. "answer": the correct choice, copied verbatim from "options".

Your entire response must be a single JSON array of %d objects with the fields "question", "options" and "answer". Do not wrap it in prose or markdown.

Study material:
%s`

const topicQuizPromptTemplate = `You are an expert quiz generator. Create exactly %d multiple-choice questions about: %s

For each question provide:
1. "question": the question text.
2. "options": an array of exactly %d distinct answer choices.
3. "answer": the correct choice, copied verbatim from "options".

Your entire response must be a single JSON array of %d objects with the fields "question", "options" and "answer". Do not wrap it in prose or markdown.

Recent conversation, for context on what the student is studying:
%s`

// QuizGenerationService turns free-form text into validated quiz questions.
type QuizGenerationService interface {
	GenerateQuiz(ctx context.Context, sourceText string, desiredCount int) (*domain.GeneratedQuizResult, error)
	GenerateQuizFromChat(ctx context.Context, topic string, turns []domain.ChatTurn) (*domain.GeneratedQuizResult, error)
}

type quizGenerationService struct {
	provider domain.TextProvider
	cache    domain.Cache
	cacheTTL time.Duration
	policy   BatchPolicy
	sfGroup  singleflight.Group
}

// NewQuizGenerationService wires the generation pipeline. cache may be nil,
// in which case every call goes to the provider.
func NewQuizGenerationService(provider domain.TextProvider, quizCache domain.Cache, cacheTTL time.Duration) QuizGenerationService {
	return &quizGenerationService{
		provider: provider,
		cache:    quizCache,
		cacheTTL: cacheTTL,
		policy:   PolicyFailBatch,
	}
}

// GenerateQuiz implements QuizGenerationService. Identical source text and
// count hit the cache; concurrent identical requests collapse into one
// provider call via singleflight.
func (s *quizGenerationService) GenerateQuiz(ctx context.Context, sourceText string, desiredCount int) (*domain.GeneratedQuizResult, error) {
	if strings.TrimSpace(sourceText) == "" {
		return nil, domain.NewInvalidInputError("source text cannot be empty")
	}
	if desiredCount <= 0 {
		desiredCount = DefaultQuestionCount
	}

	cacheKey := s.cacheKey(sourceText, desiredCount)
	if cached, ok := s.cachedResult(ctx, cacheKey); ok {
		return cached, nil
	}

	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		prompt := fmt.Sprintf(quizPromptTemplate, desiredCount, domain.DefaultOptionCount, desiredCount, sourceText)
		result, genErr := s.runPipeline(ctx, prompt)
		if genErr != nil {
			return result, genErr
		}
		s.storeResult(ctx, cacheKey, result)
		return result, nil
	})
	if result, ok := res.(*domain.GeneratedQuizResult); ok || err == nil {
		return result, err
	}
	return nil, err
}

// GenerateQuizFromChat implements QuizGenerationService. Chat-flavored
// quizzes depend on the surrounding conversation and are never cached.
func (s *quizGenerationService) GenerateQuizFromChat(ctx context.Context, topic string, turns []domain.ChatTurn) (*domain.GeneratedQuizResult, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, domain.NewInvalidInputError("quiz topic cannot be empty")
	}

	prompt := fmt.Sprintf(topicQuizPromptTemplate,
		ChatQuestionCount, topic,
		domain.DefaultOptionCount, ChatQuestionCount,
		formatContext(turns, chatContextWindow))
	return s.runPipeline(ctx, prompt)
}

// runPipeline performs one prompt → provider → extract → validate cycle.
// There is no retry loop: a caller wanting resilience re-invokes the whole
// operation, which starts a brand-new cycle.
func (s *quizGenerationService) runPipeline(ctx context.Context, prompt string) (*domain.GeneratedQuizResult, error) {
	l := logger.Get()

	raw, err := s.provider.GenerateText(ctx, prompt, &domain.GenerateOptions{})
	if err != nil {
		l.Error("Provider call failed", zap.String("provider", s.provider.Name()), zap.Error(err))
		return nil, err
	}

	extracted := ExtractJSONArray(raw)
	questions, parseErr := ParseQuestions(extracted, domain.DefaultOptionCount, s.policy)
	if parseErr != nil {
		l.Warn("Provider response failed quiz validation",
			zap.String("provider", s.provider.Name()),
			zap.String("raw_response", raw),
			zap.Error(parseErr),
		)
		// Never a silent empty success: the result flags the failure and the
		// error carries the raw text up to the boundary.
		return &domain.GeneratedQuizResult{ParseFailed: true, RawResponse: raw}, parseErr
	}

	l.Info("Generated quiz questions",
		zap.String("provider", s.provider.Name()),
		zap.Int("question_count", len(questions)),
	)
	return &domain.GeneratedQuizResult{Questions: questions, RawResponse: raw}, nil
}

func (s *quizGenerationService) cacheKey(sourceText string, desiredCount int) string {
	sum := sha256.Sum256([]byte(sourceText))
	return cache.GenerateCacheKey("quizgen", "result", hex.EncodeToString(sum[:]), strconv.Itoa(desiredCount))
}

func (s *quizGenerationService) cachedResult(ctx context.Context, key string) (*domain.GeneratedQuizResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Quiz cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var questions []domain.QuizQuestion
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		logger.Get().Warn("Discarding undecodable quiz cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &domain.GeneratedQuizResult{Questions: questions}, true
}

func (s *quizGenerationService) storeResult(ctx context.Context, key string, result *domain.GeneratedQuizResult) {
	if s.cache == nil || len(result.Questions) == 0 {
		return
	}
	data, err := json.Marshal(result.Questions)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
		logger.Get().Warn("Quiz cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// formatContext renders the trailing window of a conversation for embedding
// into a prompt.
func formatContext(turns []domain.ChatTurn, window int) string {
	if len(turns) > window {
		turns = turns[len(turns)-window:]
	}
	if len(turns) == 0 {
		return "(no prior conversation)"
	}
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
	}
	return strings.Join(lines, "\n")
}
