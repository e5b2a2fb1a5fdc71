package provider

import (
	"context"
	"fmt"
	"time"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// GoogleAIProvider is the non-production backend (Gemini). It supports a
// multi-turn conversational mode: prior turns are replayed into a fresh
// exchange on every call, so conversational context is rebuilt per request
// rather than held in a server-side session.
type GoogleAIProvider struct {
	model       llms.Model
	modelName   string
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewGoogleAIProvider creates the Gemini-backed text provider.
func NewGoogleAIProvider(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (domain.TextProvider, error) {
	if cfg.GoogleAPIKey == "" {
		return nil, fmt.Errorf("google API key cannot be empty")
	}
	modelName := cfg.GoogleModel
	if modelName == "" {
		modelName = config.DefaultGoogleModel
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GoogleAPIKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}

	logger.Info("Initialized Google AI text provider", zap.String("model", modelName))
	return &GoogleAIProvider{
		model:       llm,
		modelName:   modelName,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger,
	}, nil
}

func (p *GoogleAIProvider) Name() string { return "googleai" }

// GenerateText implements domain.TextProvider. Gemini has no first-class
// system role in this API, so a system instruction is folded into the first
// user turn of the rebuilt conversation.
func (p *GoogleAIProvider) GenerateText(ctx context.Context, prompt string, opts *domain.GenerateOptions) (string, error) {
	var messages []llms.MessageContent
	if opts != nil && opts.SystemInstruction != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, opts.SystemInstruction))
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI, "Understood."))
	}
	if opts != nil {
		for _, turn := range opts.PriorTurns {
			role := toMessageType(turn.Role)
			if role == llms.ChatMessageTypeSystem {
				role = llms.ChatMessageTypeHuman
			}
			messages = append(messages, llms.TextParts(role, turn.Content))
		}
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	p.logger.Debug("Calling Google AI",
		zap.String("model", p.modelName),
		zap.Int("message_count", len(messages)),
	)

	return generate(ctx, p.model, messages, p.temperature, callTimeout(p.timeout, opts))
}

var _ domain.TextProvider = (*GoogleAIProvider)(nil)
