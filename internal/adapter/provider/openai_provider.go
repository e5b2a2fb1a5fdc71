package provider

import (
	"context"
	"fmt"
	"time"

	"quizcraft/internal/config"
	"quizcraft/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenAIProvider is the production backend. Each call is a single
// request/response; prior turns are replayed inside the request and no
// conversation state is kept between calls.
type OpenAIProvider struct {
	model       llms.Model
	modelName   string
	temperature float64
	timeout     time.Duration
	logger      *zap.Logger
}

// NewOpenAIProvider creates the OpenAI-backed text provider.
func NewOpenAIProvider(cfg config.LLMConfig, logger *zap.Logger) (domain.TextProvider, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	modelName := cfg.OpenAIModel
	if modelName == "" {
		modelName = config.DefaultOpenAIModel
	}

	llm, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	logger.Info("Initialized OpenAI text provider", zap.String("model", modelName))
	return &OpenAIProvider{
		model:       llm,
		modelName:   modelName,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger,
	}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

// GenerateText implements domain.TextProvider.
func (p *OpenAIProvider) GenerateText(ctx context.Context, prompt string, opts *domain.GenerateOptions) (string, error) {
	var messages []llms.MessageContent
	if opts != nil && opts.SystemInstruction != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, opts.SystemInstruction))
	}
	if opts != nil {
		for _, turn := range opts.PriorTurns {
			messages = append(messages, llms.TextParts(toMessageType(turn.Role), turn.Content))
		}
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	p.logger.Debug("Calling OpenAI",
		zap.String("model", p.modelName),
		zap.Int("message_count", len(messages)),
	)

	return generate(ctx, p.model, messages, p.temperature, callTimeout(p.timeout, opts))
}

var _ domain.TextProvider = (*OpenAIProvider)(nil)
