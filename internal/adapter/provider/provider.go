// Package provider contains the text-generation backends. Exactly one of
// them is constructed at process start (production selects OpenAI, anything
// else selects Google AI) and injected as a domain.TextProvider.
package provider

import (
	"context"
	"fmt"
	"time"

	"quizcraft/internal/domain"

	"github.com/tmc/langchaingo/llms"
)

// DefaultTimeout bounds a provider call when neither the config nor the
// per-call options set one.
const DefaultTimeout = 60 * time.Second

func toMessageType(role domain.ChatRole) llms.ChatMessageType {
	switch role {
	case domain.RoleAssistant:
		return llms.ChatMessageTypeAI
	case domain.RoleSystem:
		return llms.ChatMessageTypeSystem
	default:
		return llms.ChatMessageTypeHuman
	}
}

type generateOutcome struct {
	response *llms.ContentResponse
	err      error
}

// generate runs one GenerateContent call under a deadline. If the model does
// not return before the deadline the call is abandoned and the caller gets a
// PROVIDER_TIMEOUT error; we only guarantee that the caller stops waiting,
// not that the remote call is aborted.
func generate(ctx context.Context, model llms.Model, messages []llms.MessageContent, temperature float64, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan generateOutcome, 1)
	go func() {
		resp, err := model.GenerateContent(ctx, messages, llms.WithTemperature(temperature))
		done <- generateOutcome{response: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", domain.NewProviderTimeoutError(ctx.Err())
	case out := <-done:
		if out.err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				return "", domain.NewProviderTimeoutError(out.err)
			}
			return "", domain.NewProviderError(out.err)
		}
		if out.response == nil || len(out.response.Choices) == 0 {
			return "", domain.NewProviderError(fmt.Errorf("provider returned no choices"))
		}
		return out.response.Choices[0].Content, nil
	}
}

func callTimeout(configured time.Duration, opts *domain.GenerateOptions) time.Duration {
	if opts != nil && opts.Timeout > 0 {
		return opts.Timeout
	}
	if configured > 0 {
		return configured
	}
	return DefaultTimeout
}
