package domain

import (
	"context"
	"time"
)

// ChatRole identifies who authored a chat turn.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)

// ChatTurn is one prior message of a conversation. The caller owns the chat
// history; providers and the orchestrator only read a trailing window of it.
type ChatTurn struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// GenerateOptions tune a single GenerateText call.
type GenerateOptions struct {
	// SystemInstruction, if set, is delivered as the system message.
	SystemInstruction string
	// PriorTurns are replayed into the request so conversational context is
	// rebuilt per call; no provider-side session is kept between calls.
	PriorTurns []ChatTurn
	// Timeout bounds the call; zero means the provider default.
	Timeout time.Duration
}

// TextProvider is the uniform contract over interchangeable text-generation
// backends. The concrete backend is chosen once at process start and
// injected; callers never branch on it.
type TextProvider interface {
	GenerateText(ctx context.Context, prompt string, opts *GenerateOptions) (string, error)
	Name() string
}

// IntentClassifier decides whether a chat message asks for a quiz and, if
// so, what the quiz should be about. Implementations may be heuristic; the
// orchestrator does not care how the decision is made.
type IntentClassifier interface {
	IsQuizRequest(message string) bool
	ExtractTopic(message string) string
}
