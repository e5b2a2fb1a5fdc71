package domain

import (
	"fmt"
	"strings"
)

// DefaultOptionCount is the number of choices a multiple-choice question carries.
const DefaultOptionCount = 4

// QuizQuestion is a single validated multiple-choice question. It is
// immutable once constructed by the parser.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Validate checks the structural invariants: non-empty question text,
// exactly expectedOptionCount distinct non-empty options, and an answer
// that is one of the options.
func (q *QuizQuestion) Validate(expectedOptionCount int) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != expectedOptionCount {
		return fmt.Errorf("expected %d options, got %d", expectedOptionCount, len(q.Options))
	}
	seen := make(map[string]struct{}, len(q.Options))
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("option %d is empty", i)
		}
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("option %q is duplicated", opt)
		}
		seen[opt] = struct{}{}
	}
	if _, ok := seen[q.Answer]; !ok {
		return fmt.Errorf("answer %q is not one of the options", q.Answer)
	}
	return nil
}

// GeneratedQuizResult is the outcome of one quiz-generation call.
// ParseFailed distinguishes "the provider answered, but not with valid quiz
// JSON" from success; RawResponse carries the provider text for diagnosis.
type GeneratedQuizResult struct {
	Questions   []QuizQuestion
	ParseFailed bool
	RawResponse string
}
