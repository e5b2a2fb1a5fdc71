package service

import (
	"encoding/json"
	"fmt"

	"quizcraft/internal/domain"
)

// BatchPolicy decides what happens when one element of a generated quiz
// fails validation.
type BatchPolicy int

const (
	// PolicyFailBatch rejects the whole parse on the first invalid element.
	// This is the default: a partially valid quiz is worse than a clear error.
	PolicyFailBatch BatchPolicy = iota
	// PolicyDropInvalid drops invalid elements and keeps the rest in order.
	PolicyDropInvalid
)

// ParseQuestions parses jsonText into validated quiz questions. The input is
// expected to be a JSON array of objects with fields question, options
// (exactly expectedOptionCount entries) and answer (a member of options).
// Question order is preserved.
func ParseQuestions(jsonText string, expectedOptionCount int, policy BatchPolicy) ([]domain.QuizQuestion, error) {
	if expectedOptionCount <= 0 {
		expectedOptionCount = domain.DefaultOptionCount
	}

	var top json.RawMessage
	if err := json.Unmarshal([]byte(jsonText), &top); err != nil {
		return nil, domain.NewParseError(domain.CodeParseNotJSON, "Provider response is not valid JSON", jsonText, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(top, &raw); err != nil {
		return nil, domain.NewParseError(domain.CodeParseNotArray, "Provider response is not a JSON array", jsonText, err)
	}

	questions := make([]domain.QuizQuestion, 0, len(raw))
	for i, item := range raw {
		var q domain.QuizQuestion
		if err := json.Unmarshal(item, &q); err != nil {
			if policy == PolicyDropInvalid {
				continue
			}
			return nil, domain.NewParseError(domain.CodeParseSchemaInvalid,
				fmt.Sprintf("Question %d is not an object with question/options/answer", i), jsonText, err)
		}
		if err := q.Validate(expectedOptionCount); err != nil {
			if policy == PolicyDropInvalid {
				continue
			}
			return nil, domain.NewParseError(domain.CodeParseSchemaInvalid,
				fmt.Sprintf("Question %d failed validation: %v", i, err), jsonText, err)
		}
		questions = append(questions, q)
	}

	return questions, nil
}
