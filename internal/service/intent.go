package service

import (
	"strings"

	"quizcraft/internal/domain"
)

// quizKeywords is the fixed set that flags a chat message as a quiz request.
// Substring match, case-insensitive. This is a heuristic, not an NLP model;
// false positives and negatives are acceptable.
var quizKeywords = []string{
	"quiz me",
	"test me",
	"practice problems",
	"practice questions",
	"make a quiz",
	"generate quiz",
	"create quiz",
	"questions about",
	"test my knowledge",
	"check my understanding",
	"make questions",
}

// topicTriggers are checked in order; the first one that occurs in the
// message wins, and the topic is whatever follows its last occurrence.
var topicTriggers = []string{
	"quiz me about",
	"quiz me on",
	"test me on",
	"practice problems about",
	"practice questions on",
	"make a quiz about",
	"questions about",
}

// KeywordIntentClassifier implements domain.IntentClassifier with fixed
// keyword lists. It is injected behind the interface so it can later be
// swapped for a model-based classifier without touching the orchestrator.
type KeywordIntentClassifier struct{}

func NewKeywordIntentClassifier() domain.IntentClassifier {
	return &KeywordIntentClassifier{}
}

// IsQuizRequest reports whether the message asks for a quiz.
func (c *KeywordIntentClassifier) IsQuizRequest(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range quizKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractTopic returns what the quiz should be about. If a trigger phrase is
// present, the topic is everything after its last occurrence, trimmed; the
// original casing of the message is kept. With no trigger the whole message
// is the topic.
func (c *KeywordIntentClassifier) ExtractTopic(message string) string {
	lower := strings.ToLower(message)
	for _, trigger := range topicTriggers {
		idx := strings.LastIndex(lower, trigger)
		if idx == -1 {
			continue
		}
		topic := strings.TrimSpace(message[idx+len(trigger):])
		if topic != "" {
			return topic
		}
		return message
	}
	return message
}

var _ domain.IntentClassifier = (*KeywordIntentClassifier)(nil)
