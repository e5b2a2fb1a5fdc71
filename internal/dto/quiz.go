package dto

import "quizcraft/internal/domain"

// GenerateQuizRequest is the body of POST /ai/generate-quiz.
// @Description Study material to generate a quiz from
type GenerateQuizRequest struct {
	Text string `json:"text"`
}

// QuizQuestionResponse is one generated multiple-choice question.
type QuizQuestionResponse struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// GenerateQuizResponse is the body returned by POST /ai/generate-quiz.
type GenerateQuizResponse struct {
	Quiz []QuizQuestionResponse `json:"quiz"`
}

// ToQuizQuestionResponses maps domain questions to their API shape.
func ToQuizQuestionResponses(questions []domain.QuizQuestion) []QuizQuestionResponse {
	out := make([]QuizQuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, QuizQuestionResponse{
			Question: q.Question,
			Options:  q.Options,
			Answer:   q.Answer,
		})
	}
	return out
}
