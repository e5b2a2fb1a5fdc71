package dto

import "time"

// CreateQuizRequest is the body of POST /api/quizzes.
type CreateQuizRequest struct {
	SessionID     string `json:"session_id"`
	NoOfQuestions int    `json:"no_of_questions"`
}

// UpdateQuizRequest is the body of PATCH /api/quizzes/:id.
type UpdateQuizRequest struct {
	Score      *int  `json:"score,omitempty"`
	IsFinished *bool `json:"is_finished,omitempty"`
}

// QuizRecordResponse represents a persisted quiz instance.
type QuizRecordResponse struct {
	QuizID        string     `json:"quiz_id"`
	SessionID     string     `json:"session_id"`
	Score         *int       `json:"score"`
	IsFinished    bool       `json:"is_finished"`
	NoOfQuestions int        `json:"no_of_questions"`
	StartedAt     time.Time  `json:"timestamp_started"`
	FinishedAt    *time.Time `json:"timestamp_finished,omitempty"`
}

// CreateQuestionRequest is the body of POST /api/questions.
type CreateQuestionRequest struct {
	QuizID        string   `json:"quiz_id"`
	QuizQuestion  string   `json:"quiz_question"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options,omitempty"`
}

// QuestionPayload is one question inside a batch create.
type QuestionPayload struct {
	QuizQuestion  string   `json:"quiz_question"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options,omitempty"`
}

// CreateQuestionBatchRequest is the body of POST /api/questions/batch. A
// generated quiz is persisted whole, one row per question.
type CreateQuestionBatchRequest struct {
	QuizID    string            `json:"quiz_id"`
	Questions []QuestionPayload `json:"questions"`
}

// QuestionResponse represents a persisted question row.
type QuestionResponse struct {
	QuestionID    string   `json:"question_id"`
	QuizID        string   `json:"quiz_id"`
	QuizQuestion  string   `json:"quiz_question"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options,omitempty"`
}

// CreateAnswerRequest is the body of POST /api/answers.
type CreateAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
	IsCorrect  bool   `json:"is_correct"`
}

// AnswerResponse represents a persisted user answer.
type AnswerResponse struct {
	UserAnswerID string    `json:"user_answer_id"`
	QuestionID   string    `json:"question_id"`
	Answer       string    `json:"answer"`
	IsCorrect    bool      `json:"is_correct"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionProgressResponse aggregates quiz outcomes for one session.
type SessionProgressResponse struct {
	SessionID     string  `json:"session_id"`
	Title         string  `json:"title"`
	QuizCount     int     `json:"quiz_count"`
	FinishedCount int     `json:"finished_count"`
	AverageScore  float64 `json:"average_score"`
}

// UserResponse is the profile returned by GET /api/users/me.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}
