package domain

import (
	"context"
	"time"
)

// ChatSession groups the messages and quizzes of one conversation.
type ChatSession struct {
	ID           string
	UserID       string
	Title        string
	Mode         string
	CreatedAt    time.Time
	LastActiveAt time.Time
}

// Message is one chat turn as persisted. QuizData, when non-empty, holds the
// JSON of a quiz attached to an assistant message.
type Message struct {
	ID        string
	SessionID string
	Sender    string
	Content   string
	QuizData  string
	Timestamp time.Time
}

// Quiz is a persisted quiz instance taken inside a session.
type Quiz struct {
	ID            string
	SessionID     string
	Score         *int
	IsFinished    bool
	NoOfQuestions int
	StartedAt     time.Time
	FinishedAt    *time.Time
}

// Question is one persisted quiz question. Options are serialized alongside
// the row so a finished quiz can be reviewed later.
type Question struct {
	ID            string
	QuizID        string
	Text          string
	CorrectAnswer string
	Options       []string
}

// UserAnswer records what the student answered for one question.
type UserAnswer struct {
	ID         string
	QuestionID string
	Answer     string
	IsCorrect  bool
	CreatedAt  time.Time
}

// User is a profile row; credentials live with the external auth provider.
type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
}

// SessionProgress aggregates quiz outcomes for one session.
type SessionProgress struct {
	SessionID     string
	Title         string
	QuizCount     int
	FinishedCount int
	AverageScore  float64
}

// Persistence Collaborator ports. Implementations return (nil, nil) when a
// single entity is not found; services translate that into NOT_FOUND.

type SessionRepository interface {
	GetByUser(ctx context.Context, userID string) ([]*ChatSession, error)
	GetByID(ctx context.Context, id string) (*ChatSession, error)
	Create(ctx context.Context, session *ChatSession) error
	UpdateTitle(ctx context.Context, id, title string) (bool, error)
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) (bool, error)
}

type MessageRepository interface {
	GetBySession(ctx context.Context, sessionID string) ([]*Message, error)
	Create(ctx context.Context, message *Message) error
}

type QuizRepository interface {
	GetByID(ctx context.Context, id string) (*Quiz, error)
	GetBySession(ctx context.Context, sessionID string) ([]*Quiz, error)
	Create(ctx context.Context, quiz *Quiz) error
	Update(ctx context.Context, id string, score *int, isFinished *bool) (*Quiz, error)
	GetProgressByUser(ctx context.Context, userID string) ([]*SessionProgress, error)
}

type QuestionRepository interface {
	GetByQuiz(ctx context.Context, quizID string) ([]*Question, error)
	Create(ctx context.Context, question *Question) error
	CreateBatch(ctx context.Context, questions []*Question) error
}

type UserAnswerRepository interface {
	GetByQuiz(ctx context.Context, quizID string) ([]*UserAnswer, error)
	Create(ctx context.Context, answer *UserAnswer) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
}
