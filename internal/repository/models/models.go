package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// ChatSession is the chat_sessions row.
type ChatSession struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Title        string    `db:"title"`
	Mode         string    `db:"mode"`
	CreatedAt    time.Time `db:"created_at"`
	LastActiveAt time.Time `db:"last_active_at"`
}

// Message is the messages row.
type Message struct {
	ID        string         `db:"id"`
	SessionID string         `db:"session_id"`
	Sender    string         `db:"sender"`
	Content   string         `db:"content"`
	QuizData  sql.NullString `db:"quiz_data"`
	Timestamp time.Time      `db:"timestamp"`
}

// Quiz is the quizzes row.
type Quiz struct {
	ID            string        `db:"id"`
	SessionID     string        `db:"session_id"`
	Score         sql.NullInt64 `db:"score"`
	IsFinished    bool          `db:"is_finished"`
	NoOfQuestions int           `db:"no_of_questions"`
	StartedAt     time.Time     `db:"timestamp_started"`
	FinishedAt    sql.NullTime  `db:"timestamp_finished"`
}

// Question is the questions row.
type Question struct {
	ID            string      `db:"id"`
	QuizID        string      `db:"quiz_id"`
	QuizQuestion  string      `db:"quiz_question"`
	CorrectAnswer string      `db:"correct_answer"`
	Options       StringSlice `db:"options"`
}

// UserAnswer is the user_answers row.
type UserAnswer struct {
	ID         string    `db:"id"`
	QuestionID string    `db:"question_id"`
	Answer     string    `db:"answer"`
	IsCorrect  bool      `db:"is_correct"`
	CreatedAt  time.Time `db:"created_at"`
}

// User is the users row; credentials live with the external auth provider.
type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	CreatedAt time.Time `db:"created_at"`
}

// SessionProgress is the aggregate row returned by the progress query.
type SessionProgress struct {
	SessionID     string          `db:"session_id"`
	Title         string          `db:"title"`
	QuizCount     int             `db:"quiz_count"`
	FinishedCount int             `db:"finished_count"`
	AverageScore  sql.NullFloat64 `db:"average_score"`
}
