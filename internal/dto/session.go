package dto

import "time"

// CreateSessionRequest is the body of POST /api/sessions.
type CreateSessionRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Mode   string `json:"mode"`
}

// UpdateSessionRequest is the body of PATCH /api/sessions/:id.
type UpdateSessionRequest struct {
	Title string `json:"title"`
}

// SessionResponse represents a chat session in the API response.
type SessionResponse struct {
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Mode         string    `json:"mode"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// CreateMessageRequest is the body of POST /api/messages.
type CreateMessageRequest struct {
	SessionID string `json:"session_id"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	QuizData  string `json:"quiz_data,omitempty"`
}

// MessageResponse represents a persisted chat message.
type MessageResponse struct {
	MessageID string    `json:"message_id"`
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	QuizData  string    `json:"quiz_data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
