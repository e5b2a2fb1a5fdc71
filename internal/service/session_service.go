package service

import (
	"context"
	"strings"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/util"
)

const (
	defaultSessionTitle = "New Chat"
	defaultSessionMode  = "chat"
)

// SessionService manages chat sessions and their messages.
type SessionService interface {
	ListSessions(ctx context.Context, userID string) ([]dto.SessionResponse, error)
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	RenameSession(ctx context.Context, sessionID, title string) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ListMessages(ctx context.Context, sessionID string) ([]dto.MessageResponse, error)
	CreateMessage(ctx context.Context, req *dto.CreateMessageRequest) (*dto.MessageResponse, error)
}

type sessionService struct {
	sessions domain.SessionRepository
	messages domain.MessageRepository
}

func NewSessionService(sessions domain.SessionRepository, messages domain.MessageRepository) SessionService {
	return &sessionService{sessions: sessions, messages: messages}
}

func (s *sessionService) ListSessions(ctx context.Context, userID string) ([]dto.SessionResponse, error) {
	sessions, err := s.sessions.GetByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list sessions", err)
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionResponse(session))
	}
	return out, nil
}

func (s *sessionService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	title := req.Title
	if strings.TrimSpace(title) == "" {
		title = defaultSessionTitle
	}
	mode := req.Mode
	if strings.TrimSpace(mode) == "" {
		mode = defaultSessionMode
	}

	now := time.Now()
	session := &domain.ChatSession{
		ID:           util.NewULID(),
		UserID:       req.UserID,
		Title:        title,
		Mode:         mode,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, domain.NewInternalError("failed to create session", err)
	}
	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *sessionService) RenameSession(ctx context.Context, sessionID, title string) (*dto.SessionResponse, error) {
	updated, err := s.sessions.UpdateTitle(ctx, sessionID, title)
	if err != nil {
		return nil, domain.NewInternalError("failed to update session", err)
	}
	if !updated {
		return nil, domain.NewNotFoundError("Session not found")
	}
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to reload session", err)
	}
	if session == nil {
		return nil, domain.NewNotFoundError("Session not found")
	}
	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	deleted, err := s.sessions.Delete(ctx, sessionID)
	if err != nil {
		return domain.NewInternalError("failed to delete session", err)
	}
	if !deleted {
		return domain.NewNotFoundError("Session not found")
	}
	return nil
}

func (s *sessionService) ListMessages(ctx context.Context, sessionID string) ([]dto.MessageResponse, error) {
	messages, err := s.messages.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list messages", err)
	}
	out := make([]dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, toMessageResponse(message))
	}
	return out, nil
}

// CreateMessage persists a chat turn and touches the owning session's
// last-active timestamp.
func (s *sessionService) CreateMessage(ctx context.Context, req *dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	session, err := s.sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load session", err)
	}
	if session == nil {
		return nil, domain.NewNotFoundError("Session not found")
	}

	message := &domain.Message{
		ID:        util.NewULID(),
		SessionID: req.SessionID,
		Sender:    req.Sender,
		Content:   req.Content,
		QuizData:  req.QuizData,
		Timestamp: time.Now(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, domain.NewInternalError("failed to create message", err)
	}
	if err := s.sessions.Touch(ctx, req.SessionID); err != nil {
		return nil, domain.NewInternalError("failed to touch session", err)
	}
	resp := toMessageResponse(message)
	return &resp, nil
}

func toSessionResponse(s *domain.ChatSession) dto.SessionResponse {
	return dto.SessionResponse{
		SessionID:    s.ID,
		UserID:       s.UserID,
		Title:        s.Title,
		Mode:         s.Mode,
		CreatedAt:    s.CreatedAt,
		LastActiveAt: s.LastActiveAt,
	}
}

func toMessageResponse(m *domain.Message) dto.MessageResponse {
	return dto.MessageResponse{
		MessageID: m.ID,
		SessionID: m.SessionID,
		Sender:    m.Sender,
		Content:   m.Content,
		QuizData:  m.QuizData,
		Timestamp: m.Timestamp,
	}
}
