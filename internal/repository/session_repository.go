package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxSessionRepository implements domain.SessionRepository using sqlx.
type sqlxSessionRepository struct {
	db *sqlx.DB
}

func NewSQLXSessionRepository(db *sqlx.DB) domain.SessionRepository {
	return &sqlxSessionRepository{db: db}
}

func (r *sqlxSessionRepository) GetByUser(ctx context.Context, userID string) ([]*domain.ChatSession, error) {
	var rows []models.ChatSession
	query := `SELECT id, user_id, title, mode, created_at, last_active_at
	          FROM chat_sessions WHERE user_id = $1
	          ORDER BY last_active_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get sessions by user: %w", err)
	}

	sessions := make([]*domain.ChatSession, 0, len(rows))
	for i := range rows {
		sessions = append(sessions, sessionToDomain(&rows[i]))
	}
	return sessions, nil
}

func (r *sqlxSessionRepository) GetByID(ctx context.Context, id string) (*domain.ChatSession, error) {
	var row models.ChatSession
	query := `SELECT id, user_id, title, mode, created_at, last_active_at
	          FROM chat_sessions WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}
	return sessionToDomain(&row), nil
}

func (r *sqlxSessionRepository) Create(ctx context.Context, session *domain.ChatSession) error {
	query := `INSERT INTO chat_sessions (id, user_id, title, mode, created_at, last_active_at)
	          VALUES (:id, :user_id, :title, :mode, :created_at, :last_active_at)`

	if _, err := r.db.NamedExecContext(ctx, query, sessionToModel(session)); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sqlxSessionRepository) UpdateTitle(ctx context.Context, id, title string) (bool, error) {
	query := `UPDATE chat_sessions SET title = $1, last_active_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, title, time.Now(), id)
	if err != nil {
		return false, fmt.Errorf("failed to update session title: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *sqlxSessionRepository) Touch(ctx context.Context, id string) error {
	query := `UPDATE chat_sessions SET last_active_at = $1 WHERE id = $2`

	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

// Delete removes the session and everything hanging off it. Messages,
// quizzes, questions and answers cascade through foreign keys.
func (r *sqlxSessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM chat_sessions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func sessionToDomain(m *models.ChatSession) *domain.ChatSession {
	return &domain.ChatSession{
		ID:           m.ID,
		UserID:       m.UserID,
		Title:        m.Title,
		Mode:         m.Mode,
		CreatedAt:    m.CreatedAt,
		LastActiveAt: m.LastActiveAt,
	}
}

func sessionToModel(s *domain.ChatSession) *models.ChatSession {
	return &models.ChatSession{
		ID:           s.ID,
		UserID:       s.UserID,
		Title:        s.Title,
		Mode:         s.Mode,
		CreatedAt:    s.CreatedAt,
		LastActiveAt: s.LastActiveAt,
	}
}
