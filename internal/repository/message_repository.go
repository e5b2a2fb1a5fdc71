package repository

import (
	"context"
	"database/sql"
	"fmt"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxMessageRepository implements domain.MessageRepository using sqlx.
type sqlxMessageRepository struct {
	db *sqlx.DB
}

func NewSQLXMessageRepository(db *sqlx.DB) domain.MessageRepository {
	return &sqlxMessageRepository{db: db}
}

func (r *sqlxMessageRepository) GetBySession(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	var rows []models.Message
	query := `SELECT id, session_id, sender, content, quiz_data, timestamp
	          FROM messages WHERE session_id = $1
	          ORDER BY timestamp ASC`

	if err := r.db.SelectContext(ctx, &rows, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to get messages by session: %w", err)
	}

	messages := make([]*domain.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, messageToDomain(&rows[i]))
	}
	return messages, nil
}

func (r *sqlxMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `INSERT INTO messages (id, session_id, sender, content, quiz_data, timestamp)
	          VALUES (:id, :session_id, :sender, :content, :quiz_data, :timestamp)`

	if _, err := r.db.NamedExecContext(ctx, query, messageToModel(message)); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func messageToDomain(m *models.Message) *domain.Message {
	return &domain.Message{
		ID:        m.ID,
		SessionID: m.SessionID,
		Sender:    m.Sender,
		Content:   m.Content,
		QuizData:  m.QuizData.String,
		Timestamp: m.Timestamp,
	}
}

func messageToModel(msg *domain.Message) *models.Message {
	return &models.Message{
		ID:        msg.ID,
		SessionID: msg.SessionID,
		Sender:    msg.Sender,
		Content:   msg.Content,
		QuizData:  sql.NullString{String: msg.QuizData, Valid: msg.QuizData != ""},
		Timestamp: msg.Timestamp,
	}
}
