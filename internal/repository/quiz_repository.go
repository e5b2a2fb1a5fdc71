package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func (r *sqlxQuizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var row models.Quiz
	query := `SELECT id, session_id, score, is_finished, no_of_questions, timestamp_started, timestamp_finished
	          FROM quizzes WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by id: %w", err)
	}
	return quizToDomain(&row), nil
}

func (r *sqlxQuizRepository) GetBySession(ctx context.Context, sessionID string) ([]*domain.Quiz, error) {
	var rows []models.Quiz
	query := `SELECT id, session_id, score, is_finished, no_of_questions, timestamp_started, timestamp_finished
	          FROM quizzes WHERE session_id = $1
	          ORDER BY timestamp_started DESC`

	if err := r.db.SelectContext(ctx, &rows, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to get quizzes by session: %w", err)
	}

	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, quizToDomain(&rows[i]))
	}
	return quizzes, nil
}

func (r *sqlxQuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	query := `INSERT INTO quizzes (id, session_id, score, is_finished, no_of_questions, timestamp_started, timestamp_finished)
	          VALUES (:id, :session_id, :score, :is_finished, :no_of_questions, :timestamp_started, :timestamp_finished)`

	if _, err := r.db.NamedExecContext(ctx, query, quizToModel(quiz)); err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// Update applies a partial update: nil fields are left untouched. Marking a
// quiz finished stamps timestamp_finished as well.
func (r *sqlxQuizRepository) Update(ctx context.Context, id string, score *int, isFinished *bool) (*domain.Quiz, error) {
	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if score != nil {
		setClauses = append(setClauses, fmt.Sprintf("score = $%d", argIdx))
		args = append(args, *score)
		argIdx++
	}
	if isFinished != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_finished = $%d", argIdx))
		args = append(args, *isFinished)
		argIdx++
		if *isFinished {
			setClauses = append(setClauses, fmt.Sprintf("timestamp_finished = $%d", argIdx))
			args = append(args, time.Now())
			argIdx++
		}
	}
	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE quizzes SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argIdx)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *sqlxQuizRepository) GetProgressByUser(ctx context.Context, userID string) ([]*domain.SessionProgress, error) {
	var rows []models.SessionProgress
	query := `SELECT s.id AS session_id,
	                 s.title AS title,
	                 COUNT(q.id) AS quiz_count,
	                 COUNT(q.id) FILTER (WHERE q.is_finished) AS finished_count,
	                 AVG(q.score) FILTER (WHERE q.is_finished) AS average_score
	          FROM chat_sessions s
	          LEFT JOIN quizzes q ON q.session_id = s.id
	          WHERE s.user_id = $1
	          GROUP BY s.id, s.title
	          ORDER BY MAX(s.last_active_at) DESC`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get progress by user: %w", err)
	}

	progress := make([]*domain.SessionProgress, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		progress = append(progress, &domain.SessionProgress{
			SessionID:     row.SessionID,
			Title:         row.Title,
			QuizCount:     row.QuizCount,
			FinishedCount: row.FinishedCount,
			AverageScore:  row.AverageScore.Float64,
		})
	}
	return progress, nil
}

func quizToDomain(m *models.Quiz) *domain.Quiz {
	quiz := &domain.Quiz{
		ID:            m.ID,
		SessionID:     m.SessionID,
		IsFinished:    m.IsFinished,
		NoOfQuestions: m.NoOfQuestions,
		StartedAt:     m.StartedAt,
	}
	if m.Score.Valid {
		score := int(m.Score.Int64)
		quiz.Score = &score
	}
	if m.FinishedAt.Valid {
		finishedAt := m.FinishedAt.Time
		quiz.FinishedAt = &finishedAt
	}
	return quiz
}

func quizToModel(q *domain.Quiz) *models.Quiz {
	m := &models.Quiz{
		ID:            q.ID,
		SessionID:     q.SessionID,
		IsFinished:    q.IsFinished,
		NoOfQuestions: q.NoOfQuestions,
		StartedAt:     q.StartedAt,
	}
	if q.Score != nil {
		m.Score = sql.NullInt64{Int64: int64(*q.Score), Valid: true}
	}
	if q.FinishedAt != nil {
		m.FinishedAt = sql.NullTime{Time: *q.FinishedAt, Valid: true}
	}
	return m
}
