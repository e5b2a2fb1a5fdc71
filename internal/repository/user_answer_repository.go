package repository

import (
	"context"
	"fmt"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxUserAnswerRepository implements domain.UserAnswerRepository using sqlx.
type sqlxUserAnswerRepository struct {
	db *sqlx.DB
}

func NewSQLXUserAnswerRepository(db *sqlx.DB) domain.UserAnswerRepository {
	return &sqlxUserAnswerRepository{db: db}
}

func (r *sqlxUserAnswerRepository) GetByQuiz(ctx context.Context, quizID string) ([]*domain.UserAnswer, error) {
	var rows []models.UserAnswer
	query := `SELECT a.id, a.question_id, a.answer, a.is_correct, a.created_at
	          FROM user_answers a
	          JOIN questions q ON q.id = a.question_id
	          WHERE q.quiz_id = $1
	          ORDER BY a.created_at ASC`

	if err := r.db.SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get answers by quiz: %w", err)
	}

	answers := make([]*domain.UserAnswer, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		answers = append(answers, &domain.UserAnswer{
			ID:         row.ID,
			QuestionID: row.QuestionID,
			Answer:     row.Answer,
			IsCorrect:  row.IsCorrect,
			CreatedAt:  row.CreatedAt,
		})
	}
	return answers, nil
}

func (r *sqlxUserAnswerRepository) Create(ctx context.Context, answer *domain.UserAnswer) error {
	query := `INSERT INTO user_answers (id, question_id, answer, is_correct, created_at)
	          VALUES (:id, :question_id, :answer, :is_correct, :created_at)`

	row := &models.UserAnswer{
		ID:         answer.ID,
		QuestionID: answer.QuestionID,
		Answer:     answer.Answer,
		IsCorrect:  answer.IsCorrect,
		CreatedAt:  answer.CreatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}
