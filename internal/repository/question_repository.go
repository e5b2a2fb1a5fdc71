package repository

import (
	"context"
	"fmt"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxQuestionRepository implements domain.QuestionRepository using sqlx.
type sqlxQuestionRepository struct {
	db *sqlx.DB
}

func NewSQLXQuestionRepository(db *sqlx.DB) domain.QuestionRepository {
	return &sqlxQuestionRepository{db: db}
}

func (r *sqlxQuestionRepository) GetByQuiz(ctx context.Context, quizID string) ([]*domain.Question, error) {
	var rows []models.Question
	query := `SELECT id, quiz_id, quiz_question, correct_answer, options
	          FROM questions WHERE quiz_id = $1
	          ORDER BY id ASC`

	if err := r.db.SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get questions by quiz: %w", err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, questionToDomain(&rows[i]))
	}
	return questions, nil
}

func (r *sqlxQuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	query := `INSERT INTO questions (id, quiz_id, quiz_question, correct_answer, options)
	          VALUES (:id, :quiz_id, :quiz_question, :correct_answer, :options)`

	if _, err := r.db.NamedExecContext(ctx, query, questionToModel(question)); err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// CreateBatch inserts all questions in one transaction so a generated quiz
// is persisted whole or not at all.
func (r *sqlxQuestionRepository) CreateBatch(ctx context.Context, questions []*domain.Question) error {
	if len(questions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO questions (id, quiz_id, quiz_question, correct_answer, options)
	          VALUES (:id, :quiz_id, :quiz_question, :correct_answer, :options)`

	for _, question := range questions {
		if _, err := tx.NamedExecContext(ctx, query, questionToModel(question)); err != nil {
			return fmt.Errorf("failed to create question in batch: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit question batch: %w", err)
	}
	return nil
}

func questionToDomain(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:            m.ID,
		QuizID:        m.QuizID,
		Text:          m.QuizQuestion,
		CorrectAnswer: m.CorrectAnswer,
		Options:       []string(m.Options),
	}
}

func questionToModel(q *domain.Question) *models.Question {
	return &models.Question{
		ID:            q.ID,
		QuizID:        q.QuizID,
		QuizQuestion:  q.Text,
		CorrectAnswer: q.CorrectAnswer,
		Options:       models.StringSlice(q.Options),
	}
}
