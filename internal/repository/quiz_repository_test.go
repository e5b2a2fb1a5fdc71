package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// setupQuizTestDB creates a new sqlx.DB instance and sqlmock for quiz repository testing.
func setupQuizTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func TestQuizToDomain(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	finished := now.Add(10 * time.Minute)
	modelQuiz := &models.Quiz{
		ID:            "quiz1",
		SessionID:     "session1",
		Score:         sql.NullInt64{Int64: 4, Valid: true},
		IsFinished:    true,
		NoOfQuestions: 5,
		StartedAt:     now,
		FinishedAt:    sql.NullTime{Time: finished, Valid: true},
	}

	domainQuiz := quizToDomain(modelQuiz)
	assert.Equal(t, modelQuiz.ID, domainQuiz.ID)
	assert.Equal(t, modelQuiz.SessionID, domainQuiz.SessionID)
	assert.NotNil(t, domainQuiz.Score)
	assert.Equal(t, 4, *domainQuiz.Score)
	assert.True(t, domainQuiz.IsFinished)
	assert.NotNil(t, domainQuiz.FinishedAt)
	assert.True(t, finished.Equal(*domainQuiz.FinishedAt))

	// Unfinished quiz has neither score nor finish time
	modelQuiz.Score = sql.NullInt64{}
	modelQuiz.FinishedAt = sql.NullTime{}
	domainQuiz = quizToDomain(modelQuiz)
	assert.Nil(t, domainQuiz.Score)
	assert.Nil(t, domainQuiz.FinishedAt)
}

func TestQuizRepository_GetByID(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXQuizRepository(db)
	ctx := context.Background()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "session_id", "score", "is_finished", "no_of_questions", "timestamp_started", "timestamp_finished"}).
		AddRow("quiz1", "session1", nil, false, 10, now, nil)

	mock.ExpectQuery(`SELECT id, session_id, score, is_finished, no_of_questions, timestamp_started, timestamp_finished FROM quizzes WHERE id = \$1`).
		WithArgs("quiz1").
		WillReturnRows(rows)

	quiz, err := repo.GetByID(ctx, "quiz1")
	assert.NoError(t, err)
	assert.NotNil(t, quiz)
	assert.Equal(t, "quiz1", quiz.ID)
	assert.Equal(t, 10, quiz.NoOfQuestions)
	assert.Nil(t, quiz.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXQuizRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT id, session_id, score, is_finished, no_of_questions, timestamp_started, timestamp_finished FROM quizzes WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	quiz, err := repo.GetByID(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, quiz)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_Update_Finish(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXQuizRepository(db)
	ctx := context.Background()

	score := 3
	isFinished := true

	mock.ExpectExec(`UPDATE quizzes SET score = \$1, is_finished = \$2, timestamp_finished = \$3 WHERE id = \$4`).
		WithArgs(score, isFinished, sqlmock.AnyArg(), "quiz1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "session_id", "score", "is_finished", "no_of_questions", "timestamp_started", "timestamp_finished"}).
		AddRow("quiz1", "session1", int64(3), true, 5, now, now)

	mock.ExpectQuery(`SELECT id, session_id, score, is_finished, no_of_questions, timestamp_started, timestamp_finished FROM quizzes WHERE id = \$1`).
		WithArgs("quiz1").
		WillReturnRows(rows)

	quiz, err := repo.Update(ctx, "quiz1", &score, &isFinished)
	assert.NoError(t, err)
	assert.NotNil(t, quiz)
	assert.True(t, quiz.IsFinished)
	assert.NotNil(t, quiz.Score)
	assert.Equal(t, 3, *quiz.Score)
	assert.NotNil(t, quiz.FinishedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_Update_NotFound(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXQuizRepository(db)
	ctx := context.Background()

	score := 3

	mock.ExpectExec(`UPDATE quizzes SET score = \$1 WHERE id = \$2`).
		WithArgs(score, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	quiz, err := repo.Update(ctx, "missing", &score, nil)
	assert.NoError(t, err)
	assert.Nil(t, quiz)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizRepository_GetProgressByUser(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXQuizRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"session_id", "title", "quiz_count", "finished_count", "average_score"}).
		AddRow("session1", "Biology", 3, 2, 4.5).
		AddRow("session2", "New Chat", 0, 0, nil)

	mock.ExpectQuery(`SELECT s.id AS session_id`).
		WithArgs("user1").
		WillReturnRows(rows)

	progress, err := repo.GetProgressByUser(ctx, "user1")
	assert.NoError(t, err)
	assert.Len(t, progress, 2)
	assert.Equal(t, &domain.SessionProgress{
		SessionID:     "session1",
		Title:         "Biology",
		QuizCount:     3,
		FinishedCount: 2,
		AverageScore:  4.5,
	}, progress[0])
	assert.Equal(t, 0.0, progress[1].AverageScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStringSliceRoundTrip(t *testing.T) {
	original := models.StringSlice{"Mitochondria", "Nucleus", "Ribosome", "Chloroplast"}

	value, err := original.Value()
	assert.NoError(t, err)

	var scanned models.StringSlice
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)

	var empty models.StringSlice
	assert.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}
