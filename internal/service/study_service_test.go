package service

import (
	"context"
	"testing"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"

	"github.com/stretchr/testify/assert"
)

// mockQuizRepository is a manual mock for domain.QuizRepository.
type mockQuizRepository struct {
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Quiz, error)
	GetBySessionFunc      func(ctx context.Context, sessionID string) ([]*domain.Quiz, error)
	CreateFunc            func(ctx context.Context, quiz *domain.Quiz) error
	UpdateFunc            func(ctx context.Context, id string, score *int, isFinished *bool) (*domain.Quiz, error)
	GetProgressByUserFunc func(ctx context.Context, userID string) ([]*domain.SessionProgress, error)
}

func (m *mockQuizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockQuizRepository) GetBySession(ctx context.Context, sessionID string) ([]*domain.Quiz, error) {
	return m.GetBySessionFunc(ctx, sessionID)
}

func (m *mockQuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	return m.CreateFunc(ctx, quiz)
}

func (m *mockQuizRepository) Update(ctx context.Context, id string, score *int, isFinished *bool) (*domain.Quiz, error) {
	return m.UpdateFunc(ctx, id, score, isFinished)
}

func (m *mockQuizRepository) GetProgressByUser(ctx context.Context, userID string) ([]*domain.SessionProgress, error) {
	return m.GetProgressByUserFunc(ctx, userID)
}

// mockQuestionRepository is a manual mock for domain.QuestionRepository.
type mockQuestionRepository struct {
	GetByQuizFunc   func(ctx context.Context, quizID string) ([]*domain.Question, error)
	CreateFunc      func(ctx context.Context, question *domain.Question) error
	CreateBatchFunc func(ctx context.Context, questions []*domain.Question) error
}

func (m *mockQuestionRepository) GetByQuiz(ctx context.Context, quizID string) ([]*domain.Question, error) {
	return m.GetByQuizFunc(ctx, quizID)
}

func (m *mockQuestionRepository) Create(ctx context.Context, question *domain.Question) error {
	return m.CreateFunc(ctx, question)
}

func (m *mockQuestionRepository) CreateBatch(ctx context.Context, questions []*domain.Question) error {
	return m.CreateBatchFunc(ctx, questions)
}

var (
	_ domain.QuizRepository     = (*mockQuizRepository)(nil)
	_ domain.QuestionRepository = (*mockQuestionRepository)(nil)
)

func TestCreateQuestions_Batch(t *testing.T) {
	ctx := context.Background()
	quizID := "01HZXW8Q2M3N4P5R6S7T8V9W0X"

	quizzes := &mockQuizRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Quiz, error) {
			return &domain.Quiz{ID: id, SessionID: "session1", NoOfQuestions: 2, StartedAt: time.Now()}, nil
		},
	}

	var persisted []*domain.Question
	questions := &mockQuestionRepository{
		CreateBatchFunc: func(ctx context.Context, qs []*domain.Question) error {
			persisted = qs
			return nil
		},
	}
	svc := NewStudyService(quizzes, questions, nil)

	out, err := svc.CreateQuestions(ctx, &dto.CreateQuestionBatchRequest{
		QuizID: quizID,
		Questions: []dto.QuestionPayload{
			{QuizQuestion: "Q1", CorrectAnswer: "A", Options: []string{"A", "B", "C", "D"}},
			{QuizQuestion: "Q2", CorrectAnswer: "B", Options: []string{"A", "B", "C", "D"}},
		},
	})
	assert.NoError(t, err)
	assert.Len(t, out, 2)

	// All rows go through one batch insert, in request order, with fresh IDs.
	if assert.Len(t, persisted, 2) {
		assert.Equal(t, "Q1", persisted[0].Text)
		assert.Equal(t, "Q2", persisted[1].Text)
		assert.Equal(t, quizID, persisted[0].QuizID)
		assert.NotEmpty(t, persisted[0].ID)
		assert.NotEqual(t, persisted[0].ID, persisted[1].ID)
	}
	assert.Equal(t, persisted[0].ID, out[0].QuestionID)
}

func TestCreateQuestions_QuizNotFound(t *testing.T) {
	quizzes := &mockQuizRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Quiz, error) {
			return nil, nil
		},
	}
	questions := &mockQuestionRepository{
		CreateBatchFunc: func(ctx context.Context, qs []*domain.Question) error {
			t.Fatal("batch insert must not run for a missing quiz")
			return nil
		},
	}
	svc := NewStudyService(quizzes, questions, nil)

	_, err := svc.CreateQuestions(context.Background(), &dto.CreateQuestionBatchRequest{
		QuizID:    "01HZXW8Q2M3N4P5R6S7T8V9W0X",
		Questions: []dto.QuestionPayload{{QuizQuestion: "Q1", CorrectAnswer: "A"}},
	})
	assert.Error(t, err)

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}
