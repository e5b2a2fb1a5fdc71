package service

import (
	"context"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/util"
)

// StudyService manages persisted quiz instances, their questions, the
// student's answers, and per-session progress aggregates.
type StudyService interface {
	CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizRecordResponse, error)
	GetQuiz(ctx context.Context, quizID string) (*dto.QuizRecordResponse, error)
	ListQuizzes(ctx context.Context, sessionID string) ([]dto.QuizRecordResponse, error)
	UpdateQuiz(ctx context.Context, quizID string, req *dto.UpdateQuizRequest) (*dto.QuizRecordResponse, error)
	ListQuestions(ctx context.Context, quizID string) ([]dto.QuestionResponse, error)
	CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	CreateQuestions(ctx context.Context, req *dto.CreateQuestionBatchRequest) ([]dto.QuestionResponse, error)
	CreateAnswer(ctx context.Context, req *dto.CreateAnswerRequest) (*dto.AnswerResponse, error)
	ListAnswers(ctx context.Context, quizID string) ([]dto.AnswerResponse, error)
	GetProgress(ctx context.Context, userID string) ([]dto.SessionProgressResponse, error)
}

type studyService struct {
	quizzes   domain.QuizRepository
	questions domain.QuestionRepository
	answers   domain.UserAnswerRepository
}

func NewStudyService(quizzes domain.QuizRepository, questions domain.QuestionRepository, answers domain.UserAnswerRepository) StudyService {
	return &studyService{quizzes: quizzes, questions: questions, answers: answers}
}

func (s *studyService) CreateQuiz(ctx context.Context, req *dto.CreateQuizRequest) (*dto.QuizRecordResponse, error) {
	quiz := &domain.Quiz{
		ID:            util.NewULID(),
		SessionID:     req.SessionID,
		NoOfQuestions: req.NoOfQuestions,
		StartedAt:     time.Now(),
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to create quiz", err)
	}
	resp := toQuizRecordResponse(quiz)
	return &resp, nil
}

func (s *studyService) GetQuiz(ctx context.Context, quizID string) (*dto.QuizRecordResponse, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("Quiz not found")
	}
	resp := toQuizRecordResponse(quiz)
	return &resp, nil
}

func (s *studyService) ListQuizzes(ctx context.Context, sessionID string) ([]dto.QuizRecordResponse, error) {
	quizzes, err := s.quizzes.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}
	out := make([]dto.QuizRecordResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		out = append(out, toQuizRecordResponse(quiz))
	}
	return out, nil
}

func (s *studyService) UpdateQuiz(ctx context.Context, quizID string, req *dto.UpdateQuizRequest) (*dto.QuizRecordResponse, error) {
	quiz, err := s.quizzes.Update(ctx, quizID, req.Score, req.IsFinished)
	if err != nil {
		return nil, domain.NewInternalError("failed to update quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("Quiz not found")
	}
	resp := toQuizRecordResponse(quiz)
	return &resp, nil
}

func (s *studyService) ListQuestions(ctx context.Context, quizID string) ([]dto.QuestionResponse, error) {
	questions, err := s.questions.GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list questions", err)
	}
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.QuestionResponse{
			QuestionID:    q.ID,
			QuizID:        q.QuizID,
			QuizQuestion:  q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Options:       q.Options,
		})
	}
	return out, nil
}

func (s *studyService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	question := &domain.Question{
		ID:            util.NewULID(),
		QuizID:        req.QuizID,
		Text:          req.QuizQuestion,
		CorrectAnswer: req.CorrectAnswer,
		Options:       req.Options,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, domain.NewInternalError("failed to create question", err)
	}
	return &dto.QuestionResponse{
		QuestionID:    question.ID,
		QuizID:        question.QuizID,
		QuizQuestion:  question.Text,
		CorrectAnswer: question.CorrectAnswer,
		Options:       question.Options,
	}, nil
}

// CreateQuestions persists a whole generated quiz in one transaction, so a
// quiz never ends up with only some of its questions stored.
func (s *studyService) CreateQuestions(ctx context.Context, req *dto.CreateQuestionBatchRequest) ([]dto.QuestionResponse, error) {
	quiz, err := s.quizzes.GetByID(ctx, req.QuizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("Quiz not found")
	}

	questions := make([]*domain.Question, 0, len(req.Questions))
	for _, p := range req.Questions {
		questions = append(questions, &domain.Question{
			ID:            util.NewULID(),
			QuizID:        req.QuizID,
			Text:          p.QuizQuestion,
			CorrectAnswer: p.CorrectAnswer,
			Options:       p.Options,
		})
	}
	if err := s.questions.CreateBatch(ctx, questions); err != nil {
		return nil, domain.NewInternalError("failed to create questions", err)
	}

	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.QuestionResponse{
			QuestionID:    q.ID,
			QuizID:        q.QuizID,
			QuizQuestion:  q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Options:       q.Options,
		})
	}
	return out, nil
}

func (s *studyService) CreateAnswer(ctx context.Context, req *dto.CreateAnswerRequest) (*dto.AnswerResponse, error) {
	answer := &domain.UserAnswer{
		ID:         util.NewULID(),
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
		IsCorrect:  req.IsCorrect,
		CreatedAt:  time.Now(),
	}
	if err := s.answers.Create(ctx, answer); err != nil {
		return nil, domain.NewInternalError("failed to create answer", err)
	}
	return &dto.AnswerResponse{
		UserAnswerID: answer.ID,
		QuestionID:   answer.QuestionID,
		Answer:       answer.Answer,
		IsCorrect:    answer.IsCorrect,
		CreatedAt:    answer.CreatedAt,
	}, nil
}

func (s *studyService) ListAnswers(ctx context.Context, quizID string) ([]dto.AnswerResponse, error) {
	answers, err := s.answers.GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list answers", err)
	}
	out := make([]dto.AnswerResponse, 0, len(answers))
	for _, a := range answers {
		out = append(out, dto.AnswerResponse{
			UserAnswerID: a.ID,
			QuestionID:   a.QuestionID,
			Answer:       a.Answer,
			IsCorrect:    a.IsCorrect,
			CreatedAt:    a.CreatedAt,
		})
	}
	return out, nil
}

func (s *studyService) GetProgress(ctx context.Context, userID string) ([]dto.SessionProgressResponse, error) {
	progress, err := s.quizzes.GetProgressByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get progress", err)
	}
	out := make([]dto.SessionProgressResponse, 0, len(progress))
	for _, p := range progress {
		out = append(out, dto.SessionProgressResponse{
			SessionID:     p.SessionID,
			Title:         p.Title,
			QuizCount:     p.QuizCount,
			FinishedCount: p.FinishedCount,
			AverageScore:  p.AverageScore,
		})
	}
	return out, nil
}

func toQuizRecordResponse(q *domain.Quiz) dto.QuizRecordResponse {
	return dto.QuizRecordResponse{
		QuizID:        q.ID,
		SessionID:     q.SessionID,
		Score:         q.Score,
		IsFinished:    q.IsFinished,
		NoOfQuestions: q.NoOfQuestions,
		StartedAt:     q.StartedAt,
		FinishedAt:    q.FinishedAt,
	}
}
