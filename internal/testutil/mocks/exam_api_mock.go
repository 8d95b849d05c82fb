package mocks

import (
	"context"

	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockExamAPI is a mock implementation of examapi.ExamAPI
type MockExamAPI struct {
	mock.Mock
}

func (m *MockExamAPI) StartExamAttempt(ctx context.Context, auth examapi.Auth) (*models.ExamAttempt, error) {
	args := m.Called(ctx, auth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamAttempt), args.Error(1)
}

func (m *MockExamAPI) ExamQuestions(ctx context.Context, auth examapi.Auth, attemptID int64) ([]models.Question, error) {
	args := m.Called(ctx, auth, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockExamAPI) ExamTimingConfig(ctx context.Context, auth examapi.Auth) (*models.ExamTimingConfig, error) {
	args := m.Called(ctx, auth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamTimingConfig), args.Error(1)
}

func (m *MockExamAPI) SubmitExamAnswer(ctx context.Context, auth examapi.Auth, attemptID int64, sub models.AnswerSubmission, idempotencyKey string) error {
	args := m.Called(ctx, auth, attemptID, sub, idempotencyKey)
	return args.Error(0)
}

func (m *MockExamAPI) CompleteExamAttempt(ctx context.Context, auth examapi.Auth, attemptID int64, timeSpentSeconds int) (*models.ExamAttempt, error) {
	args := m.Called(ctx, auth, attemptID, timeSpentSeconds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamAttempt), args.Error(1)
}

func (m *MockExamAPI) ExamReview(ctx context.Context, auth examapi.Auth, attemptID int64) (*models.ExamReview, error) {
	args := m.Called(ctx, auth, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExamReview), args.Error(1)
}
