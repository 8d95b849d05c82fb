package mocks

import (
	"context"

	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockTopicQuizAPI is a mock implementation of examapi.TopicQuizAPI
type MockTopicQuizAPI struct {
	mock.Mock
}

func (m *MockTopicQuizAPI) StartTopicQuiz(ctx context.Context, auth examapi.Auth, topicID int64) (*models.TopicQuizAttempt, error) {
	args := m.Called(ctx, auth, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TopicQuizAttempt), args.Error(1)
}

func (m *MockTopicQuizAPI) TopicQuizAttempt(ctx context.Context, auth examapi.Auth, attemptID int64) (*models.TopicQuizAttempt, error) {
	args := m.Called(ctx, auth, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TopicQuizAttempt), args.Error(1)
}

func (m *MockTopicQuizAPI) TopicQuizCurrentQuestion(ctx context.Context, auth examapi.Auth, attemptID int64) (*models.TopicQuizQuestion, error) {
	args := m.Called(ctx, auth, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TopicQuizQuestion), args.Error(1)
}

func (m *MockTopicQuizAPI) SubmitTopicAnswer(ctx context.Context, auth examapi.Auth, attemptID int64, sub models.TopicAnswerSubmission) (*models.TopicAnswerResult, error) {
	args := m.Called(ctx, auth, attemptID, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TopicAnswerResult), args.Error(1)
}

func (m *MockTopicQuizAPI) UseFiftyFifty(ctx context.Context, auth examapi.Auth, attemptID int64, questionID int64) (*models.FiftyFiftyResult, error) {
	args := m.Called(ctx, auth, attemptID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FiftyFiftyResult), args.Error(1)
}

func (m *MockTopicQuizAPI) GameProfile(ctx context.Context, auth examapi.Auth) (*models.UserGameProfile, error) {
	args := m.Called(ctx, auth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserGameProfile), args.Error(1)
}
