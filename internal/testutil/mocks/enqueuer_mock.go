package mocks

import (
	"github.com/lexprep/lexprep/internal/examapi"
	"github.com/lexprep/lexprep/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockEnqueuer is a mock implementation of submitqueue.Enqueuer
type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueExamAnswer(auth examapi.Auth, attemptID int64, sub models.AnswerSubmission) {
	m.Called(auth, attemptID, sub)
}

func (m *MockEnqueuer) EnqueueFlashcardProgress(auth examapi.Auth, deckID int64, progress models.FlashcardProgress) {
	m.Called(auth, deckID, progress)
}

func (m *MockEnqueuer) EnqueueWatchProgress(auth examapi.Auth, videoID int64, watchedSeconds int) {
	m.Called(auth, videoID, watchedSeconds)
}

func (m *MockEnqueuer) EnqueueReadingProgress(auth examapi.Auth, chapterID int64, readPercent float64) {
	m.Called(auth, chapterID, readPercent)
}
