package examapi

import (
	"context"

	"github.com/lexprep/lexprep/internal/models"
)

// AuthAPI covers login/logout against the exam API.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error)
	Logout(ctx context.Context, auth Auth) error
}

// ExamAPI covers the mock-exam attempt lifecycle.
type ExamAPI interface {
	StartExamAttempt(ctx context.Context, auth Auth) (*models.ExamAttempt, error)
	ExamQuestions(ctx context.Context, auth Auth, attemptID int64) ([]models.Question, error)
	ExamTimingConfig(ctx context.Context, auth Auth) (*models.ExamTimingConfig, error)
	SubmitExamAnswer(ctx context.Context, auth Auth, attemptID int64, sub models.AnswerSubmission, idempotencyKey string) error
	CompleteExamAttempt(ctx context.Context, auth Auth, attemptID int64, timeSpentSeconds int) (*models.ExamAttempt, error)
	ExamReview(ctx context.Context, auth Auth, attemptID int64) (*models.ExamReview, error)
}

// TopicQuizAPI covers the gamified topic quiz. The server is authoritative
// for correctness, lives, points, and streak.
type TopicQuizAPI interface {
	StartTopicQuiz(ctx context.Context, auth Auth, topicID int64) (*models.TopicQuizAttempt, error)
	TopicQuizAttempt(ctx context.Context, auth Auth, attemptID int64) (*models.TopicQuizAttempt, error)
	TopicQuizCurrentQuestion(ctx context.Context, auth Auth, attemptID int64) (*models.TopicQuizQuestion, error)
	SubmitTopicAnswer(ctx context.Context, auth Auth, attemptID int64, sub models.TopicAnswerSubmission) (*models.TopicAnswerResult, error)
	UseFiftyFifty(ctx context.Context, auth Auth, attemptID int64, questionID int64) (*models.FiftyFiftyResult, error)
	GameProfile(ctx context.Context, auth Auth) (*models.UserGameProfile, error)
}

// FlashcardsAPI covers decks, study sessions, and background progress writes.
type FlashcardsAPI interface {
	FlashcardDecks(ctx context.Context, auth Auth) ([]models.FlashcardDeck, error)
	StudyDeck(ctx context.Context, auth Auth, deckID int64) (*models.StudySession, error)
	UpdateFlashcardProgress(ctx context.Context, auth Auth, deckID int64, progress models.FlashcardProgress, idempotencyKey string) error
}

// VideosAPI covers video tutorials and watch-progress writes.
type VideosAPI interface {
	Videos(ctx context.Context, auth Auth) ([]models.VideoTutorial, error)
	Video(ctx context.Context, auth Auth, videoID int64) (*models.VideoTutorial, error)
	UpdateWatchProgress(ctx context.Context, auth Auth, videoID int64, watchedSeconds int, idempotencyKey string) error
}

// NotesAPI covers summary notes and reading-progress writes.
type NotesAPI interface {
	SummaryNotes(ctx context.Context, auth Auth) ([]models.SummaryNote, error)
	NoteChapters(ctx context.Context, auth Auth, noteID int64) ([]models.NoteChapter, error)
	NoteChapter(ctx context.Context, auth Auth, chapterID int64) (*models.NoteChapter, error)
	UpdateReadingProgress(ctx context.Context, auth Auth, chapterID int64, readPercent float64, idempotencyKey string) error
}

// DashboardAPI covers the aggregated page-data endpoints.
type DashboardAPI interface {
	DashboardPage(ctx context.Context, auth Auth) (*models.DashboardPage, error)
	ProgressPage(ctx context.Context, auth Auth) (*models.ProgressPage, error)
	QuizzesPage(ctx context.Context, auth Auth) ([]models.QuizTopic, error)
	MyCourses(ctx context.Context, auth Auth) ([]models.Course, error)
}
