package models

import "time"

// Exam attempt statuses as reported by the exam API.
const (
	ExamStatusInProgress = "in_progress"
	ExamStatusCompleted  = "completed"
	ExamStatusAbandoned  = "abandoned"
)

// ExamAttempt mirrors a server-owned mock exam attempt. The server assigns
// identity and computes the score; this tier never mutates it except through
// the documented endpoints.
type ExamAttempt struct {
	ID               int64      `json:"id"`
	Status           string     `json:"status"`
	Score            float64    `json:"score"`
	TotalQuestions   int        `json:"total_questions"`
	TimeSpentSeconds int        `json:"time_spent_seconds"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// QuestionOption is a label-keyed answer option ("A".."D").
type QuestionOption struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question is immutable once fetched. The correct answer and explanation are
// part of the payload for mock exams, so feedback can render without another
// round trip.
type Question struct {
	ID            int64            `json:"id"`
	Number        int              `json:"number"`
	Text          string           `json:"text"`
	Options       []QuestionOption `json:"options"`
	CorrectAnswer string           `json:"correct_answer"`
	Explanation   string           `json:"explanation,omitempty"`
}

// ExamTimingConfig carries the server defaults for exam duration and the
// speed-reader per-question seconds.
type ExamTimingConfig struct {
	DurationSeconds    int `json:"duration_seconds"`
	SpeedReaderSeconds int `json:"speed_reader_seconds"`
}

// AnswerSubmission is one recorded answer, posted in the background.
type AnswerSubmission struct {
	QuestionID       int64  `json:"question_id"`
	SelectedAnswer   string `json:"selected_answer"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

// ReviewQuestion pairs a question with the answer the server recorded for it.
type ReviewQuestion struct {
	Question
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// ExamReview is the full post-exam review payload for the results page.
type ExamReview struct {
	Attempt   ExamAttempt      `json:"attempt"`
	Questions []ReviewQuestion `json:"questions"`
}
