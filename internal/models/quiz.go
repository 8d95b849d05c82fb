package models

import "time"

// Topic quiz statuses. Once the status leaves in_progress the attempt is
// terminal; lives_remaining never goes below zero.
const (
	QuizStatusInProgress = "in_progress"
	QuizStatusPassed     = "passed"
	QuizStatusFailed     = "failed"
)

// TopicQuizAttempt is the client-local mirror of the server's gamified quiz
// state. The server is authoritative for every field.
type TopicQuizAttempt struct {
	ID             int64     `json:"id"`
	TopicID        int64     `json:"topic_id"`
	Status         string    `json:"status"`
	LivesRemaining int       `json:"lives_remaining"`
	PointsEarned   int       `json:"points_earned"`
	CurrentStreak  int       `json:"current_streak"`
	FiftyFiftyUsed bool      `json:"fifty_fifty_used"`
	QuestionIndex  int       `json:"question_index"`
	TotalQuestions int       `json:"total_questions"`
	StartedAt      time.Time `json:"started_at"`
}

// TopicQuizQuestion is a gamified quiz question. Unlike mock exam questions
// the correct answer is never in the payload; correctness comes back only in
// the submit response.
type TopicQuizQuestion struct {
	ID      int64            `json:"id"`
	Number  int              `json:"number"`
	Text    string           `json:"text"`
	Options []QuestionOption `json:"options"`
}

// TopicAnswerSubmission is one blocking gamified-quiz answer.
type TopicAnswerSubmission struct {
	QuestionID       int64  `json:"question_id"`
	SelectedAnswer   string `json:"selected_answer"`
	TimeSpentSeconds int    `json:"time_spent_seconds"`
}

// TopicAnswerResult is the server's verdict plus the updated game state. When
// the quiz continues, the next question rides along in the same response.
type TopicAnswerResult struct {
	IsCorrect      bool               `json:"is_correct"`
	CorrectAnswer  string             `json:"correct_answer"`
	Explanation    string             `json:"explanation,omitempty"`
	LivesRemaining int                `json:"lives_remaining"`
	PointsEarned   int                `json:"points_earned"`
	CurrentStreak  int                `json:"current_streak"`
	QuizStatus     string             `json:"quiz_status"`
	NextQuestion   *TopicQuizQuestion `json:"next_question,omitempty"`
}

// FiftyFiftyResult names the two wrong options the server eliminated.
type FiftyFiftyResult struct {
	EliminatedOptions []string `json:"eliminated_options"`
}

// UserGameProfile is purely server-computed; it is fetched and displayed,
// never locally mutated.
type UserGameProfile struct {
	Level            int    `json:"level"`
	XP               int    `json:"xp"`
	Rank             string `json:"rank"`
	TotalPoints      int    `json:"total_points"`
	QuizzesCompleted int    `json:"quizzes_completed"`
	BestStreak       int    `json:"best_streak"`
}
