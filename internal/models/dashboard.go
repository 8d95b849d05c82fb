package models

// QuizTopic is one entry of the quizzes page.
type QuizTopic struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	QuestionCount int     `json:"question_count"`
	BestScore     float64 `json:"best_score"`
	Completed     bool    `json:"completed"`
}

// Course is one entry of the my-courses page.
type Course struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	ProgressPercent float64 `json:"progress_percent"`
	LessonsTotal    int     `json:"lessons_total"`
	LessonsDone     int     `json:"lessons_done"`
}

// DashboardPage is the aggregated landing payload for the learning dashboard.
type DashboardPage struct {
	GameProfile    UserGameProfile `json:"game_profile"`
	RecentAttempts []ExamAttempt   `json:"recent_attempts"`
	Courses        []Course        `json:"courses"`
	StudyStreak    int             `json:"study_streak"`
}

// ProgressPage aggregates per-area completion for the progress view.
type ProgressPage struct {
	ExamsTaken       int     `json:"exams_taken"`
	AverageScore     float64 `json:"average_score"`
	QuizzesCompleted int     `json:"quizzes_completed"`
	FlashcardsSeen   int     `json:"flashcards_seen"`
	VideosWatched    int     `json:"videos_watched"`
	ChaptersRead     int     `json:"chapters_read"`
}
