package models

// VideoTutorial is a server-owned video entry with the viewer's last watch
// position folded in.
type VideoTutorial struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	URL             string `json:"url"`
	DurationSeconds int    `json:"duration_seconds"`
	WatchedSeconds  int    `json:"watched_seconds"`
}

// SummaryNote is a summary-notes volume; chapters are fetched separately.
type SummaryNote struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	ChapterCount int     `json:"chapter_count"`
	ReadPercent  float64 `json:"read_percent"`
}

// NoteChapter is one readable chapter of a summary note.
type NoteChapter struct {
	ID          int64   `json:"id"`
	NoteID      int64   `json:"note_id"`
	Number      int     `json:"number"`
	Title       string  `json:"title"`
	ContentHTML string  `json:"content_html"`
	ReadPercent float64 `json:"read_percent"`
}
