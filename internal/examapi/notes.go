package examapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/models"
)

// SummaryNotes lists the summary-note volumes.
func (c *Client) SummaryNotes(ctx context.Context, auth Auth) ([]models.SummaryNote, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi")
	log.Debug("fetching summary notes")

	var out struct {
		Notes []models.SummaryNote `json:"notes"`
	}
	if err := c.do(ctx, http.MethodGet, "/summary-notes/", auth, nil, &out); err != nil {
		log.Error("failed to fetch summary notes: %v", err)
		return nil, err
	}
	return out.Notes, nil
}

// NoteChapters lists the chapters of one volume.
func (c *Client) NoteChapters(ctx context.Context, auth Auth, noteID int64) ([]models.NoteChapter, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("note_id", noteID)
	log.Debug("fetching note chapters")

	var out struct {
		Chapters []models.NoteChapter `json:"chapters"`
	}
	path := fmt.Sprintf("/summary-notes/%d/chapters/", noteID)
	if err := c.do(ctx, http.MethodGet, path, auth, nil, &out); err != nil {
		log.Error("failed to fetch note chapters: %v", err)
		return nil, err
	}
	return out.Chapters, nil
}

// NoteChapter fetches one chapter's content for the reader.
func (c *Client) NoteChapter(ctx context.Context, auth Auth, chapterID int64) (*models.NoteChapter, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("chapter_id", chapterID)
	log.Debug("fetching note chapter")

	var out models.NoteChapter
	path := fmt.Sprintf("/summary-notes/chapters/%d/", chapterID)
	if err := c.do(ctx, http.MethodGet, path, auth, nil, &out); err != nil {
		log.Error("failed to fetch note chapter: %v", err)
		return nil, err
	}
	return &out, nil
}

// UpdateReadingProgress records how far the reader got. Queued, never blocking.
func (c *Client) UpdateReadingProgress(ctx context.Context, auth Auth, chapterID int64, readPercent float64, idempotencyKey string) error {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("chapter_id", chapterID)
	log.Debug("updating reading progress: percent=%.1f", readPercent)

	body := map[string]any{"read_percent": readPercent}
	path := fmt.Sprintf("/summary-notes/chapters/%d/progress/", chapterID)
	req, err := c.newRequest(ctx, http.MethodPost, path, auth, body)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}
	if err := c.send(req, nil); err != nil {
		log.Warn("reading progress update failed: %v", err)
		return err
	}
	return nil
}
