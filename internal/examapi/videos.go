package examapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/models"
)

// Videos lists the video tutorials.
func (c *Client) Videos(ctx context.Context, auth Auth) ([]models.VideoTutorial, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi")
	log.Debug("fetching videos")

	var out struct {
		Videos []models.VideoTutorial `json:"videos"`
	}
	if err := c.do(ctx, http.MethodGet, "/videos/", auth, nil, &out); err != nil {
		log.Error("failed to fetch videos: %v", err)
		return nil, err
	}
	return out.Videos, nil
}

// Video fetches one tutorial with the viewer's watch position.
func (c *Client) Video(ctx context.Context, auth Auth, videoID int64) (*models.VideoTutorial, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("video_id", videoID)
	log.Debug("fetching video")

	var out models.VideoTutorial
	path := fmt.Sprintf("/videos/%d/", videoID)
	if err := c.do(ctx, http.MethodGet, path, auth, nil, &out); err != nil {
		log.Error("failed to fetch video: %v", err)
		return nil, err
	}
	return &out, nil
}

// UpdateWatchProgress records the watch position. Queued, never blocking.
func (c *Client) UpdateWatchProgress(ctx context.Context, auth Auth, videoID int64, watchedSeconds int, idempotencyKey string) error {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("video_id", videoID)
	log.Debug("updating watch progress: watched=%ds", watchedSeconds)

	body := map[string]any{"watched_seconds": watchedSeconds}
	path := fmt.Sprintf("/videos/%d/progress/", videoID)
	req, err := c.newRequest(ctx, http.MethodPost, path, auth, body)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}
	if err := c.send(req, nil); err != nil {
		log.Warn("watch progress update failed: %v", err)
		return err
	}
	return nil
}
