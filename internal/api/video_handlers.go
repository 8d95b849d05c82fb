package api

import (
	"net/http"

	"github.com/lexprep/lexprep/internal/errors"
)

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.VideosAPI.Videos(r.Context(), authFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"videos": videos})
}

func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseIDParam(r, "videoID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	video, err := s.VideosAPI.Video(r.Context(), authFromContext(r.Context()), videoID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, video)
}

// handleVideoProgress records the watch position in the background.
func (s *Server) handleVideoProgress(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseIDParam(r, "videoID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		WatchedSeconds int `json:"watched_seconds"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if req.WatchedSeconds < 0 {
		handleError(w, r, errors.NewValidationError("watched_seconds", "must not be negative"))
		return
	}

	s.Queue.EnqueueWatchProgress(authFromContext(r.Context()), videoID, req.WatchedSeconds)
	w.WriteHeader(http.StatusAccepted)
}
