package api

import (
	"net/http"

	"github.com/lexprep/lexprep/internal/errors"
)

func (s *Server) handleSummaryNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.NotesAPI.SummaryNotes(r.Context(), authFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"notes": notes})
}

func (s *Server) handleNoteChapters(w http.ResponseWriter, r *http.Request) {
	noteID, err := parseIDParam(r, "noteID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	chapters, err := s.NotesAPI.NoteChapters(r.Context(), authFromContext(r.Context()), noteID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"chapters": chapters})
}

func (s *Server) handleNoteChapter(w http.ResponseWriter, r *http.Request) {
	chapterID, err := parseIDParam(r, "chapterID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	chapter, err := s.NotesAPI.NoteChapter(r.Context(), authFromContext(r.Context()), chapterID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, chapter)
}

// handleReadingProgress records how far through a chapter the reader is.
func (s *Server) handleReadingProgress(w http.ResponseWriter, r *http.Request) {
	chapterID, err := parseIDParam(r, "chapterID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		ReadPercent float64 `json:"read_percent"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if req.ReadPercent < 0 || req.ReadPercent > 100 {
		handleError(w, r, errors.NewValidationError("read_percent", "must be between 0 and 100"))
		return
	}

	s.Queue.EnqueueReadingProgress(authFromContext(r.Context()), chapterID, req.ReadPercent)
	w.WriteHeader(http.StatusAccepted)
}
