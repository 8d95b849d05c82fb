package api

import (
	"net/http"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/models"
)

func (s *Server) handleFlashcardDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.FlashcardsAPI.FlashcardDecks(r.Context(), authFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"decks": decks})
}

func (s *Server) handleFlashcardStudy(w http.ResponseWriter, r *http.Request) {
	deckID, err := parseIDParam(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.FlashcardsAPI.StudyDeck(r.Context(), authFromContext(r.Context()), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}

// handleFlashcardProgress records a card result. The write happens in the
// background; the study flow never waits on it.
func (s *Server) handleFlashcardProgress(w http.ResponseWriter, r *http.Request) {
	deckID, err := parseIDParam(r, "deckID")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var progress models.FlashcardProgress
	if err := decodeJSON(r, &progress); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if progress.CardID <= 0 {
		handleError(w, r, errors.NewValidationError("card_id", "must be a positive integer"))
		return
	}

	s.Queue.EnqueueFlashcardProgress(authFromContext(r.Context()), deckID, progress)
	w.WriteHeader(http.StatusAccepted)
}
