package examapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lexprep/lexprep/internal/errors"
	"github.com/lexprep/lexprep/internal/logger"
	"github.com/lexprep/lexprep/internal/models"
)

// FlashcardDecks lists the available decks.
func (c *Client) FlashcardDecks(ctx context.Context, auth Auth) ([]models.FlashcardDeck, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi")
	log.Debug("fetching flashcard decks")

	var out struct {
		Decks []models.FlashcardDeck `json:"decks"`
	}
	if err := c.do(ctx, http.MethodGet, "/flashcards/", auth, nil, &out); err != nil {
		log.Error("failed to fetch flashcard decks: %v", err)
		return nil, err
	}
	log.Debug("fetched %d decks", len(out.Decks))
	return out.Decks, nil
}

// StudyDeck fetches the cards for one study session.
func (c *Client) StudyDeck(ctx context.Context, auth Auth, deckID int64) (*models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("deck_id", deckID)
	log.Debug("fetching study session")

	var out models.StudySession
	path := fmt.Sprintf("/flashcards/%d/study/", deckID)
	if err := c.do(ctx, http.MethodGet, path, auth, nil, &out); err != nil {
		log.Error("failed to fetch study session: %v", err)
		return nil, err
	}
	return &out, nil
}

// UpdateFlashcardProgress records one card result. Called from the
// write-behind queue; failures are the queue's problem, not the student's.
func (c *Client) UpdateFlashcardProgress(ctx context.Context, auth Auth, deckID int64, progress models.FlashcardProgress, idempotencyKey string) error {
	log := logger.FromContext(ctx).WithPrefix("examapi").WithField("deck_id", deckID)
	log.Debug("updating flashcard progress: card_id=%d, correct=%t", progress.CardID, progress.Correct)

	path := fmt.Sprintf("/flashcards/%d/update_progress/", deckID)
	req, err := c.newRequest(ctx, http.MethodPost, path, auth, progress)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}
	if err := c.send(req, nil); err != nil {
		log.Warn("flashcard progress update failed: %v", err)
		return err
	}
	return nil
}
