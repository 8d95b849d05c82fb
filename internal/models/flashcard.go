package models

// FlashcardDeck is a server-owned deck summary.
type FlashcardDeck struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CardCount   int    `json:"card_count"`
}

// Flashcard is one card of a study session.
type Flashcard struct {
	ID    int64  `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// FlashcardProgress records one card result within the current session; it
// only feeds the progress bar and is relayed upstream in the background.
type FlashcardProgress struct {
	CardID  int64 `json:"card_id"`
	Correct bool  `json:"correct"`
}

// StudySession is the payload for studying one deck.
type StudySession struct {
	Deck  FlashcardDeck `json:"deck"`
	Cards []Flashcard   `json:"cards"`
}
