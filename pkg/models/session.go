package models

import "time"

// KnownRatingThreshold is the minimum self-rating that counts a card as known
const KnownRatingThreshold = 3

// Study modes recorded on a session
const (
	ModeFlashcards = "flashcards"
	ModeQuiz       = "quiz"
)

// CardResult is one card's outcome within a session
type CardResult struct {
	CardID string `json:"card_id"`
	Rating int    `json:"rating"`
}

// StudySession summarizes one complete pass through a deck. Created once at
// the end of a session, never mutated.
type StudySession struct {
	ID              string       `json:"id" db:"id"`
	UserID          string       `json:"user_id" db:"user_id"`
	TopicID         string       `json:"topic_id" db:"topic_id"`
	Mode            string       `json:"mode" db:"mode"`
	Date            time.Time    `json:"date" db:"date"`
	TotalCards      int          `json:"total_cards" db:"total_cards"`
	CorrectCount    int          `json:"correct_count" db:"correct_count"`
	DurationSeconds float64      `json:"duration_seconds" db:"duration_seconds"`
	Results         []CardResult `json:"results,omitempty" db:"-"`
}

// Summary is the handoff to the presentation layer when a session finishes
type Summary struct {
	TopicID     string      `json:"topic_id"`
	Mode        string      `json:"mode"`
	Total       int         `json:"total"`
	Correct     int         `json:"correct"`
	MissedCards []Flashcard `json:"missed_cards,omitempty"`
}
