// Package study tracks a flashcard-mode pass through a deck: cards are
// shuffled once, each card is self-rated exactly once, and the finished pass
// summarizes into a durable session record.
package study

import (
	"math/rand"
	"time"

	"github.com/example/kanjideck/pkg/models"
)

// Session is one flashcard-mode run
type Session struct {
	topicID string
	cards   []models.Flashcard
	index   int
	results []models.CardResult
	started time.Time
}

// NewSession shuffles the deck and starts a run. The rng is injected so
// tests can fix the presentation order.
func NewSession(topicID string, cards []models.Flashcard, rng *rand.Rand) *Session {
	shuffled := append([]models.Flashcard(nil), cards...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return &Session{
		topicID: topicID,
		cards:   shuffled,
		started: time.Now(),
	}
}

// Current returns the card being presented, or false when the run is over
func (s *Session) Current() (models.Flashcard, bool) {
	if s.Finished() {
		return models.Flashcard{}, false
	}
	return s.cards[s.index], true
}

// Index returns the zero-based position of the current card
func (s *Session) Index() int { return s.index }

// Total returns the deck size
func (s *Session) Total() int { return len(s.cards) }

// Finished reports whether every card has been rated
func (s *Session) Finished() bool { return s.index >= len(s.cards) }

// Rate records the self-rating for the current card and advances. Ratings
// are clamped to the 1..5 scale. Rating a finished session is a no-op.
func (s *Session) Rate(rating int) {
	card, ok := s.Current()
	if !ok {
		return
	}
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	s.results = append(s.results, models.CardResult{CardID: card.ID, Rating: rating})
	s.index++
}

// CorrectCount returns the number of cards rated at or above the known
// threshold
func (s *Session) CorrectCount() int {
	n := 0
	for _, r := range s.results {
		if r.Rating >= models.KnownRatingThreshold {
			n++
		}
	}
	return n
}

// Missed returns the cards rated below the known threshold, in presentation
// order
func (s *Session) Missed() []models.Flashcard {
	missed := make(map[string]bool, len(s.results))
	for _, r := range s.results {
		if r.Rating < models.KnownRatingThreshold {
			missed[r.CardID] = true
		}
	}
	var cards []models.Flashcard
	for _, c := range s.cards {
		if missed[c.ID] {
			cards = append(cards, c)
		}
	}
	return cards
}

// Summary builds the presentation handoff for a finished run
func (s *Session) Summary() models.Summary {
	return models.Summary{
		TopicID:     s.topicID,
		Mode:        models.ModeFlashcards,
		Total:       len(s.cards),
		Correct:     s.CorrectCount(),
		MissedCards: s.Missed(),
	}
}

// Record builds the durable session record, including per-card ratings
func (s *Session) Record(userID string) models.StudySession {
	return models.StudySession{
		UserID:          userID,
		TopicID:         s.topicID,
		Mode:            models.ModeFlashcards,
		TotalCards:      len(s.cards),
		CorrectCount:    s.CorrectCount(),
		DurationSeconds: time.Since(s.started).Seconds(),
		Results:         append([]models.CardResult(nil), s.results...),
	}
}
