package models

// TopicCategory classifies a deck by what its cards drill
type TopicCategory string

const (
	CategoryVocabulary TopicCategory = "vocabulary"
	CategoryKanji      TopicCategory = "kanji"
)

// Topic represents one deck of cards, derived from a single source file.
// Topics are computed fresh on every load and never persisted.
type Topic struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Category  TopicCategory `json:"category"`
	CardCount int           `json:"card_count"`
}
