package models

// Flashcard is a single card parsed from a deck source row
type Flashcard struct {
	ID               string   `json:"id"`
	Kanji            string   `json:"kanji"`
	Reading          string   `json:"reading"`
	Meaning          string   `json:"meaning"`
	ExampleSentences []string `json:"example_sentences,omitempty"`
}

// HasExamples reports whether the card can back a cloze question
func (c Flashcard) HasExamples() bool {
	return len(c.ExampleSentences) > 0
}
