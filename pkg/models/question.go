package models

// Question is one multiple-choice cloze question. Questions are built per
// quiz run and never persisted.
type Question struct {
	Card               Flashcard   `json:"card"`
	Sentence           string      `json:"sentence"`
	Options            []Flashcard `json:"options"`
	CorrectOptionIndex int         `json:"correct_option_index"`
}
