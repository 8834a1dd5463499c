// Package quiz builds multiple-choice cloze quizzes from a deck's cards and
// tracks one quiz run through its answer/advance lifecycle.
package quiz

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/example/kanjideck/pkg/models"
)

// ErrInsufficientData is returned when a deck has fewer than four cards with
// example sentences, or too few cards to fill the distractor slots. The
// caller surfaces this as a blocking state with a corrective message.
var ErrInsufficientData = errors.New("need at least 4 cards with example sentences")

const (
	// BlankMarker replaces the target word in a cloze sentence
	BlankMarker = "______"

	optionCount     = 4
	distractorCount = optionCount - 1
)

// Generate builds one question per card that has at least one example
// sentence, then shuffles the question order. Cards without examples are
// excluded from question generation entirely but still serve as distractors.
// All random choices go through rng so tests can inject a fixed seed.
func Generate(cards []models.Flashcard, rng *rand.Rand) ([]models.Question, error) {
	var eligible []models.Flashcard
	for _, card := range cards {
		if card.HasExamples() {
			eligible = append(eligible, card)
		}
	}
	if len(eligible) < optionCount {
		return nil, ErrInsufficientData
	}

	questions := make([]models.Question, 0, len(eligible))
	for _, card := range eligible {
		q, err := buildQuestion(card, cards, rng)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	return questions, nil
}

func buildQuestion(card models.Flashcard, all []models.Flashcard, rng *rand.Rand) (models.Question, error) {
	sentence := card.ExampleSentences[rng.Intn(len(card.ExampleSentences))]

	others := make([]models.Flashcard, 0, len(all))
	for _, c := range all {
		if c.ID != card.ID {
			others = append(others, c)
		}
	}
	if len(others) < distractorCount {
		return models.Question{}, ErrInsufficientData
	}

	// Sample without replacement: shuffle the candidates, take the head.
	rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	options := make([]models.Flashcard, 0, optionCount)
	options = append(options, card)
	options = append(options, others[:distractorCount]...)

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := 0
	for i, o := range options {
		if o.ID == card.ID {
			correct = i
			break
		}
	}

	return models.Question{
		Card:               card,
		Sentence:           blankFirst(sentence, card.Kanji),
		Options:            options,
		CorrectOptionIndex: correct,
	}, nil
}

// blankFirst replaces the first literal occurrence of word in sentence with
// the blank marker. Conjugated or inflected forms are not matched; when the
// word does not appear verbatim the sentence is returned unchanged.
func blankFirst(sentence, word string) string {
	if word == "" {
		return sentence
	}
	i := strings.Index(sentence, word)
	if i < 0 {
		return sentence
	}
	return sentence[:i] + BlankMarker + sentence[i+len(word):]
}
