package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kanjideck/pkg/models"
)

func twoQuestions() []models.Question {
	a := card("q-a", "甲", "甲の文。")
	b := card("q-b", "乙", "乙の文。")
	c := card("q-c", "丙")
	d := card("q-d", "丁")

	return []models.Question{
		{Card: a, Sentence: "______の文。", Options: []models.Flashcard{b, a, c, d}, CorrectOptionIndex: 1},
		{Card: b, Sentence: "______の文。", Options: []models.Flashcard{b, a, c, d}, CorrectOptionIndex: 0},
	}
}

func TestSessionScoresCorrectAnswer(t *testing.T) {
	s := NewSession("deck", twoQuestions())

	assert.Equal(t, StateAwaitingAnswer, s.State())
	assert.True(t, s.Answer(1))
	assert.Equal(t, StateAnswered, s.State())
	assert.Equal(t, 1, s.Score())
	assert.Equal(t, 1, s.Selected())
}

func TestSessionWrongAnswerDoesNotScore(t *testing.T) {
	s := NewSession("deck", twoQuestions())

	assert.True(t, s.Answer(3))
	assert.Equal(t, 0, s.Score())
}

func TestSessionAnswerIsExactlyOnce(t *testing.T) {
	s := NewSession("deck", twoQuestions())

	require.True(t, s.Answer(3))
	// Second selection on the same question is a no-op, even if it would
	// have been correct.
	assert.False(t, s.Answer(1))
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 3, s.Selected())
}

func TestSessionAnswerOutOfRangeIgnored(t *testing.T) {
	s := NewSession("deck", twoQuestions())

	assert.False(t, s.Answer(-1))
	assert.False(t, s.Answer(4))
	assert.Equal(t, StateAwaitingAnswer, s.State())
}

func TestSessionAdvanceRequiresAnswer(t *testing.T) {
	s := NewSession("deck", twoQuestions())

	s.Advance()
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, StateAwaitingAnswer, s.State())
}

func TestSessionFullRun(t *testing.T) {
	s := NewSession("deck", twoQuestions())

	require.True(t, s.Answer(1))
	s.Advance()
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, StateAwaitingAnswer, s.State())
	assert.Equal(t, -1, s.Selected())

	require.True(t, s.Answer(0))
	s.Advance()
	assert.True(t, s.Finished())
	assert.Equal(t, 2, s.Score())

	// Answering a finished session is a no-op.
	assert.False(t, s.Answer(0))

	summary := s.Summary()
	assert.Equal(t, "deck", summary.TopicID)
	assert.Equal(t, models.ModeQuiz, summary.Mode)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Correct)
}

func TestSessionRecord(t *testing.T) {
	s := NewSession("deck", twoQuestions())
	require.True(t, s.Answer(1))
	s.Advance()
	require.True(t, s.Answer(3))
	s.Advance()

	rec := s.Record("guest")
	assert.Equal(t, "guest", rec.UserID)
	assert.Equal(t, "deck", rec.TopicID)
	assert.Equal(t, models.ModeQuiz, rec.Mode)
	assert.Equal(t, 2, rec.TotalCards)
	assert.Equal(t, 1, rec.CorrectCount)
	assert.GreaterOrEqual(t, rec.DurationSeconds, 0.0)
}
