package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectColumnsByName(t *testing.T) {
	roles := detectColumns([]string{"Kanji", "Reading", "Meaning", "Example1", "Example2"})

	assert.Equal(t, 0, roles.prompt)
	assert.Equal(t, 1, roles.reading)
	assert.Equal(t, 2, roles.meaning)
	assert.Equal(t, []int{3, 4}, roles.examples)
	assert.False(t, roles.promptGuessed)
}

func TestDetectColumnsPermutedHeaders(t *testing.T) {
	roles := detectColumns([]string{"English Meaning", "Example Sentence", "Word", "Kana"})

	assert.Equal(t, 2, roles.prompt)
	assert.Equal(t, 3, roles.reading)
	assert.Equal(t, 0, roles.meaning)
	assert.Equal(t, []int{1}, roles.examples)
}

func TestDetectColumnsCaseInsensitive(t *testing.T) {
	roles := detectColumns([]string{"KANJI", "kAnA", "MEANING"})

	assert.Equal(t, 0, roles.prompt)
	assert.Equal(t, 1, roles.reading)
	assert.Equal(t, 2, roles.meaning)
}

func TestDetectColumnsQuestionCountsAsExample(t *testing.T) {
	roles := detectColumns([]string{"Kanji", "Reading", "Meaning", "Question 1"})

	assert.Equal(t, []int{3}, roles.examples)
}

func TestDetectColumnsPositionalFallback(t *testing.T) {
	roles := detectColumns([]string{"Front", "Back"})

	assert.Equal(t, 0, roles.prompt)
	assert.Equal(t, 1, roles.reading)
	assert.Equal(t, 2, roles.meaning)
	assert.Empty(t, roles.examples)
	assert.True(t, roles.promptGuessed)
}

func TestDetectColumnsFirstMatchWins(t *testing.T) {
	roles := detectColumns([]string{"Kanji Form", "Old Kanji", "Meaning"})

	assert.Equal(t, 0, roles.prompt)
}

func TestCellAtBounds(t *testing.T) {
	row := []string{"a", "b"}

	assert.Equal(t, "a", cellAt(row, 0))
	assert.Equal(t, "b", cellAt(row, 1))
	assert.Equal(t, "", cellAt(row, 2))
	assert.Equal(t, "", cellAt(row, -1))
}
