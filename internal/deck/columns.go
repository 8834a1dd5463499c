package deck

import "strings"

// columnRoles assigns header positions to card fields for one deck source.
// Indexes may point past the end of short rows; cell access is bounds-checked.
type columnRoles struct {
	prompt   int
	reading  int
	meaning  int
	examples []int

	// promptGuessed is set when no header matched the prompt role and the
	// first column was assumed. Such decks parse, but the mapping is a guess.
	promptGuessed bool
}

// detectColumns maps the header row to card roles by case-insensitive
// substring match, first match wins. Roles with no matching header fall back
// to a fixed position: prompt=0, reading=1, meaning=2.
func detectColumns(headers []string) columnRoles {
	roles := columnRoles{prompt: 0, reading: 1, meaning: 2}

	if i, ok := findColumn(headers, "kanji", "word"); ok {
		roles.prompt = i
	} else {
		roles.promptGuessed = true
	}
	if i, ok := findColumn(headers, "reading", "kana"); ok {
		roles.reading = i
	}
	if i, ok := findColumn(headers, "meaning", "english"); ok {
		roles.meaning = i
	}

	for i, h := range headers {
		name := strings.ToLower(h)
		if strings.Contains(name, "example") || strings.Contains(name, "question") {
			roles.examples = append(roles.examples, i)
		}
	}

	return roles
}

// findColumn returns the index of the first header containing any of the
// given substrings, case-insensitively
func findColumn(headers []string, substrings ...string) (int, bool) {
	for i, h := range headers {
		name := strings.ToLower(h)
		for _, sub := range substrings {
			if strings.Contains(name, sub) {
				return i, true
			}
		}
	}
	return 0, false
}

// cellAt returns the row value at index i, or "" when the row is too short
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
