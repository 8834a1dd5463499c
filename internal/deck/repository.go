// Package deck loads flashcard decks from flat files. Each .csv or .xlsx
// file in the decks directory is one topic: the first row names the columns,
// every following row is one card. Column roles are sniffed from the header,
// so no fixed schema is enforced.
package deck

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/example/kanjideck/pkg/models"
)

const (
	missingPrompt  = "?"
	missingMeaning = "?"
)

// Repository serves topics and cards parsed from a directory of deck files.
// Load reads every source once; the cached content is read-only afterwards,
// so the repository is safe for concurrent readers.
type Repository struct {
	dir     string
	log     *zap.Logger
	sources []*source
	byID    map[string]*source
}

// source is one deck file with its raw content cached for the process
// lifetime. Rows are re-parsed from the cached bytes on each load.
type source struct {
	id  string
	ext string
	raw []byte
}

// NewRepository creates a repository over the given decks directory
func NewRepository(dir string, log *zap.Logger) *Repository {
	return &Repository{
		dir:  dir,
		log:  log,
		byID: make(map[string]*source),
	}
}

// Load enumerates all deck sources and caches their content. It must be
// called once before ListTopics or LoadCards. A file that cannot be read is
// skipped with a warning; only an unreadable directory is an error.
func (r *Repository) Load() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("failed to read decks directory %s: %w", r.dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			r.log.Warn("skipping unreadable deck file",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}

		src := &source{
			id:  strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			ext: ext,
			raw: raw,
		}
		// Topic ids must stay unique: a .csv and .xlsx sharing a name stem
		// would otherwise list two topics resolving to one source. The
		// first file wins (directory order), the rest are skipped.
		if _, exists := r.byID[src.id]; exists {
			r.log.Warn("skipping deck file with duplicate topic id",
				zap.String("file", entry.Name()), zap.String("topic", src.id))
			continue
		}
		r.sources = append(r.sources, src)
		r.byID[src.id] = src
	}

	sort.Slice(r.sources, func(i, j int) bool { return r.sources[i].id < r.sources[j].id })

	for _, src := range r.sources {
		headers, records := parseRows(src)
		roles := detectColumns(headers)
		if roles.promptGuessed && len(records) > 0 {
			// Diagnostic only: the deck still loads with positional columns.
			r.log.Warn("no prompt column recognized, using first column",
				zap.String("topic", src.id), zap.Int("low_confidence_rows", len(records)))
		}
		r.log.Info("loaded deck", zap.String("topic", src.id), zap.Int("cards", len(records)))
	}

	return nil
}

// ListTopics returns one topic per deck source, sorted by id
func (r *Repository) ListTopics() []models.Topic {
	topics := make([]models.Topic, 0, len(r.sources))
	for _, src := range r.sources {
		_, records := parseRows(src)
		topics = append(topics, models.Topic{
			ID:        src.id,
			Name:      src.id,
			Category:  categoryFor(src.id),
			CardCount: len(records),
		})
	}
	return topics
}

// LoadCards parses the cards of one topic. The topic id must equal the
// source file's name stem exactly; an unknown id yields an empty slice, not
// an error, and callers must treat an empty deck as a displayable state.
func (r *Repository) LoadCards(topicID string) []models.Flashcard {
	src, ok := r.byID[topicID]
	if !ok {
		return []models.Flashcard{}
	}

	headers, records := parseRows(src)
	roles := detectColumns(headers)

	cards := make([]models.Flashcard, 0, len(records))
	for i, row := range records {
		cards = append(cards, buildCard(topicID, i, row, roles))
	}
	return cards
}

// buildCard maps one parsed row to a card. Missing prompt and meaning cells
// become "?", a missing reading stays empty, blank example cells are dropped.
func buildCard(topicID string, index int, row []string, roles columnRoles) models.Flashcard {
	card := models.Flashcard{
		ID:      fmt.Sprintf("%s-%d", topicID, index),
		Kanji:   cellAt(row, roles.prompt),
		Reading: cellAt(row, roles.reading),
		Meaning: cellAt(row, roles.meaning),
	}
	if card.Kanji == "" {
		card.Kanji = missingPrompt
	}
	if card.Meaning == "" {
		card.Meaning = missingMeaning
	}

	for _, col := range roles.examples {
		v := cellAt(row, col)
		if strings.TrimSpace(v) != "" {
			card.ExampleSentences = append(card.ExampleSentences, v)
		}
	}
	return card
}

// categoryFor infers the deck category from its name
func categoryFor(name string) models.TopicCategory {
	if strings.Contains(strings.ToLower(name), "kanji") {
		return models.CategoryKanji
	}
	return models.CategoryVocabulary
}

// parseRows re-parses a cached source into a header row and data records.
// Blank rows are skipped everywhere; the first non-blank row is the header.
func parseRows(src *source) (headers []string, records [][]string) {
	var rows [][]string
	if src.ext == ".xlsx" {
		rows = parseExcelRows(src.raw)
	} else {
		rows = parseCSVRows(src.raw)
	}

	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if headers == nil {
			headers = row
			continue
		}
		records = append(records, row)
	}
	return headers, records
}

// parseCSVRows reads CSV content row by row. Rows that fail to parse are
// dropped rather than failing the whole deck; this matches the lenient
// best-effort contract of the loader.
func parseCSVRows(raw []byte) [][]string {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true    // Allow lazy quotes for hand-edited files

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			break
		}
		rows = append(rows, row)
	}
	return rows
}

// parseExcelRows reads the first sheet of an xlsx workbook. A workbook that
// cannot be opened yields no rows.
func parseExcelRows(raw []byte) [][]string {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil
	}
	return rows
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
