// Package tui is the terminal study client: pick a deck, run it in
// flashcard or quiz mode, and review the summary with recent history.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/kanjideck/internal/config"
	"github.com/example/kanjideck/internal/database"
	"github.com/example/kanjideck/internal/deck"
	"github.com/example/kanjideck/internal/quiz"
	"github.com/example/kanjideck/internal/study"
	"github.com/example/kanjideck/pkg/models"
)

type screen int

const (
	screenTopics screen = iota
	screenModeSelect
	screenFlashcards
	screenQuiz
	screenSummary
)

// advanceMsg fires when the post-answer delay elapses
type advanceMsg struct{}

type topicItem struct {
	topic models.Topic
}

func (i topicItem) Title() string { return i.topic.Name }
func (i topicItem) Description() string {
	return fmt.Sprintf("%d cards · %s", i.topic.CardCount, i.topic.Category)
}
func (i topicItem) FilterValue() string { return i.topic.Name }

// Model is the bubbletea model for the whole study client
type Model struct {
	decks    *deck.Repository
	sessions *database.SessionRepository
	recorder *database.Recorder
	cfg      config.Config
	rng      *rand.Rand

	screen screen
	list   list.Model
	topic  models.Topic
	notice string

	// flashcard mode
	study   *study.Session
	flipped bool

	// quiz mode
	quiz *quiz.Session

	summary models.Summary
	history []models.StudySession

	width  int
	height int
}

// New builds the initial model over the loaded deck repository
func New(decks *deck.Repository, sessions *database.SessionRepository, recorder *database.Recorder, cfg config.Config) Model {
	topics := decks.ListTopics()
	items := make([]list.Item, 0, len(topics))
	for _, t := range topics {
		items = append(items, topicItem{topic: t})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select Deck"
	l.SetShowStatusBar(false)

	return Model{
		decks:    decks,
		sessions: sessions,
		recorder: recorder,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		list:     l,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case advanceMsg:
		return m.advanceQuiz()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenTopics:
			return m.updateTopics(msg)
		case screenModeSelect:
			return m.updateModeSelect(msg)
		case screenFlashcards:
			return m.updateFlashcards(msg)
		case screenQuiz:
			return m.updateQuiz(msg)
		case screenSummary:
			return m.updateSummary(msg)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateTopics(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(topicItem); ok {
				m.topic = item.topic
				m.notice = ""
				m.screen = screenModeSelect
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateModeSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenTopics
		return m, nil
	case "q":
		return m, tea.Quit
	case "1", "f":
		return m.startFlashcards()
	case "2", "z":
		return m.startQuiz()
	}
	return m, nil
}

func (m Model) startFlashcards() (tea.Model, tea.Cmd) {
	cards := m.decks.LoadCards(m.topic.ID)
	if len(cards) == 0 {
		m.notice = "No cards found in this deck."
		return m, nil
	}
	m.study = study.NewSession(m.topic.ID, cards, m.rng)
	m.flipped = false
	m.screen = screenFlashcards
	return m, nil
}

func (m Model) startQuiz() (tea.Model, tea.Cmd) {
	cards := m.decks.LoadCards(m.topic.ID)
	questions, err := quiz.Generate(cards, m.rng)
	if err != nil {
		m.notice = "Need at least 4 cards with example sentences to generate a quiz."
		return m, nil
	}
	m.quiz = quiz.NewSession(m.topic.ID, questions)
	m.screen = screenQuiz
	return m, nil
}

func (m Model) updateFlashcards(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenTopics
		return m, nil
	case " ", "enter":
		m.flipped = !m.flipped
		return m, nil
	case "k", "d":
		// Ratings only count once the answer side is visible.
		if !m.flipped {
			return m, nil
		}
		rating := 5
		if msg.String() == "d" {
			rating = 1
		}
		m.study.Rate(rating)
		m.flipped = false
		if m.study.Finished() {
			return m.finishStudy()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateQuiz(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenTopics
		return m, nil
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		// Answer ignores repeat selections, so only the first keypress
		// schedules the advance.
		if m.quiz.Answer(idx) {
			return m, tea.Tick(m.cfg.AdvanceDelay, func(time.Time) tea.Msg {
				return advanceMsg{}
			})
		}
		return m, nil
	}
	return m, nil
}

func (m Model) advanceQuiz() (tea.Model, tea.Cmd) {
	if m.screen != screenQuiz || m.quiz == nil {
		return m, nil
	}
	m.quiz.Advance()
	if m.quiz.Finished() {
		return m.finishQuiz()
	}
	return m, nil
}

func (m Model) finishStudy() (tea.Model, tea.Cmd) {
	m.summary = m.study.Summary()
	m.recorder.RecordAsync(m.study.Record(config.GuestUserID))
	m.loadHistory()
	m.screen = screenSummary
	return m, nil
}

func (m Model) finishQuiz() (tea.Model, tea.Cmd) {
	m.summary = m.quiz.Summary()
	m.recorder.RecordAsync(m.quiz.Record(config.GuestUserID))
	m.loadHistory()
	m.screen = screenSummary
	return m, nil
}

// loadHistory fills the recent-sessions panel. A read failure just leaves
// the panel empty; the summary itself never depends on the store.
func (m *Model) loadHistory() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	history, err := m.sessions.Recent(ctx, config.GuestUserID, m.cfg.HistoryLimit)
	if err != nil {
		m.history = nil
		return
	}
	m.history = history
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", "esc":
		m.study = nil
		m.quiz = nil
		m.screen = screenTopics
		return m, nil
	}
	return m, nil
}
