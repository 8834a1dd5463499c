package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/kanjideck/internal/quiz"
	"github.com/example/kanjideck/pkg/models"
)

var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).
			Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).
			Padding(1, 4)
	optionStyle  = lipgloss.NewStyle().Padding(0, 2)
	correctStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("42")).Bold(true)
	wrongStyle   = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

func (m Model) View() string {
	switch m.screen {
	case screenTopics:
		return docStyle.Render(m.list.View())
	case screenModeSelect:
		return docStyle.Render(m.viewModeSelect())
	case screenFlashcards:
		return docStyle.Render(m.viewFlashcards())
	case screenQuiz:
		return docStyle.Render(m.viewQuiz())
	case screenSummary:
		return docStyle.Render(m.viewSummary())
	}
	return ""
}

func (m Model) viewModeSelect() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.topic.Name) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d cards · %s", m.topic.CardCount, m.topic.Category)) + "\n\n")
	b.WriteString("  1. Flashcards  " + dimStyle.Render("flip and rate each card") + "\n")
	b.WriteString("  2. Quiz        " + dimStyle.Render("fill-in-the-blank, multiple choice") + "\n")
	if m.notice != "" {
		b.WriteString("\n" + accentStyle.Render(m.notice) + "\n")
	}
	b.WriteString(helpStyle.Render("1/2 select · esc back · q quit"))
	return b.String()
}

func (m Model) viewFlashcards() string {
	card, ok := m.study.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s · %d / %d", m.topic.Name, m.study.Index()+1, m.study.Total())) + "\n\n")

	if !m.flipped {
		b.WriteString(promptStyle.Render(card.Kanji) + "\n")
		b.WriteString(helpStyle.Render("space flip · esc back"))
		return b.String()
	}

	back := fmt.Sprintf("%s\n\n%s\n%s", card.Kanji, accentStyle.Render(card.Reading), card.Meaning)
	b.WriteString(promptStyle.Render(back) + "\n")
	if len(card.ExampleSentences) > 0 {
		b.WriteString(dimStyle.Render(card.ExampleSentences[0]) + "\n")
	}
	b.WriteString(helpStyle.Render("k know · d don't know · space flip back"))
	return b.String()
}

func (m Model) viewQuiz() string {
	q := m.quiz.Current()

	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s · %d / %d · score %d",
		m.topic.Name, m.quiz.Index()+1, m.quiz.Total(), m.quiz.Score())) + "\n\n")
	b.WriteString(titleStyle.Render("Fill in the blank") + "\n\n")
	b.WriteString(promptStyle.Render(q.Sentence) + "\n")
	b.WriteString(accentStyle.Render(q.Card.Meaning) + "\n\n")

	answered := m.quiz.State() == quiz.StateAnswered
	for i, option := range q.Options {
		line := fmt.Sprintf("%d. %s", i+1, option.Kanji)
		style := optionStyle
		if answered {
			switch {
			case i == q.CorrectOptionIndex:
				style = correctStyle
				line += " ✓"
			case i == m.quiz.Selected():
				style = wrongStyle
				line += " ✗"
			default:
				style = optionStyle.Foreground(lipgloss.Color("241"))
			}
		}
		b.WriteString(style.Render(line) + "\n")
	}

	b.WriteString(helpStyle.Render("1-4 answer · esc back"))
	return b.String()
}

func (m Model) viewSummary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Session Complete") + "\n\n")

	pct := 0
	if m.summary.Total > 0 {
		pct = m.summary.Correct * 100 / m.summary.Total
	}
	b.WriteString(fmt.Sprintf("%s · %s\n", m.topic.Name, m.summary.Mode))
	b.WriteString(accentStyle.Render(fmt.Sprintf("%d / %d correct (%d%%)", m.summary.Correct, m.summary.Total, pct)) + "\n")

	if len(m.summary.MissedCards) > 0 {
		b.WriteString("\n" + titleStyle.Render("Missed cards") + "\n")
		for _, c := range m.summary.MissedCards {
			b.WriteString(fmt.Sprintf("  %s  %s  %s\n", c.Kanji, accentStyle.Render(c.Reading), dimStyle.Render(c.Meaning)))
		}
	}

	if len(m.history) > 0 {
		b.WriteString("\n" + titleStyle.Render("Recent sessions") + "\n")
		for _, s := range m.history {
			b.WriteString(dimStyle.Render(formatSession(s)) + "\n")
		}
	}

	b.WriteString(helpStyle.Render("enter decks · q quit"))
	return b.String()
}

func formatSession(s models.StudySession) string {
	return fmt.Sprintf("  %s  %-12s %-10s %d/%d",
		s.Date.Local().Format("2006-01-02 15:04"), s.TopicID, s.Mode, s.CorrectCount, s.TotalCards)
}
