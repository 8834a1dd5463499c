package quiz

import (
	"time"

	"github.com/example/kanjideck/pkg/models"
)

// State of the current question within a quiz session
type State int

const (
	// StateAwaitingAnswer means the current question accepts a selection
	StateAwaitingAnswer State = iota
	// StateAnswered means the current question was answered and is waiting
	// for the advance
	StateAnswered
	// StateFinished means the last question's advance has happened
	StateFinished
)

// Session walks a generated question list. Each question is answered exactly
// once: the first selection locks in and scores, later selections are no-ops
// until Advance moves to the next question.
type Session struct {
	topicID   string
	questions []models.Question
	index     int
	state     State
	selected  int
	correct   int
	started   time.Time
}

// NewSession starts a quiz run over the given questions
func NewSession(topicID string, questions []models.Question) *Session {
	return &Session{
		topicID:   topicID,
		questions: questions,
		selected:  -1,
		started:   time.Now(),
	}
}

// Current returns the question being presented
func (s *Session) Current() models.Question {
	return s.questions[s.index]
}

// Index returns the zero-based position of the current question
func (s *Session) Index() int { return s.index }

// Total returns the number of questions in the run
func (s *Session) Total() int { return len(s.questions) }

// State returns the lifecycle state of the current question
func (s *Session) State() State { return s.state }

// Selected returns the locked-in selection for the current question, or -1
// when it has not been answered yet
func (s *Session) Selected() int { return s.selected }

// Score returns the running correct count
func (s *Session) Score() int { return s.correct }

// Finished reports whether the run is over
func (s *Session) Finished() bool { return s.state == StateFinished }

// Answer records the first selection for the current question and scores it.
// It returns false when the selection was ignored: out of range, already
// answered, or the session is finished.
func (s *Session) Answer(optionIndex int) bool {
	if s.state != StateAwaitingAnswer {
		return false
	}
	if optionIndex < 0 || optionIndex >= len(s.Current().Options) {
		return false
	}
	s.selected = optionIndex
	s.state = StateAnswered
	if optionIndex == s.Current().CorrectOptionIndex {
		s.correct++
	}
	return true
}

// Advance moves to the next question, or finishes the session after the
// last one. It is a no-op until the current question has been answered.
func (s *Session) Advance() {
	if s.state != StateAnswered {
		return
	}
	if s.index == len(s.questions)-1 {
		s.state = StateFinished
		return
	}
	s.index++
	s.selected = -1
	s.state = StateAwaitingAnswer
}

// Summary builds the presentation handoff for a finished run
func (s *Session) Summary() models.Summary {
	return models.Summary{
		TopicID: s.topicID,
		Mode:    models.ModeQuiz,
		Total:   len(s.questions),
		Correct: s.correct,
	}
}

// Record builds the durable session record for the recorder
func (s *Session) Record(userID string) models.StudySession {
	return models.StudySession{
		UserID:          userID,
		TopicID:         s.topicID,
		Mode:            models.ModeQuiz,
		TotalCards:      len(s.questions),
		CorrectCount:    s.correct,
		DurationSeconds: time.Since(s.started).Seconds(),
	}
}
