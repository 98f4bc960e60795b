// Package quiz implements the vocabulary quiz session state machine.
//
// A session moves NotStarted → InProgress → Finished, and only an
// explicit exit leads back to NotStarted. Mastery changes are applied
// through the vocabulary store as each answer is judged, so exiting
// mid-session keeps the changes for answered items and leaves the rest
// untouched.
package quiz

import (
	"errors"
	"math"
	"math/rand/v2"
	"sync"

	"modulear/internal/apperr"
	"modulear/internal/models"
	"modulear/internal/store"
)

// Direction selects which side of a card is the prompt.
type Direction string

const (
	WordToDefinition Direction = "word-to-def"
	DefinitionToWord Direction = "def-to-word"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == WordToDefinition || d == DefinitionToWord
}

// State is the quiz machine state.
type State string

const (
	StateNotStarted State = "not-started"
	StateInProgress State = "in-progress"
	StateFinished   State = "finished"
)

// Session sizing.
const (
	MinWords = 5  // starting below this is refused
	MaxItems = 10 // cap on items drawn per session
)

var (
	ErrNotEnoughWords = errors.New("quiz: not enough vocabulary words")
	ErrNoSession      = errors.New("quiz: no session in progress")
	ErrNotRevealed    = errors.New("quiz: answer not revealed yet")
)

// Score accumulates judged answers.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percent returns the rounded success percentage.
func (s Score) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
}

// Snapshot is a read-only view of the machine, safe to hand to callers.
// The answer side of the current card is withheld until revealed.
type Snapshot struct {
	State     State     `json:"state"`
	Direction Direction `json:"direction,omitempty"`
	Position  int       `json:"position,omitempty"` // 1-based, within Total
	Total     int       `json:"total,omitempty"`
	Prompt    string    `json:"prompt,omitempty"`
	Revealed  bool      `json:"revealed"`
	Answer    string    `json:"answer,omitempty"`
	Example   string    `json:"example,omitempty"`
	Score     Score     `json:"score"`
	Percent   int       `json:"percent,omitempty"`
}

type session struct {
	direction Direction
	items     []models.VocabularyItem
	index     int
	revealed  bool
	score     Score
	finished  bool
}

// Manager owns at most one session at a time (the app is single-user)
// and applies mastery side effects through the vocabulary store.
type Manager struct {
	mu    sync.Mutex
	vocab *store.Vocabulary
	s     *session
}

// NewManager creates a quiz manager over the vocabulary store.
func NewManager(vocab *store.Vocabulary) *Manager {
	return &Manager{vocab: vocab}
}

// Start draws a fresh session. It refuses to start with fewer than
// MinWords items in the collection, leaving the machine in NotStarted.
func (m *Manager) Start(direction Direction) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.vocab.List()
	if len(items) < MinWords {
		return m.snapshotLocked(), ErrNotEnoughWords
	}

	// Uniform sample without replacement: shuffle a copy, take the head.
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	n := min(len(items), MaxItems)

	m.s = &session{
		direction: direction,
		items:     items[:n],
	}
	return m.snapshotLocked(), nil
}

// Snapshot returns the current machine state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Reveal uncovers the answer side of the current card.
func (m *Manager) Reveal() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.s == nil || m.s.finished {
		return m.snapshotLocked(), ErrNoSession
	}
	m.s.revealed = true
	return m.snapshotLocked(), nil
}

// Answer records the caller's judgment of the revealed card: correct
// raises the item's mastery one level (capped), incorrect lowers it one
// (floored), and either way lastReviewed advances. The cursor then
// moves on, or the session finishes after the last card.
func (m *Manager) Answer(correct bool) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch {
	case m.s == nil || m.s.finished:
		return m.snapshotLocked(), ErrNoSession
	case !m.s.revealed:
		return m.snapshotLocked(), ErrNotRevealed
	}

	item := m.s.items[m.s.index]
	level := item.MasteryLevel
	if current, ok := m.vocab.Get(item.ID); ok {
		level = current.MasteryLevel
	}

	delta := -1
	if correct {
		delta = 1
		m.s.score.Correct++
	}
	m.s.score.Total++

	// The word may have been deleted mid-session; the judgment still
	// counts toward the score, there is just nothing left to update.
	if err := m.vocab.SetMastery(item.ID, level+delta); err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return m.snapshotLocked(), err
	}

	if m.s.index < len(m.s.items)-1 {
		m.s.index++
		m.s.revealed = false
	} else {
		m.s.finished = true
	}
	return m.snapshotLocked(), nil
}

// Exit discards the in-flight session. Mastery changes already applied
// stay applied.
func (m *Manager) Exit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = nil
}

func (m *Manager) snapshotLocked() Snapshot {
	if m.s == nil {
		return Snapshot{State: StateNotStarted}
	}

	s := m.s
	if s.finished {
		return Snapshot{
			State:     StateFinished,
			Direction: s.direction,
			Total:     len(s.items),
			Score:     s.score,
			Percent:   s.score.Percent(),
		}
	}

	item := s.items[s.index]
	prompt, answer := item.Word, item.Definition
	if s.direction == DefinitionToWord {
		prompt, answer = item.Definition, item.Word
	}

	snap := Snapshot{
		State:     StateInProgress,
		Direction: s.direction,
		Position:  s.index + 1,
		Total:     len(s.items),
		Prompt:    prompt,
		Revealed:  s.revealed,
		Score:     s.score,
	}
	if s.revealed {
		snap.Answer = answer
		snap.Example = item.Example
	}
	return snap
}
