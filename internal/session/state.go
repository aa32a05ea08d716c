// Package session tracks the score, streak and progress of one quiz run and
// evaluates answers against the current question.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/geoquiz/internal/quiz"
)

// Phase is the state of the current question.
type Phase int

const (
	PhaseUnanswered Phase = iota // Waiting for an answer
	PhaseLocked                  // Answered or skipped; waiting for Next
)

// State is the runtime state of a quiz run. It is owned by a single
// controller and is not safe for concurrent use.
type State struct {
	// Deck holds the item pool and the random source.
	Deck *quiz.Deck

	// Score is the number of correct answers.
	Score int

	// Streak is the number of consecutive correct answers.
	Streak int

	// BestStreak is the longest streak reached in this run.
	BestStreak int

	// Progress counts answered plus skipped questions.
	Progress int

	// Current is the active question (nil when the pool is empty).
	Current *quiz.Question

	// Locked is set once the current question has been answered or skipped.
	Locked bool

	// Result is the last feedback message shown to the player.
	Result string

	// SessionID identifies this run in the event log.
	SessionID string

	// StartTime is when the run began or was last reset.
	StartTime time.Time

	// PerMode tracks attempts per question mode for the summary.
	PerMode map[quiz.Mode]*ModeResult

	nextMilestone int
	now           func() time.Time
}

// ModeResult tracks performance for one question mode.
type ModeResult struct {
	Mode      quiz.Mode
	Attempted int
	Correct   int
	Skipped   int
}

// New creates a run over deck and draws the first question. An empty
// sessionID gets a fresh UUID.
func New(deck *quiz.Deck, sessionID string) *State {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	s := &State{
		Deck:      deck,
		SessionID: sessionID,
		now:       time.Now,
	}
	s.clearCounters()
	s.Next()
	return s
}

// Phase reports whether the current question is still open.
func (s *State) Phase() Phase {
	if s.Locked {
		return PhaseLocked
	}
	return PhaseUnanswered
}

// HasItems reports whether the pool has anything to ask.
func (s *State) HasItems() bool {
	return s.Deck != nil && s.Deck.Len() > 0
}

// Next replaces the current question with a fresh one and clears the lock
// and result. It returns false when the pool is empty.
func (s *State) Next() bool {
	s.Locked = false
	s.Result = ""
	s.Current = nil
	if s.Deck == nil {
		return false
	}
	q, ok := s.Deck.NextQuestion()
	if !ok {
		return false
	}
	s.Current = q
	return true
}

// Reset zeroes the counters and starts over with a new question.
func (s *State) Reset() {
	s.clearCounters()
	s.Next()
}

// Shuffle reorders the pool. The current question is kept.
func (s *State) Shuffle() {
	if s.Deck == nil {
		return
	}
	s.Deck.Shuffle()
	s.Result = "Shuffled question pool."
}

func (s *State) clearCounters() {
	s.Score = 0
	s.Streak = 0
	s.BestStreak = 0
	s.Progress = 0
	s.Locked = false
	s.Result = ""
	s.StartTime = s.now()
	s.PerMode = make(map[quiz.Mode]*ModeResult, len(quiz.Modes))
	for _, m := range quiz.Modes {
		s.PerMode[m] = &ModeResult{Mode: m}
	}
	s.nextMilestone = BaseStreakThreshold
}
