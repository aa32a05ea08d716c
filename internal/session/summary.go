package session

import (
	"time"

	"github.com/abhisek/geoquiz/internal/quiz"
)

// Summary holds the data displayed on the summary screen.
type Summary struct {
	SessionID  string
	Duration   time.Duration
	Answered   int
	Correct    int
	Skipped    int
	Accuracy   float64
	BestStreak int
	Modes      []ModeResult
}

// Summary builds the end-of-run report. Modes are listed in ID order and
// only when they were asked at least once.
func (s *State) Summary() *Summary {
	sum := &Summary{
		SessionID:  s.SessionID,
		Duration:   s.now().Sub(s.StartTime),
		Correct:    s.Score,
		BestStreak: s.BestStreak,
	}
	for _, m := range quiz.Modes {
		mr := s.PerMode[m]
		if mr == nil || mr.Attempted+mr.Skipped == 0 {
			continue
		}
		sum.Answered += mr.Attempted
		sum.Skipped += mr.Skipped
		sum.Modes = append(sum.Modes, *mr)
	}
	if sum.Answered > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Answered)
	}
	return sum
}

// Accuracy returns the fraction of attempts answered correctly, or 0.
func (mr ModeResult) Accuracy() float64 {
	if mr.Attempted == 0 {
		return 0
	}
	return float64(mr.Correct) / float64(mr.Attempted)
}
