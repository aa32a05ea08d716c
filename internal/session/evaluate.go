package session

import (
	"fmt"

	"github.com/abhisek/geoquiz/internal/answer"
	"github.com/abhisek/geoquiz/internal/dataset"
	"github.com/abhisek/geoquiz/internal/quiz"
)

// OutcomeKind classifies how a question was closed.
type OutcomeKind int

const (
	OutcomeCorrect OutcomeKind = iota
	OutcomeWrong
	OutcomeSkipped
)

// String returns the slug stored in the event log.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeSkipped:
		return "skipped"
	}
	return "unknown"
}

// ChoiceMarks identifies the correct and the picked choice so the view can
// highlight them.
type ChoiceMarks struct {
	Correct int
	Chosen  int
}

// Outcome describes the result of one submission or skip.
type Outcome struct {
	Kind OutcomeKind
	Mode quiz.Mode
	Item dataset.Item

	// Input is the raw typed answer or the chosen country.
	Input string

	// Message is the feedback text, also stored in State.Result.
	Message string

	// Milestone is the streak length just reached, or 0.
	Milestone int

	// ChoiceMarks is set for choice submissions only.
	ChoiceMarks *ChoiceMarks
}

// Correct reports whether the answer was right.
func (o Outcome) Correct() bool { return o.Kind == OutcomeCorrect }

// SubmitText evaluates a typed answer. It is a no-op returning false when
// there is no open question.
func (s *State) SubmitText(input string) (Outcome, bool) {
	q := s.Current
	if q == nil || s.Locked {
		return Outcome{}, false
	}

	correct := answer.Equal(input, q.ExpectedAnswer())
	out := Outcome{Mode: q.Mode, Item: q.Item, Input: input}
	if correct {
		out.Kind = OutcomeCorrect
		out.Message = fmt.Sprintf("Correct! %s (capital: %s)", q.Item.Country, q.Item.Capital)
	} else {
		out.Kind = OutcomeWrong
		out.Message = fmt.Sprintf("Not quite. Correct: %s (capital: %s)", q.Item.Country, q.Item.Capital)
	}
	s.close(&out)
	return out, true
}

// SubmitChoice evaluates a pick from the current choices. It is a no-op
// returning false when there is no open choice question or index is out of
// range.
func (s *State) SubmitChoice(index int) (Outcome, bool) {
	q := s.Current
	if q == nil || s.Locked || len(q.Choices) == 0 {
		return Outcome{}, false
	}
	if index < 0 || index >= len(q.Choices) {
		return Outcome{}, false
	}

	picked := q.Choices[index]
	correct := answer.Equal(picked.Country, q.Item.Country)
	out := Outcome{
		Mode:        q.Mode,
		Item:        q.Item,
		Input:       picked.Country,
		ChoiceMarks: &ChoiceMarks{Correct: q.CorrectChoice(), Chosen: index},
	}
	if correct {
		out.Kind = OutcomeCorrect
		out.Message = fmt.Sprintf("Correct! %s (capital: %s)", q.Item.Country, q.Item.Capital)
	} else {
		out.Kind = OutcomeWrong
		out.Message = fmt.Sprintf("Nope. Correct flag: %s (capital: %s)", q.Item.Country, q.Item.Capital)
	}
	s.close(&out)
	return out, true
}

// Skip closes the current question without an answer and breaks the
// streak. It is a no-op returning false when the pool is empty, there is no
// question, or the question is already locked.
func (s *State) Skip() (Outcome, bool) {
	q := s.Current
	if !s.HasItems() || q == nil || s.Locked {
		return Outcome{}, false
	}
	out := Outcome{
		Kind:    OutcomeSkipped,
		Mode:    q.Mode,
		Item:    q.Item,
		Message: fmt.Sprintf("Skipped. Answer was: %s (capital: %s)", q.Item.Country, q.Item.Capital),
	}
	s.close(&out)
	return out, true
}

// close applies the counters for out and locks the question.
func (s *State) close(out *Outcome) {
	s.Progress++
	mr := s.PerMode[out.Mode]

	switch out.Kind {
	case OutcomeCorrect:
		s.Score++
		s.Streak++
		if s.Streak > s.BestStreak {
			s.BestStreak = s.Streak
		}
		if s.Streak >= s.nextMilestone {
			out.Milestone = s.Streak
			s.nextMilestone = NextStreakThreshold(s.Streak)
		}
		if mr != nil {
			mr.Attempted++
			mr.Correct++
		}
	case OutcomeWrong:
		s.Streak = 0
		s.nextMilestone = BaseStreakThreshold
		if mr != nil {
			mr.Attempted++
		}
	case OutcomeSkipped:
		s.Streak = 0
		s.nextMilestone = BaseStreakThreshold
		if mr != nil {
			mr.Skipped++
		}
	}

	s.Locked = true
	s.Result = out.Message
}
