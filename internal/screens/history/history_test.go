package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/geoquiz/internal/router"
	"github.com/abhisek/geoquiz/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessions []store.SessionRecord
	modes    []store.ModeStat
	err      error
}

func (m *mockEventRepo) AppendSessionEvent(context.Context, store.SessionEventData) error {
	return nil
}
func (m *mockEventRepo) AppendAnswerEvent(context.Context, store.AnswerEventData) error {
	return nil
}
func (m *mockEventRepo) ModeStats(context.Context) ([]store.ModeStat, error) {
	return m.modes, nil
}
func (m *mockEventRepo) SessionCount(context.Context) (int, error) { return len(m.sessions), nil }
func (m *mockEventRepo) BestStreak(context.Context) (int, error)   { return 0, nil }
func (m *mockEventRepo) RecentSessions(_ context.Context, limit int) ([]store.SessionRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sessions, nil
}
func (m *mockEventRepo) ResetHistory(context.Context) error { return nil }

func loaded(t *testing.T, repo *mockEventRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	msg := s.Init()()
	s.Update(msg)
	return s
}

func TestHistory_Empty(t *testing.T) {
	s := loaded(t, &mockEventRepo{})
	if !strings.Contains(s.View(100, 30), "No quizzes yet") {
		t.Error("expected empty history message")
	}
}

func TestHistory_LoadError(t *testing.T) {
	s := loaded(t, &mockEventRepo{err: errors.New("db locked")})
	if !strings.Contains(s.View(100, 30), "db locked") {
		t.Error("expected error in view")
	}
}

func TestHistory_ListsSessionsAndModes(t *testing.T) {
	repo := &mockEventRepo{
		sessions: []store.SessionRecord{
			{SessionID: "a", Timestamp: time.Now(), Answered: 10, CorrectAnswers: 8, Skipped: 1, BestStreak: 6, DurationSecs: 125},
			{SessionID: "b", Timestamp: time.Now(), Answered: 4, CorrectAnswers: 1, DurationSecs: 30},
		},
		modes: []store.ModeStat{
			{Mode: "flag-to-country", Attempted: 14, Correct: 9},
		},
	}
	s := loaded(t, repo)
	view := s.View(120, 40)

	for _, want := range []string{"10 answered", "80% accuracy", "2:05", "Flag → Country"} {
		if !strings.Contains(view, want) {
			t.Errorf("history view missing %q", want)
		}
	}
	if strings.Contains(view, "best streak 6") {
		t.Error("details should be collapsed by default")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 40), "best streak 6") {
		t.Error("expected details after Enter")
	}
}

func TestHistory_Navigation(t *testing.T) {
	repo := &mockEventRepo{
		sessions: []store.SessionRecord{{SessionID: "a"}, {SessionID: "b"}},
	}
	s := loaded(t, repo)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
