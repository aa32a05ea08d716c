package setup

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/geoquiz/internal/dataset"
	"github.com/abhisek/geoquiz/internal/router"
	"github.com/abhisek/geoquiz/internal/screen"
)

// mockImporter validates with the real parser and records what was cached.
type mockImporter struct {
	cached   string
	cleared  bool
	putErr   error
	clearErr error
}

func (m *mockImporter) Import(_ context.Context, raw []byte) ([]dataset.Item, error) {
	if err := dataset.Validate(raw); err != nil {
		return nil, err
	}
	if m.putErr != nil {
		return nil, m.putErr
	}
	m.cached = string(raw)
	return dataset.Parse(raw), nil
}

func (m *mockImporter) ClearCache(context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = true
	m.cached = ""
	return nil
}

// stubScreen stands in for the quiz screen.
type stubScreen struct {
	items []dataset.Item
}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "quiz" }
func (s *stubScreen) Title() string                           { return "Quiz" }

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func TestSetup_ImportValidManifest(t *testing.T) {
	imp := &mockImporter{}
	var got []dataset.Item
	s := New(imp, func(items []dataset.Item) screen.Screen {
		got = items
		return &stubScreen{items: items}
	})
	s.editor.SetValue(`{"France": {"capital": "Paris", "normal_flag": "/flags/fr.png"}, "Peru": {"capital": "Lima"}}`)

	_, cmd := s.Update(ctrlKey('s'))
	if cmd == nil {
		t.Fatal("expected navigation after import")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*stubScreen); !ok {
		t.Errorf("expected quiz screen, got %T", msg.Screen)
	}
	if len(got) != 2 {
		t.Errorf("imported items = %d, want 2", len(got))
	}
	if !strings.Contains(s.status, "1 entries have no flag paths") {
		t.Errorf("status %q should warn about missing flags", s.status)
	}
	if imp.cached == "" {
		t.Error("manifest should be cached")
	}
}

func TestSetup_InvalidJSONKeepsState(t *testing.T) {
	imp := &mockImporter{cached: `{"Peru": {}}`}
	s := New(imp, func([]dataset.Item) screen.Screen { return &stubScreen{} })
	s.editor.SetValue(`["France"]`)

	_, cmd := s.Update(ctrlKey('s'))

	if cmd != nil {
		t.Error("invalid input should not navigate")
	}
	if !s.failed || !strings.Contains(s.status, "root must be a single object") {
		t.Errorf("status = %q", s.status)
	}
	if imp.cached != `{"Peru": {}}` {
		t.Error("cache must be untouched on invalid input")
	}
	if !strings.Contains(s.View(100, 40), "invalid manifest JSON") {
		t.Error("expected error in view")
	}
}

func TestSetup_EmptyManifest(t *testing.T) {
	s := New(&mockImporter{}, nil)
	s.editor.SetValue(`{}`)

	_, cmd := s.Update(ctrlKey('s'))

	if cmd != nil || !s.failed {
		t.Error("an object with no entries should not start a quiz")
	}
}

func TestSetup_CacheWriteFailure(t *testing.T) {
	s := New(&mockImporter{putErr: errors.New("read-only")}, nil)
	s.editor.SetValue(`{"Peru": {"capital": "Lima"}}`)

	s.Update(ctrlKey('s'))

	if !strings.Contains(s.status, "read-only") {
		t.Errorf("status = %q", s.status)
	}
}

func TestSetup_WithoutCallbackStaysOpen(t *testing.T) {
	s := New(&mockImporter{}, nil)
	s.editor.SetValue(`{"Peru": {"capital": "Lima"}}`)

	_, cmd := s.Update(ctrlKey('s'))

	if cmd != nil {
		t.Error("expected no navigation without a callback")
	}
	if s.status != "Imported 1 countries. 1 entries have no flag paths." {
		t.Errorf("status = %q", s.status)
	}
}

func TestSetup_ClearCache(t *testing.T) {
	imp := &mockImporter{cached: "{}"}
	s := New(imp, nil)

	s.Update(ctrlKey('d'))
	if !imp.cleared || s.status != "Cached dataset cleared." {
		t.Errorf("cleared=%v status=%q", imp.cleared, s.status)
	}

	s = New(&mockImporter{clearErr: errors.New("locked")}, nil)
	s.Update(ctrlKey('d'))
	if !s.failed || !strings.Contains(s.status, "locked") {
		t.Errorf("status = %q", s.status)
	}
}

func TestSetup_TypingGoesToEditor(t *testing.T) {
	s := New(&mockImporter{}, nil)
	s.Init()

	s.Update(tea.KeyPressMsg{Code: '{', Text: "{"})
	s.Update(tea.PasteMsg{Content: `"Peru": {}}`})

	if s.editor.Value() != `{"Peru": {}}` {
		t.Errorf("editor = %q", s.editor.Value())
	}
}
