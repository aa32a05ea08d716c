// Package setup is the IMPORT DATASET panel: the player pastes a manifest,
// which is validated, cached and used for a new quiz.
package setup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/dataset"
	"github.com/abhisek/geoquiz/internal/router"
	"github.com/abhisek/geoquiz/internal/screen"
	"github.com/abhisek/geoquiz/internal/ui/components"
	"github.com/abhisek/geoquiz/internal/ui/layout"
	"github.com/abhisek/geoquiz/internal/ui/theme"
)

const example = `{"France": {"capital": "Paris", "normal_flag": "/flags/fr.png"}}`

// Importer validates and caches a pasted manifest.
type Importer interface {
	Import(ctx context.Context, raw []byte) ([]dataset.Item, error)
	ClearCache(ctx context.Context) error
}

// SetupScreen implements screen.Screen for the dataset import panel.
type SetupScreen struct {
	importer   Importer
	onImported func(items []dataset.Item) screen.Screen
	editor     textarea.Model
	status     string
	failed     bool
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the import panel. onImported builds the screen that replaces
// this one after a successful import; nil keeps the panel open.
func New(importer Importer, onImported func(items []dataset.Item) screen.Screen) *SetupScreen {
	ta := textarea.New()
	ta.Placeholder = "Paste manifest JSON here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0

	return &SetupScreen{
		importer:   importer,
		onImported: onImported,
		editor:     ta,
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.editor.Focus()
}

func (s *SetupScreen) Title() string {
	return "Import Dataset"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Import"},
		{Key: "Ctrl+D", Description: "Clear cache"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "ctrl+s":
			return s.importPasted()
		case "ctrl+d":
			return s.clearCache()
		}
	}

	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

// importPasted validates and caches the editor contents. On failure the
// current dataset and cache are left untouched.
func (s *SetupScreen) importPasted() (screen.Screen, tea.Cmd) {
	raw := []byte(s.editor.Value())
	items, err := s.importer.Import(context.Background(), raw)
	if err != nil {
		s.failed = true
		var invalid *dataset.InvalidJSONError
		if errors.As(err, &invalid) {
			s.status = invalid.Error()
		} else {
			s.status = fmt.Sprintf("Could not save dataset: %v", err)
		}
		return s, nil
	}

	if len(items) == 0 {
		s.failed = true
		s.status = "Imported, but no usable country entries were found."
		return s, nil
	}

	s.failed = false
	s.status = fmt.Sprintf("Imported %d countries.", len(items))
	if missing := dataset.MissingFlags(items); missing > 0 {
		s.status += fmt.Sprintf(" %d entries have no flag paths.", missing)
	}

	if s.onImported == nil {
		return s, nil
	}
	next := s.onImported(items)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SetupScreen) clearCache() (screen.Screen, tea.Cmd) {
	if err := s.importer.ClearCache(context.Background()); err != nil {
		s.failed = true
		s.status = fmt.Sprintf("Could not clear cache: %v", err)
		return s, nil
	}
	s.failed = false
	s.status = "Cached dataset cleared."
	return s, nil
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	intro := lipgloss.NewStyle().Foreground(theme.Text).Render(
		"Paste a JSON object keyed by country name.\n" +
			"Each entry may have capital, normal_flag and small_flag.")
	sample := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(example)
	card := components.ArcadeCard(intro+"\n\n"+sample, cw)

	// Leave room for the status line and gaps.
	s.editor.SetWidth(cw)
	s.editor.SetHeight(max(height-lipgloss.Height(card)-6, 3))

	sections := []string{card, s.editor.View()}
	if s.status != "" {
		style := theme.Correct
		if s.failed {
			style = theme.Incorrect
		}
		sections = append(sections, style.Width(cw).Render(s.status))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n\n"))
}
