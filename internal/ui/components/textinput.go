package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/ui/theme"
)

// AnswerInput wraps bubbles/textinput with Geoquiz styling and a
// correct/incorrect mark once the answer is locked.
type AnswerInput struct {
	Model     textinput.Model
	submitted bool
	valid     bool
}

// NewAnswerInput creates a new focused answer input.
func NewAnswerInput(placeholder string, width int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 80
	if width > 0 {
		ti.SetWidth(width)
	}
	ti.Focus()

	return AnswerInput{Model: ti}
}

// Init returns the initial command.
func (t AnswerInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards messages to the text input. Input is frozen after Submit.
func (t AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if t.submitted {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t AnswerInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t AnswerInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input text.
func (t *AnswerInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.Model.CursorEnd()
}

// Submit marks the input as submitted with a validation result.
func (t *AnswerInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}

// Submitted reports whether Submit has been called since the last Clear.
func (t AnswerInput) Submitted() bool {
	return t.submitted
}

// Clear empties the input and reopens it for typing.
func (t *AnswerInput) Clear() {
	t.Model.Reset()
	t.submitted = false
	t.valid = false
}
