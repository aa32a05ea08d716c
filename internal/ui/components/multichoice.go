package components

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/ui/theme"
)

// MultiChoice is a numbered selector. Options may be single lines (hint
// lists) or multi-line blocks such as flag art, laid out side by side when
// Horizontal is set.
type MultiChoice struct {
	Options      []string
	Horizontal   bool
	Selected     int
	Submitted    bool
	ChosenIndex  int
	CorrectIndex int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string, horizontal bool) MultiChoice {
	return MultiChoice{
		Options:      options,
		Horizontal:   horizontal,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles navigation. Digits 1-9 pick directly; Enter picks the
// highlighted option.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted || len(m.Options) == 0 {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "left", "k", "h":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "right", "j", "l":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			m.Submitted = true
			m.ChosenIndex = n - 1
		}
	}

	return m, nil
}

// Reveal locks the selector and marks the correct and chosen options.
func (m *MultiChoice) Reveal(correct, chosen int) {
	m.Submitted = true
	m.CorrectIndex = correct
	m.ChosenIndex = chosen
}

// Chosen returns the picked option, or false before a pick.
func (m MultiChoice) Chosen() (string, bool) {
	if !m.Submitted || m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return "", false
	}
	return m.Options[m.ChosenIndex], true
}

// View renders the options.
func (m MultiChoice) View() string {
	if m.Horizontal {
		return m.viewCards()
	}

	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)
		b.WriteString(lipgloss.NewStyle().Foreground(m.color(i)).Bold(m.emphasized(i)).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m MultiChoice) viewCards() string {
	cards := make([]string, 0, len(m.Options))
	for i, opt := range m.Options {
		label := lipgloss.NewStyle().
			Foreground(m.color(i)).
			Bold(true).
			Render(strconv.Itoa(i + 1))
		border := lipgloss.RoundedBorder()
		if m.emphasized(i) {
			border = lipgloss.ThickBorder()
		}
		card := lipgloss.NewStyle().
			Border(border).
			BorderForeground(m.color(i)).
			Padding(0, 1).
			Align(lipgloss.Center).
			Render(label + "\n" + opt)
		cards = append(cards, card)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, intersperse(cards, " ")...)
}

func (m MultiChoice) color(i int) color.Color {
	switch {
	case m.Submitted && i == m.CorrectIndex:
		return theme.Success
	case m.Submitted && i == m.ChosenIndex:
		return theme.Error
	case m.Submitted:
		return theme.TextDim
	case i == m.Selected:
		return theme.Primary
	default:
		return theme.Text
	}
}

func (m MultiChoice) emphasized(i int) bool {
	if m.Submitted {
		return i == m.CorrectIndex || i == m.ChosenIndex
	}
	return i == m.Selected
}

func intersperse(blocks []string, sep string) []string {
	if len(blocks) < 2 {
		return blocks
	}
	out := make([]string, 0, 2*len(blocks)-1)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, b)
	}
	return out
}
