package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/dataset"
	"github.com/abhisek/geoquiz/internal/flagart"
	qz "github.com/abhisek/geoquiz/internal/quiz"
	"github.com/abhisek/geoquiz/internal/session"
	"github.com/abhisek/geoquiz/internal/ui/theme"
)

// renderQuestionView renders the active question display.
func (s *QuizScreen) renderQuestionView(width, height int) string {
	state := s.state
	q := state.Current

	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	for _, notice := range s.notices() {
		b.WriteString(center(theme.Warning, notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if q == nil {
		b.WriteString(center(theme.Hint, "No question available."))
		return b.String()
	}

	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	if q.Mode.NeedsFlag() {
		art := s.artFor(dataset.BestFlagPath(q.Item), s.mainFlagWidth())
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, art))
		b.WriteString("\n\n")
	}
	b.WriteString(center(questionStyle, promptText(q)))
	b.WriteString("\n\n")

	if q.Mode.HasChoices() {
		b.WriteString(s.renderChoices(width))
	} else {
		b.WriteString(center(lipgloss.NewStyle(), "Answer: "+s.input.View()))
		if s.hintsOpen {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.hints.View()))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(s.renderResult(width))

	return b.String()
}

// renderInfoLine shows the mode on the left and run counters on the right.
func (s *QuizScreen) renderInfoLine(width int) string {
	state := s.state

	modeName := "-"
	if state.Current != nil {
		modeName = state.Current.Mode.Name()
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Mode: %s", modeName))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d  %s %d  %s %d  best %d",
			state.Progress+1,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			state.Score,
			lipgloss.NewStyle().Foreground(theme.Accent).Render("🔥"),
			state.Streak,
			state.BestStreak,
		))

	line := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + infoRight
	}
	return line
}

// notices lists non-blocking dataset and persistence warnings.
func (s *QuizScreen) notices() []string {
	var out []string
	if s.origin == dataset.OriginCache {
		out = append(out, "Offline: using the cached dataset.")
	}
	if s.missingFlags > 0 {
		out = append(out, fmt.Sprintf("⚠ %d entries have no flag paths", s.missingFlags))
	}
	if s.warning != "" {
		out = append(out, s.warning)
	}
	return out
}

func promptText(q *qz.Question) string {
	switch q.Mode {
	case qz.FlagToCountry:
		return "Which country does this flag belong to?"
	case qz.CountryToFlag:
		return fmt.Sprintf("Which flag belongs to %s?", q.Item.Country)
	case qz.CountryToCapital:
		return fmt.Sprintf("What is the capital of %s?", q.Item.Country)
	case qz.CapitalToCountry:
		return fmt.Sprintf("%s is the capital of which country?", q.Item.Capital)
	}
	return ""
}

// renderChoices renders the flag cards of a CountryToFlag question.
func (s *QuizScreen) renderChoices(width int) string {
	q := s.state.Current

	mc := s.choices
	mc.Options = make([]string, len(q.Choices))
	for i, c := range q.Choices {
		mc.Options[i] = s.artFor(dataset.BestFlagPath(c), choiceFlagWidth)
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, mc.View()))
	if !s.state.Locked {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Select (1-4) or use arrows + Enter"))
	}
	return b.String()
}

// artFor returns the rendered flag, or a placeholder while it loads.
func (s *QuizScreen) artFor(path string, width int) string {
	if art, ok := s.art[artKey(path, width)]; ok {
		return art
	}
	if s.deps.Flags == nil {
		return flagart.Placeholder(width, width/2, "flag unavailable")
	}
	return flagart.Placeholder(width, width/2, "loading…")
}

// renderResult renders the feedback of the last answer.
func (s *QuizScreen) renderResult(width int) string {
	state := s.state
	if state.Result == "" {
		return ""
	}

	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.outcome != nil {
		switch s.outcome.Kind {
		case session.OutcomeCorrect:
			style = theme.Correct
		case session.OutcomeWrong:
			style = theme.Incorrect
		}
	}

	var b strings.Builder
	b.WriteString(style.Width(width).Align(lipgloss.Center).Render(state.Result))

	if s.outcome != nil && s.outcome.Milestone > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("🔥 %d in a row!", s.outcome.Milestone)))
	}

	if state.Locked {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Press Enter for the next question..."))
	}

	return b.String()
}

// renderNoData explains why there is nothing to ask.
func (s *QuizScreen) renderNoData(width int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Error).Bold(true), "No dataset available."))
	b.WriteString("\n\n")

	// The bare sentinel carries no detail worth showing.
	if s.loadErr != nil && s.loadErr != dataset.ErrDataUnavailable {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), s.loadErr.Error()))
		b.WriteString("\n\n")
	}
	if s.warning != "" {
		b.WriteString(center(theme.Warning, s.warning))
		b.WriteString("\n\n")
	}

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		"Point --manifest or GEOQUIZ_MANIFEST at a flags manifest,"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		"or paste one with IMPORT DATASET."))
	b.WriteString("\n\n")

	actions := "[R] Retry   [Esc] Back"
	if s.deps.ImportScreen != nil {
		actions = "[I] Import dataset   " + actions
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary), actions))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "End quiz?"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Your results will be saved."))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, show summary"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Loading dataset...")
}
