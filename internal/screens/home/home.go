package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/dataset"
	"github.com/abhisek/geoquiz/internal/router"
	"github.com/abhisek/geoquiz/internal/screen"
	"github.com/abhisek/geoquiz/internal/screens/history"
	quizscreen "github.com/abhisek/geoquiz/internal/screens/quiz"
	"github.com/abhisek/geoquiz/internal/screens/setup"
	"github.com/abhisek/geoquiz/internal/session"
	"github.com/abhisek/geoquiz/internal/ui/components"
	"github.com/abhisek/geoquiz/internal/ui/layout"
	"github.com/abhisek/geoquiz/internal/ui/theme"
)

// stats is the all-time dashboard shown above the menu.
type stats struct {
	sessions   int
	bestStreak int
	attempted  int
	correct    int
}

type statsLoadedMsg struct {
	stats stats
	err   error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps     quizscreen.Deps
	importer setup.Importer
	menu     components.Menu
	stats    stats
	statsErr error
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen. A nil importer disables IMPORT DATASET and
// a nil deps.EventRepo disables HISTORY.
func New(deps quizscreen.Deps, importer setup.Importer) *HomeScreen {
	h := &HomeScreen{importer: importer}
	if importer != nil {
		deps.ImportScreen = h.newSetup
	}
	h.deps = deps

	items := []components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quizscreen.New(h.deps)}
			}
		}},
		{Label: "IMPORT DATASET", Disabled: importer == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: h.newSetup()}
			}
		}},
		{Label: "HISTORY", Disabled: deps.EventRepo == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.deps.EventRepo)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

// newSetup opens the import panel; a successful import starts a quiz over
// the new pool in its place.
func (h *HomeScreen) newSetup() screen.Screen {
	return setup.New(h.importer, func(items []dataset.Item) screen.Screen {
		return quizscreen.NewWithItems(h.deps, items, dataset.OriginImport)
	})
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads the dashboard after a quiz or history view closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.deps.EventRepo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		var st stats
		var err error
		if st.sessions, err = repo.SessionCount(ctx); err != nil {
			return statsLoadedMsg{err: err}
		}
		if st.bestStreak, err = repo.BestStreak(ctx); err != nil {
			return statsLoadedMsg{err: err}
		}
		modes, err := repo.ModeStats(ctx)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		for _, m := range modes {
			st.attempted += m.Attempted
			st.correct += m.Correct
		}
		return statsLoadedMsg{stats: st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.statsErr = msg.err
		if msg.err == nil {
			h.stats = msg.stats
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to estimate
	// the terminal height.
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight+2) || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}

	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if h.statsErr != nil {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(cw).
			Align(lipgloss.Center).
			Render("stats unavailable: "+h.statsErr.Error()))
	}

	if compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(h.menu.View()))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Labels(), h.menu.Selected, cw, h.menu.Disabled()))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// mascot picks the mascot mood from the dashboard.
func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.stats.sessions == 0:
		return MascotAlert
	case h.stats.bestStreak >= 2*session.BaseStreakThreshold:
		return MascotCelebrating
	}
	return MascotIdle
}
