package app

import (
	"fmt"
	"math/rand/v2"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geoquiz/internal/dataset"
	"github.com/abhisek/geoquiz/internal/flagart"
	"github.com/abhisek/geoquiz/internal/quiz"
	"github.com/abhisek/geoquiz/internal/router"
	"github.com/abhisek/geoquiz/internal/screen"
	"github.com/abhisek/geoquiz/internal/screens/home"
	quizscreen "github.com/abhisek/geoquiz/internal/screens/quiz"
	"github.com/abhisek/geoquiz/internal/screens/setup"
	"github.com/abhisek/geoquiz/internal/screens/welcome"
	"github.com/abhisek/geoquiz/internal/store"
	"github.com/abhisek/geoquiz/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Loader     *dataset.Loader
	EventRepo  store.EventRepo
	Flags      *flagart.Resolver
	QuizConfig quiz.Config

	// Rand seeds question order; nil uses a random source.
	Rand *rand.Rand

	// SkipIntro starts a quiz right away, skipping the welcome animation.
	// Home sits below it so Esc still lands there.
	SkipIntro bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	initCmd tea.Cmd
	width   int
	height  int
}

// quizDeps converts Options into the quiz screen dependencies. Nil pointers
// stay out of the interfaces so the screens see a true nil.
func quizDeps(opts Options) quizscreen.Deps {
	deps := quizscreen.Deps{
		EventRepo: opts.EventRepo,
		Config:    opts.QuizConfig,
		Rand:      opts.Rand,
	}
	if opts.Loader != nil {
		deps.Loader = opts.Loader
	}
	if opts.Flags != nil {
		deps.Flags = opts.Flags
	}
	return deps
}

// newAppModel creates a new AppModel starting on the welcome screen.
func newAppModel(opts Options) AppModel {
	deps := quizDeps(opts)
	var importer setup.Importer
	if opts.Loader != nil {
		importer = opts.Loader
	}
	homeFactory := func() screen.Screen {
		return home.New(deps, importer)
	}

	if opts.SkipIntro {
		h := home.New(deps, importer)
		r := router.New(h)
		return AppModel{
			router:  r,
			initCmd: tea.Batch(h.Init(), r.Push(quizscreen.New(deps))),
		}
	}

	w := welcome.New(homeFactory)
	return AppModel{
		router:  router.New(w),
		initCmd: w.Init(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.router.Update(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if eh, ok := m.router.Active().(screen.EscapeHandler); ok && eh.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.frame())
	v.AltScreen = true
	return v
}

// frame renders the header, active screen and footer for the current size.
func (m AppModel) frame() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var score, streak int
	if active != nil {
		title = active.Title()
		if sb, ok := active.(screen.Scoreboard); ok {
			score, streak = sb.Scoreboard()
		}
	}

	header := layout.RenderHeader(title, score, streak, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
