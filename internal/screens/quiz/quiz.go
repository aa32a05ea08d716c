// Package quiz is the screen that runs a quiz: it loads the dataset, shows
// one question at a time and feeds key input to the session evaluator.
package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/geoquiz/internal/dataset"
	qz "github.com/abhisek/geoquiz/internal/quiz"
	"github.com/abhisek/geoquiz/internal/router"
	"github.com/abhisek/geoquiz/internal/screen"
	"github.com/abhisek/geoquiz/internal/screens/summary"
	"github.com/abhisek/geoquiz/internal/session"
	"github.com/abhisek/geoquiz/internal/store"
	"github.com/abhisek/geoquiz/internal/ui/components"
	"github.com/abhisek/geoquiz/internal/ui/layout"
)

const (
	loadTimeout = 30 * time.Second
	flagTimeout = 10 * time.Second

	flagWidth        = 32
	flagWidthCompact = 22
	choiceFlagWidth  = 14
)

// DatasetLoader produces the item pool.
type DatasetLoader interface {
	Load(ctx context.Context) dataset.LoadResult
}

// FlagRenderer turns a flag path into terminal art.
type FlagRenderer interface {
	Art(ctx context.Context, flagPath string, width int) string
}

// Deps are the collaborators of the quiz screen. EventRepo and Flags are
// optional; without them nothing is recorded and flags show placeholders.
type Deps struct {
	Loader    DatasetLoader
	EventRepo store.EventRepo
	Flags     FlagRenderer
	Config    qz.Config
	Rand      *rand.Rand

	// ImportScreen opens the dataset import panel from the no-data view.
	ImportScreen func() screen.Screen
}

// QuizScreen implements screen.Screen for an active quiz.
type QuizScreen struct {
	deps Deps

	state        *session.State
	loading      bool
	origin       dataset.Origin
	loadErr      error
	missingFlags int

	input     components.AnswerInput
	choices   components.MultiChoice
	hints     components.MultiChoice
	hintsOpen bool
	outcome   *session.Outcome

	round         int
	art           map[string]string
	compact       bool
	questionStart time.Time
	confirmQuit   bool
	warning       string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Scoreboard = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen that loads its items through deps.Loader.
func New(deps Deps) *QuizScreen {
	if deps.Config == (qz.Config{}) {
		deps.Config = qz.DefaultConfig()
	}
	return &QuizScreen{
		deps:    deps,
		loading: true,
		art:     make(map[string]string),
	}
}

// NewWithItems creates a QuizScreen over an already loaded pool, such as a
// freshly imported manifest.
func NewWithItems(deps Deps, items []dataset.Item, origin dataset.Origin) *QuizScreen {
	s := New(deps)
	s.loading = false
	s.origin = origin
	if len(items) > 0 {
		s.start(items)
	}
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.state != nil {
		return s.beginRound()
	}
	if !s.loading {
		return nil
	}
	return s.loadCmd()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Scoreboard reports the live score and streak for the header.
func (s *QuizScreen) Scoreboard() (score, streak int) {
	if s.state == nil {
		return 0, 0
	}
	return s.state.Score, s.state.Streak
}

// HandlesEscape is true once a quiz is running; Esc then asks before
// leaving.
func (s *QuizScreen) HandlesEscape() bool {
	return s.state != nil
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.state == nil:
		hints := []layout.KeyHint{{Key: "Esc", Description: "Back"}}
		if !s.loading {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
			if s.deps.ImportScreen != nil {
				hints = append(hints, layout.KeyHint{Key: "I", Description: "Import"})
			}
		}
		return hints
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.state.Locked:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Ctrl+R", Description: "Reset"},
			{Key: "Ctrl+T", Description: "Shuffle"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.hintsOpen:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Pick"},
			{Key: "Tab", Description: "Close hints"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.state.Current != nil && s.state.Current.Mode.HasChoices():
		return []layout.KeyHint{
			{Key: "1-4", Description: "Pick"},
			{Key: "Ctrl+S", Description: "Skip"},
			{Key: "Ctrl+N", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Tab", Description: "Hints"},
		{Key: "Ctrl+S", Description: "Skip"},
		{Key: "Ctrl+N", Description: "Next"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.loading:
		return renderLoading(width)
	case s.state == nil:
		return s.renderNoData(width)
	case s.confirmQuit:
		return renderQuitConfirm(width)
	}
	return s.renderQuestionView(width, height)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case datasetLoadedMsg:
		return s.handleLoaded(msg)

	case flagArtMsg:
		if msg.Round == s.round {
			s.art[msg.Key] = msg.Art
		}
		return s, nil

	case quizEndMsg:
		return s.handleEnd()

	case tea.WindowSizeMsg:
		compact := layout.IsCompactHeight(msg.Height)
		if compact != s.compact {
			s.compact = compact
			return s, tea.Batch(s.artCmds()...)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and similar messages go to the input while typing.
	if s.typing() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// loadCmd loads the dataset off the update loop.
func (s *QuizScreen) loadCmd() tea.Cmd {
	loader := s.deps.Loader
	return func() tea.Msg {
		if loader == nil {
			return datasetLoadedMsg{Result: dataset.LoadResult{
				Origin: dataset.OriginNone,
				Err:    dataset.ErrDataUnavailable,
			}}
		}
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return datasetLoadedMsg{Result: loader.Load(ctx)}
	}
}

func (s *QuizScreen) handleLoaded(msg datasetLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	s.origin = msg.Result.Origin
	s.loadErr = msg.Result.Err
	s.warning = strings.Join(msg.Result.Warnings, "; ")
	if len(msg.Result.Items) == 0 {
		return s, nil
	}
	s.start(msg.Result.Items)
	return s, s.beginRound()
}

// start creates the session over items and records its start.
func (s *QuizScreen) start(items []dataset.Item) {
	deck := qz.NewDeck(items, s.deps.Rand, s.deps.Config)
	s.state = session.New(deck, "")
	s.missingFlags = dataset.MissingFlags(items)
	s.persistSession(store.SessionEventData{
		SessionID: s.state.SessionID,
		Action:    "start",
		ItemCount: len(items),
		Origin:    string(s.origin),
	})
}

// beginRound resets per-question UI state for the current question and
// requests its flag art.
func (s *QuizScreen) beginRound() tea.Cmd {
	s.round++
	s.art = make(map[string]string)
	s.outcome = nil
	s.hintsOpen = false
	s.questionStart = time.Now()
	s.input = components.NewAnswerInput("Type your answer...", 40)

	q := s.state.Current
	if q == nil {
		return nil
	}
	if q.Mode.HasChoices() {
		s.choices = components.NewMultiChoice(make([]string, len(q.Choices)), true)
	}

	cmds := append([]tea.Cmd{s.input.Init()}, s.artCmds()...)
	return tea.Batch(cmds...)
}

// artCmds requests every flag the current question shows that is not yet
// rendered.
func (s *QuizScreen) artCmds() []tea.Cmd {
	if s.deps.Flags == nil || s.state == nil || s.state.Current == nil {
		return nil
	}
	q := s.state.Current

	var cmds []tea.Cmd
	want := func(path string, width int) {
		if _, ok := s.art[artKey(path, width)]; !ok {
			cmds = append(cmds, s.fetchArt(path, width))
		}
	}
	if q.Mode.NeedsFlag() {
		want(dataset.BestFlagPath(q.Item), s.mainFlagWidth())
	}
	if q.Mode.HasChoices() {
		for _, c := range q.Choices {
			want(dataset.BestFlagPath(c), choiceFlagWidth)
		}
	}
	return cmds
}

func (s *QuizScreen) fetchArt(path string, width int) tea.Cmd {
	flags := s.deps.Flags
	round := s.round
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
		defer cancel()
		return flagArtMsg{
			Round: round,
			Key:   artKey(path, width),
			Art:   flags.Art(ctx, path, width),
		}
	}
}

func (s *QuizScreen) mainFlagWidth() int {
	if s.compact {
		return flagWidthCompact
	}
	return flagWidth
}

func artKey(path string, width int) string {
	return fmt.Sprintf("%d:%s", width, path)
}

// typing reports whether key input goes to the answer field.
func (s *QuizScreen) typing() bool {
	if s.state == nil || s.state.Current == nil {
		return false
	}
	return !s.state.Locked && !s.hintsOpen && !s.confirmQuit && !s.state.Current.Mode.HasChoices()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Loading or no data.
	if s.state == nil {
		switch key {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r", "R":
			if !s.loading {
				s.loading = true
				return s, s.loadCmd()
			}
		case "i", "I":
			if !s.loading && s.deps.ImportScreen != nil {
				next := s.deps.ImportScreen()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y", "enter":
			s.confirmQuit = false
			return s, func() tea.Msg { return quizEndMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "ctrl+n":
		s.state.Next()
		return s, s.beginRound()
	case "ctrl+r":
		s.state.Reset()
		return s, s.beginRound()
	case "ctrl+t":
		s.state.Shuffle()
		return s, nil
	case "ctrl+s":
		if out, ok := s.state.Skip(); ok {
			s.record(out)
			s.input.Submit(false)
			s.hintsOpen = false
		}
		return s, nil
	case "tab":
		s.toggleHints()
		return s, nil
	}

	if s.state.Locked {
		if key == "enter" {
			s.state.Next()
			return s, s.beginRound()
		}
		return s, nil
	}

	q := s.state.Current
	if q == nil {
		return s, nil
	}

	if s.hintsOpen {
		s.hints, _ = s.hints.Update(msg)
		if opt, ok := s.hints.Chosen(); ok {
			s.hintsOpen = false
			s.input.SetValue(opt)
			return s.submitText(opt)
		}
		return s, nil
	}

	if q.Mode.HasChoices() {
		s.choices, _ = s.choices.Update(msg)
		if s.choices.Submitted {
			return s.submitChoice(s.choices.ChosenIndex)
		}
		return s, nil
	}

	if key == "enter" {
		return s.submitText(s.input.Value())
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// toggleHints opens or closes the hint list for text questions.
func (s *QuizScreen) toggleHints() {
	q := s.state.Current
	if q == nil || s.state.Locked || q.Mode.HasChoices() {
		return
	}
	if s.hintsOpen {
		s.hintsOpen = false
		return
	}
	options := s.state.Deck.HintOptions(q.Mode.Expects(), q.Item)
	s.hints = components.NewMultiChoice(options, false)
	s.hintsOpen = true
}

func (s *QuizScreen) submitText(value string) (screen.Screen, tea.Cmd) {
	out, ok := s.state.SubmitText(value)
	if !ok {
		return s, nil
	}
	s.input.Submit(out.Correct())
	s.record(out)
	return s, nil
}

func (s *QuizScreen) submitChoice(index int) (screen.Screen, tea.Cmd) {
	out, ok := s.state.SubmitChoice(index)
	if !ok {
		s.choices.Submitted = false
		s.choices.ChosenIndex = -1
		return s, nil
	}
	if out.ChoiceMarks != nil {
		s.choices.Reveal(out.ChoiceMarks.Correct, out.ChoiceMarks.Chosen)
	}
	s.record(out)
	return s, nil
}

// record keeps the outcome for display and appends it to the event log.
func (s *QuizScreen) record(out session.Outcome) {
	s.outcome = &out

	if s.deps.EventRepo == nil {
		return
	}
	expected := out.Item.Country
	if q := s.state.Current; q != nil {
		expected = q.ExpectedAnswer()
	}
	err := s.deps.EventRepo.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID: s.state.SessionID,
		Mode:      out.Mode.Slug(),
		Country:   out.Item.Country,
		Expected:  expected,
		Given:     out.Input,
		Outcome:   out.Kind.String(),
		Correct:   out.Correct(),
		Streak:    s.state.Streak,
		TimeMs:    int(time.Since(s.questionStart).Milliseconds()),
	})
	if err != nil {
		s.warning = fmt.Sprintf("warning: answer not saved: %v", err)
	}
}

func (s *QuizScreen) handleEnd() (screen.Screen, tea.Cmd) {
	if s.state == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	sum := s.state.Summary()
	s.persistSession(store.SessionEventData{
		SessionID:      s.state.SessionID,
		Action:         "end",
		ItemCount:      s.state.Deck.Len(),
		Origin:         string(s.origin),
		Answered:       sum.Answered,
		CorrectAnswers: sum.Correct,
		Skipped:        sum.Skipped,
		BestStreak:     sum.BestStreak,
		DurationSecs:   int(sum.Duration.Seconds()),
	})

	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func (s *QuizScreen) persistSession(data store.SessionEventData) {
	if s.deps.EventRepo == nil {
		return
	}
	if err := s.deps.EventRepo.AppendSessionEvent(context.Background(), data); err != nil {
		s.warning = fmt.Sprintf("warning: session %s not saved: %v", data.Action, err)
	}
}
