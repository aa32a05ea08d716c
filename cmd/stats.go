package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2/table"
	"github.com/abhisek/geoquiz/internal/quiz"
	"github.com/abhisek/geoquiz/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		return printStats(cmd, st.EventRepo())
	},
}

func printStats(cmd *cobra.Command, repo store.EventRepo) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	sessions, err := repo.SessionCount(ctx)
	if err != nil {
		return fmt.Errorf("count sessions: %w", err)
	}
	if sessions == 0 {
		fmt.Fprintln(out, "No quizzes yet.")
		return nil
	}
	best, err := repo.BestStreak(ctx)
	if err != nil {
		return fmt.Errorf("best streak: %w", err)
	}
	modes, err := repo.ModeStats(ctx)
	if err != nil {
		return fmt.Errorf("mode stats: %w", err)
	}

	fmt.Fprintf(out, "Quizzes:     %d\n", sessions)
	fmt.Fprintf(out, "Best streak: %d\n", best)

	if len(modes) > 0 {
		t := table.New().Headers("Mode", "Answered", "Correct", "Skipped", "Accuracy")
		for _, m := range modes {
			name := m.Mode
			if mode, ok := quiz.ModeFromSlug(m.Mode); ok {
				name = mode.Name()
			}
			t.Row(name,
				strconv.Itoa(m.Attempted),
				strconv.Itoa(m.Correct),
				strconv.Itoa(m.Skipped),
				accuracy(m.Correct, m.Attempted))
		}
		fmt.Fprintln(out, t.Render())
	}

	recent, err := repo.RecentSessions(ctx, 5)
	if err != nil {
		return fmt.Errorf("recent sessions: %w", err)
	}
	if len(recent) > 0 {
		t := table.New().Headers("Finished", "Answered", "Correct", "Best streak", "Duration")
		for _, r := range recent {
			t.Row(r.Timestamp.Local().Format("2006-01-02 15:04"),
				strconv.Itoa(r.Answered),
				strconv.Itoa(r.CorrectAnswers),
				strconv.Itoa(r.BestStreak),
				fmt.Sprintf("%d:%02d", r.DurationSecs/60, r.DurationSecs%60))
		}
		fmt.Fprintln(out, t.Render())
	}
	return nil
}

func accuracy(correct, attempted int) string {
	if attempted == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", float64(correct)*100/float64(attempted))
}
