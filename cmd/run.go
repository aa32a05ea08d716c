package cmd

import (
	"math/rand/v2"

	"github.com/abhisek/geoquiz/internal/app"
	"github.com/abhisek/geoquiz/internal/flagart"
	"github.com/abhisek/geoquiz/internal/quiz"
	"github.com/spf13/cobra"
)

// appFlags carries the play-only options into runApp.
type appFlags struct {
	skipIntro bool
	seed      uint64
	hasSeed   bool
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, flags appFlags) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	loader, cfg, client := newLoader(cmd, st)
	opts := app.Options{
		Loader:     loader,
		EventRepo:  st.EventRepo(),
		Flags:      flagart.NewResolver(cfg.Source, client),
		QuizConfig: quiz.DefaultConfig(),
		SkipIntro:  flags.skipIntro,
	}
	if flags.hasSeed {
		opts.Rand = rand.New(rand.NewPCG(flags.seed, flags.seed))
	}

	return app.Run(opts)
}
