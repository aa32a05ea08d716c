package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := appFlags{skipIntro: true}
		if cmd.Flags().Changed("seed") {
			flags.seed, _ = cmd.Flags().GetUint64("seed")
			flags.hasSeed = true
		}
		return runApp(cmd, flags)
	},
}

func init() {
	playCmd.Flags().Uint64("seed", 0, "Seed for question order (repeatable runs)")
}
