package cmd

import (
	"fmt"
	"net/http"

	"github.com/abhisek/geoquiz/internal/dataset"
	"github.com/abhisek/geoquiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "geoquiz",
	Short: "Terminal geography quiz",
	Long:  "Geoquiz - flags, countries and capitals quiz for the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, appFlags{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GEOQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("manifest", "", "Flag manifest URL or file path (overrides GEOQUIZ_MANIFEST env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then GEOQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveDatasetConfig returns the manifest settings using --manifest
// (highest priority), then the GEOQUIZ_* env vars, then the defaults.
func resolveDatasetConfig(cmd *cobra.Command) dataset.Config {
	cfg := dataset.ConfigFromEnv()
	if m, _ := cmd.Flags().GetString("manifest"); m != "" {
		cfg.Source = m
	}
	return cfg
}

// openStore opens the SQLite store at the resolved path.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newLoader builds the manifest loader backed by the store cache. The
// returned client is shared with the flag resolver.
func newLoader(cmd *cobra.Command, st *store.Store) (*dataset.Loader, dataset.Config, *http.Client) {
	cfg := resolveDatasetConfig(cmd)
	client := &http.Client{Timeout: cfg.Timeout}
	return dataset.NewLoader(cfg, st.CacheRepo(), dataset.WithHTTPClient(client)), cfg, client
}
