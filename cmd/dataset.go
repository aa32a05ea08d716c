package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"charm.land/lipgloss/v2/table"
	"github.com/abhisek/geoquiz/internal/dataset"
	"github.com/spf13/cobra"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage the flag manifest",
}

var datasetImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Validate a manifest and store it as the offline copy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readManifest(cmd, args[0])
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		loader, _, _ := newLoader(cmd, st)
		items, err := loader.Import(cmd.Context(), raw)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d countries.\n", len(items))
		if n := dataset.MissingFlags(items); n > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d entries have no flag paths\n", n)
		}
		return nil
	},
}

var datasetClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the offline copy of the manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		loader, _, _ := newLoader(cmd, st)
		if err := loader.ClearCache(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cached dataset cleared.")
		return nil
	},
}

var datasetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Load the manifest and print the quiz pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		loader, _, _ := newLoader(cmd, st)
		res := loader.Load(cmd.Context())
		return printPool(cmd, loader.Source(), res)
	},
}

func init() {
	datasetShowCmd.Flags().Bool("list", false, "List every country and capital")

	datasetCmd.AddCommand(datasetImportCmd)
	datasetCmd.AddCommand(datasetClearCmd)
	datasetCmd.AddCommand(datasetShowCmd)
}

// readManifest reads path, or stdin when path is "-".
func readManifest(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return raw, nil
}

func printPool(cmd *cobra.Command, source string, res dataset.LoadResult) error {
	out := cmd.OutOrStdout()
	for _, w := range res.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), w)
	}
	if res.Origin == dataset.OriginNone {
		return res.Err
	}
	if res.Err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: source unavailable, using cached copy: %v\n", res.Err)
	}

	fmt.Fprintf(out, "Source:    %s\n", source)
	fmt.Fprintf(out, "Origin:    %s\n", res.Origin)
	fmt.Fprintf(out, "Countries: %d\n", len(res.Items))
	fmt.Fprintf(out, "No flag:   %d\n", res.MissingFlags)

	if list, _ := cmd.Flags().GetBool("list"); list && len(res.Items) > 0 {
		t := table.New().Headers("#", "Country", "Capital", "Flag")
		for i, it := range res.Items {
			t.Row(strconv.Itoa(i+1), it.Country, it.Capital, dataset.BestFlagPath(it))
		}
		fmt.Fprintln(out, t.Render())
	}
	return nil
}
