package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denkfabrik-neueMedien/sharp/internal/format"
)

type classifyRow struct {
	Path   string             `json:"path"`
	Format format.ImageFormat `json:"format"`
}

func newClassifyCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "classify PATH...",
		Short: "Detect the container format of image files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]classifyRow, 0, len(args))
			for _, path := range args {
				results = append(results, classifyRow{Path: path, Format: format.ClassifyFile(path)})
			}

			if jsonOut || !shouldRenderTable(cmd.OutOrStdout()) {
				return writeJSON(cmd, results)
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Path, r.Format.String()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Path", "Format"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Write JSON even when stdout is a terminal")
	return cmd
}
