package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dirparse/pkg/runner"
)

func newPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [directory | git-url]",
		Short: "Show what would be consolidated without writing a report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.loadSettings(cmd, args)
			if err != nil {
				return err
			}
			stats, err := runner.Preview(cmd.Context(), settings, a.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Directories:         %d\n", stats.Directories)
			fmt.Fprintf(out, "Files to include:    %d\n", stats.Files)
			fmt.Fprintf(out, "Total size:          %d bytes\n", stats.TotalBytes)
			fmt.Fprintf(out, "Files skipped:       %d\n", stats.SkippedFiles)
			fmt.Fprintf(out, "Directories skipped: %d\n", stats.SkippedDirs)
			return nil
		},
	}
}
