package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"dirparse/pkg/runner"
)

// runConsolidate writes the report for the directory named by args.
func (a *app) runConsolidate(cmd *cobra.Command, args []string) error {
	settings, err := a.loadSettings(cmd, args)
	if err != nil {
		return err
	}

	outputPath, err := runner.OutputPath(settings)
	if err != nil {
		return err
	}
	proceed, err := a.confirmOverwrite(cmd, outputPath, settings.Yes)
	if err != nil {
		return err
	}
	if !proceed {
		a.logger.Info("Aborted; existing output file kept", zap.String("outputFile", outputPath))
		return nil
	}

	result, err := runner.Run(cmd.Context(), settings, a.logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Consolidated %d files from %s into %s\n", result.Files, result.Source, result.OutputPath)
	if settings.Tokens && result.Tokens > 0 {
		fmt.Fprintf(out, "Total tokens: %d\n", result.Tokens)
	}

	if settings.Clipboard {
		if err := a.copier.Copy(result.Document); err != nil {
			a.logger.Warn("Failed to copy report to clipboard", zap.Error(err))
			return nil
		}
		fmt.Fprintln(out, "Report copied to clipboard.")
	}
	return nil
}

// confirmOverwrite asks before replacing an existing report. Without a terminal on
// stdin, or with --yes, the file is overwritten.
func (a *app) confirmOverwrite(cmd *cobra.Command, outputPath string, yes bool) (bool, error) {
	info, err := os.Stat(outputPath)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot access output file: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("output path %s is a directory", outputPath)
	}
	if yes || !stdinIsTerminal(cmd) {
		a.logger.Debug("Overwriting existing output file", zap.String("outputFile", outputPath))
		return true, nil
	}

	ok, err := promptUser(cmd.InOrStdin(), cmd.ErrOrStderr(),
		fmt.Sprintf("%s already exists. Overwrite? (y/n): ", outputPath))
	if err != nil {
		a.logger.Error("Failed to read user input", zap.Error(err))
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	return ok, nil
}

func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
