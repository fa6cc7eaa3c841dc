package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirparse/pkg/clipboard"
	"dirparse/pkg/config"
	"dirparse/pkg/consolidate"
	"dirparse/pkg/logging"
	"dirparse/pkg/markdown"
	"dirparse/pkg/tokens"
	"dirparse/pkg/version"
)

// app carries what every command needs at run time.
type app struct {
	logger    *zap.Logger
	copier    clipboard.Copier
	configDir string // working directory for config discovery; empty uses os.Getwd
}

// NewRootCmd builds the command tree.
func NewRootCmd(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	return newRootCmd(&app{logger: logger, copier: clipboard.System{}})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   version.AppName + " [directory | git-url]",
		Short: "Consolidate a directory of text files into one Markdown report",
		Long: `dirparse walks a directory and writes every text file it finds into a single
Markdown document: a directory tree, followed by each file's metadata and
contents in fenced code blocks. Media, archives, binaries, hidden files,
and oversized files are skipped.

A directory whose name matches a subcommand must be written as a path,
for example ./preview or ./version.`,
		Example: `  dirparse
  dirparse ~/src/project -o project.md
  dirparse git@github.com:user/repo.git --tokens
  dirparse ./preview`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogger(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConsolidate(cmd, args)
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.Bool("hidden", false, "Include hidden files and directories")
	persistent.Bool("empty-dirs", false, "Show directories that contain no files")
	persistent.Float64("max-size", consolidate.DefaultMaxFileSizeMB, "Maximum file size in MB (0 for no limit)")
	persistent.StringSlice("exclude-ext", nil, "Additional file extensions to exclude (repeatable or comma-separated)")
	persistent.StringSlice("exclude-dir", nil, "Directory patterns to exclude (substring, glob, or path pattern)")
	persistent.Bool("no-default-excludes", false, "Do not apply the built-in extension and directory exclusions")
	persistent.Bool("gitignore", false, "Respect the root .gitignore file")
	persistent.String("config", "", "Config file (default ./"+config.FileName+")")
	persistent.Bool("debug", false, "Enable debug logging")

	flags := rootCmd.Flags()
	flags.StringP("output", "o", markdown.DefaultOutputFile, "Output Markdown file")
	flags.Bool("tokens", false, "Count tokens per file and in total")
	flags.String("model", tokens.DefaultModel, "Model whose tokenizer is used for token counts")
	flags.String("languages", "", "YAML file mapping code fence languages to extensions and filenames")
	flags.Bool("clipboard", false, "Also copy the report to the clipboard")
	flags.BoolP("yes", "y", false, "Overwrite an existing output file without asking")

	rootCmd.AddCommand(newPreviewCmd(a), newVersionCmd())
	return rootCmd
}

// Execute runs the root command until completion or an interrupt.
func Execute(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd(logger).ExecuteContext(ctx)
}

// setupLogger swaps in a debug logger when requested by flag, environment, or config.
func (a *app) setupLogger(cmd *cobra.Command) error {
	settings, err := a.loadSettings(cmd, nil)
	if err != nil {
		return err
	}
	if !settings.Debug {
		return nil
	}
	if err := logging.Setup(true, version.AppName, version.Get().Version); err != nil {
		a.logger.Warn("Failed to enable debug logging", zap.Error(err))
		return nil
	}
	a.logger = logging.Logger
	if settings.ConfigFile != "" {
		a.logger.Debug("Using config file", zap.String("path", settings.ConfigFile))
	}
	return nil
}

// loadSettings merges flags with the environment and config file.
func (a *app) loadSettings(cmd *cobra.Command, args []string) (config.Settings, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Settings{}, err
	}
	settings, err := config.Load(config.LoadOptions{
		WorkingDirectory: a.configDir,
		ExplicitFilePath: configPath,
		Flags:            cmd.Flags(),
	})
	if err != nil {
		return config.Settings{}, err
	}
	settings.Input = "."
	if len(args) > 0 {
		settings.Input = args[0]
	}
	return settings, nil
}
