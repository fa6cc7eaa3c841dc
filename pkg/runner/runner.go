// Package runner ties source resolution, traversal, rendering, and writing together.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"dirparse/pkg/config"
	"dirparse/pkg/consolidate"
	"dirparse/pkg/markdown"
	"dirparse/pkg/source"
	"dirparse/pkg/tokens"
)

// Result describes a finished run.
type Result struct {
	Source     string
	OutputPath string
	Document   string
	Stats      consolidate.Stats
	Files      int
	Tokens     int
}

// Option customizes a run.
type Option func(*runConfig)

type runConfig struct {
	counter    tokens.Counter
	counterSet bool
	now        func() time.Time
}

// WithCounter uses counter for token counts instead of building one from the settings.
// A nil counter disables counting.
func WithCounter(counter tokens.Counter) Option {
	return func(rc *runConfig) {
		rc.counter = counter
		rc.counterSet = true
	}
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(rc *runConfig) {
		rc.now = now
	}
}

// OutputPath returns the absolute report path the settings resolve to.
func OutputPath(settings config.Settings) (string, error) {
	output, err := filepath.Abs(markdown.NormalizeOutputPath(settings.Output))
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}
	return output, nil
}

// Run consolidates the configured source into one Markdown file.
func Run(ctx context.Context, settings config.Settings, logger *zap.Logger, options ...Option) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rc := runConfig{now: time.Now}
	for _, option := range options {
		option(&rc)
	}

	outputPath, err := OutputPath(settings)
	if err != nil {
		return Result{}, err
	}

	languages, err := loadLanguages(settings)
	if err != nil {
		return Result{}, err
	}

	counter := rc.counter
	if !rc.counterSet && settings.Tokens {
		tk, tokErr := tokens.NewTiktoken(settings.Model, logger)
		if tokErr != nil {
			logger.Warn("Token counting disabled", zap.Error(tokErr))
		} else {
			counter = tk
		}
	}

	src, err := source.Resolve(ctx, settings.Input, logger)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			logger.Warn("Failed to clean up source", zap.Error(closeErr))
		}
	}()

	opts := settings.Options()
	opts.SkipPaths = append(opts.SkipPaths, outputPath)

	renderer := markdown.NewRenderer(opts, markdown.Metadata{
		Root:       src.Name(),
		Generated:  rc.now(),
		ShowTokens: counter != nil,
		Languages:  languages,
	})

	logger.Info("Consolidating directory",
		zap.String("source", src.Name()),
		zap.String("outputFile", outputPath))

	stats, err := consolidate.Traverse(ctx, src.Dir, opts, logger, func(entry consolidate.Entry) error {
		if counter != nil && entry.File != nil && entry.File.HasContent() {
			entry.File.Tokens = counter.Count(entry.File.Content)
		}
		return renderer.Add(entry)
	})
	if err != nil {
		return Result{}, fmt.Errorf("traversal failed: %w", err)
	}

	document := renderer.Render()
	if err := markdown.WriteFile(outputPath, document, logger); err != nil {
		return Result{}, err
	}

	result := Result{
		Source:     src.Name(),
		OutputPath: outputPath,
		Document:   document,
		Stats:      stats,
		Files:      renderer.Files(),
		Tokens:     renderer.Tokens(),
	}
	logger.Info("Consolidation complete",
		zap.Int("directories", stats.Directories),
		zap.Int("filesProcessed", stats.Files),
		zap.Int("filesSkipped", stats.SkippedFiles),
		zap.Int("directoriesSkipped", stats.SkippedDirs),
		zap.Int("binary", stats.Binary),
		zap.Int("unreadable", stats.Unreadable),
		zap.String("outputFile", outputPath))
	return result, nil
}

// Preview reports what a run would include without reading file contents or writing output.
func Preview(ctx context.Context, settings config.Settings, logger *zap.Logger) (consolidate.Stats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	src, err := source.Resolve(ctx, settings.Input, logger)
	if err != nil {
		return consolidate.Stats{}, err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			logger.Warn("Failed to clean up source", zap.Error(closeErr))
		}
	}()

	opts := settings.Options()
	if outputPath, err := OutputPath(settings); err == nil {
		opts.SkipPaths = append(opts.SkipPaths, outputPath)
	}
	return consolidate.Preview(ctx, src.Dir, opts, logger)
}

func loadLanguages(settings config.Settings) (*markdown.Languages, error) {
	if settings.LanguagesFile == "" {
		return markdown.DefaultLanguages(), nil
	}
	languages, err := markdown.LoadLanguagesFile(settings.LanguagesFile)
	if err != nil {
		return nil, err
	}
	return languages, nil
}
