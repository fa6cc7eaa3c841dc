// Package source resolves the user's input into a local directory to consolidate.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

const tempDirPattern = "dirparse-git-"

// Source is a local directory ready for traversal.
type Source struct {
	Input  string // What the user asked for.
	Dir    string // Absolute local directory.
	Cloned bool   // Dir is a temporary clone owned by this Source.
	logger *zap.Logger
}

// IsGitURL reports whether input looks like a Git repository URL rather than a path.
func IsGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") && strings.Contains(input, "://") ||
		strings.HasPrefix(input, "git@")
}

// Resolve turns input into a Source. Git URLs are shallow-cloned into a temporary
// directory; anything else must name an existing directory.
func Resolve(ctx context.Context, input string, logger *zap.Logger) (*Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if input == "" {
		input = "."
	}

	if IsGitURL(input) {
		dir, err := clone(ctx, input, logger)
		if err != nil {
			return nil, err
		}
		return &Source{Input: input, Dir: dir, Cloned: true, logger: logger}, nil
	}

	dir, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("directory %s does not exist", dir)
		}
		return nil, fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &Source{Input: input, Dir: dir, logger: logger}, nil
}

// Name returns a display name for the report header.
func (s *Source) Name() string {
	if s.Cloned {
		return s.Input
	}
	return s.Dir
}

// Close removes a temporary clone. It is a no-op for local directories.
func (s *Source) Close() error {
	if s == nil || !s.Cloned || s.Dir == "" {
		return nil
	}
	s.logger.Debug("Removing temporary clone", zap.String("dir", s.Dir))
	if err := os.RemoveAll(s.Dir); err != nil {
		return fmt.Errorf("failed to remove temporary clone %s: %w", s.Dir, err)
	}
	s.Dir = ""
	return nil
}

func clone(ctx context.Context, url string, logger *zap.Logger) (string, error) {
	tempDir, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	logger.Info("Cloning repository", zap.String("url", url), zap.String("dir", tempDir))
	_, err = git.PlainCloneContext(ctx, tempDir, false, &git.CloneOptions{
		URL:           url,
		Depth:         1,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
	})
	if err != nil {
		if removeErr := os.RemoveAll(tempDir); removeErr != nil {
			logger.Warn("Failed to clean up after clone error", zap.String("dir", tempDir), zap.Error(removeErr))
		}
		return "", fmt.Errorf("failed to clone repository %s: %w", url, err)
	}

	logger.Debug("Finished cloning", zap.String("url", url))
	return tempDir, nil
}
