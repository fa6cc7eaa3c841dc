package consolidate

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"dirparse/pkg/ignore"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

// Filter applies the inclusion policy of one run.
type Filter struct {
	root       string
	opts       Options
	extensions map[string]struct{}
	dirs       *ignore.DirPatterns
	gitignore  gitignore.IgnoreMatcher
	skipPaths  map[string]struct{}
	logger     *zap.Logger
}

// NewFilter compiles opts for the absolute root directory. Patterns from the
// root's .dirparseignore file are appended to the configured directory patterns.
func NewFilter(root string, opts Options, logger *zap.Logger) (*Filter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Filter{
		root:       root,
		opts:       opts,
		extensions: make(map[string]struct{}, len(opts.ExcludedExtensions)),
		dirs:       ignore.New(logger),
		skipPaths:  make(map[string]struct{}, len(opts.SkipPaths)),
		logger:     logger,
	}

	for _, ext := range opts.ExcludedExtensions {
		if normalized := NormalizeExtension(ext); normalized != "" {
			f.extensions[normalized] = struct{}{}
		}
	}

	f.dirs.CompileLines(opts.ExcludedDirPatterns...)
	if err := f.dirs.LoadIgnoreFile(root); err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}

	for _, skip := range opts.SkipPaths {
		abs, err := filepath.Abs(skip)
		if err != nil {
			logger.Warn("Failed to resolve skip path", zap.String("path", skip), zap.Error(err))
			continue
		}
		f.skipPaths[filepath.Clean(abs)] = struct{}{}
		f.skipPaths[resolveParent(abs)] = struct{}{}
	}

	if opts.RespectGitignore {
		gitignorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitignorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitignorePath, root)
			if err != nil {
				logger.Warn("Could not parse .gitignore", zap.String("file", gitignorePath), zap.Error(err))
			} else {
				f.gitignore = matcher
				logger.Debug("Loaded .gitignore", zap.String("file", gitignorePath))
			}
		}
	}

	logger.Debug("Filter ready",
		zap.Int("excludedExtensions", len(f.extensions)),
		zap.Int("dirPatterns", f.dirs.Len()),
		zap.Int64("maxFileSize", opts.MaxFileSize),
		zap.Bool("includeHidden", opts.IncludeHidden))
	return f, nil
}

// SkipDir decides whether the directory at absPath (relPath from the root) is pruned
// together with its subtree. The root itself is never pruned.
func (f *Filter) SkipDir(absPath, relPath string) SkipReason {
	if relPath == "." {
		return SkipNone
	}
	if !f.opts.IncludeHidden && isHidden(filepath.Base(absPath)) {
		return SkipHidden
	}
	if f.dirs.MatchesDir(relPath) {
		return SkipExcludedDir
	}
	if f.gitignore != nil && f.gitignore.Match(absPath, true) {
		return SkipGitignored
	}
	return SkipNone
}

// SkipFile decides whether the file at absPath with the given size is left out.
func (f *Filter) SkipFile(absPath, relPath string, size int64) SkipReason {
	name := filepath.Base(absPath)
	if !f.opts.IncludeHidden && isHidden(name) {
		return SkipHidden
	}
	if dir := path.Dir(relPath); dir != "." && f.dirs.MatchesDir(dir) {
		return SkipExcludedDir
	}
	if _, excluded := f.extensions[strings.ToLower(Extension(name))]; excluded {
		return SkipExcludedExt
	}
	if f.opts.MaxFileSize > 0 && size > f.opts.MaxFileSize {
		return SkipTooLarge
	}
	if _, listed := f.skipPaths[filepath.Clean(absPath)]; listed {
		return SkipOutputFile
	}
	if f.gitignore != nil && f.gitignore.Match(absPath, false) {
		return SkipGitignored
	}
	return SkipNone
}

// resolveParent resolves symlinks in the parent directory of path, so a file
// named through a linked directory matches the walked path. The file itself
// need not exist yet.
func resolveParent(target string) string {
	target = filepath.Clean(target)
	dir, err := filepath.EvalSymlinks(filepath.Dir(target))
	if err != nil {
		return target
	}
	return filepath.Join(dir, filepath.Base(target))
}

// isHidden reports whether name denotes a dot file or dot directory.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
