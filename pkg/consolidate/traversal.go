package consolidate

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// VisitFunc receives traversal entries in walk order. Returning an error stops the walk.
type VisitFunc func(Entry) error

// Traverse walks root and hands every kept directory and file to visit, in lexical
// order. File contents are loaded one file at a time just before the file is visited.
// The context is checked between entries; cancellation stops the walk with ctx.Err().
func Traverse(ctx context.Context, root string, opts Options, logger *zap.Logger, visit VisitFunc) (Stats, error) {
	return walk(ctx, root, opts, logger, true, visit)
}

// Preview applies the same filter as Traverse without reading any file content.
func Preview(ctx context.Context, root string, opts Options, logger *zap.Logger) (Stats, error) {
	return walk(ctx, root, opts, logger, false, nil)
}

func walk(ctx context.Context, root string, opts Options, logger *zap.Logger, load bool, visit VisitFunc) (Stats, error) {
	var stats Stats
	if logger == nil {
		logger = zap.NewNop()
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return stats, fmt.Errorf("failed to get absolute path: %w", err)
	}
	// WalkDir does not descend into a symlinked root, so walk its target.
	if resolved, evalErr := filepath.EvalSymlinks(absRoot); evalErr == nil {
		absRoot = resolved
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return stats, fmt.Errorf("cannot access root directory: %w", err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("root %s is not a directory", absRoot)
	}

	filter, err := NewFilter(absRoot, opts, logger)
	if err != nil {
		return stats, err
	}

	logger.Debug("Starting traversal", zap.String("root", absRoot), zap.Bool("loadContent", load))

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == absRoot && d == nil {
				return walkErr
			}
			logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(walkErr))
			stats.Unreadable++
			return nil // Skip paths that cause errors
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			logger.Warn("Unable to determine relative path", zap.String("path", path), zap.Error(err))
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if reason := filter.SkipDir(path, relPath); reason != SkipNone {
				logger.Debug("Skipping directory", zap.String("directory", relPath), zap.String("reason", string(reason)))
				stats.SkippedDirs++
				return filepath.SkipDir
			}
			stats.Directories++
			if visit != nil {
				return visit(Entry{RelPath: relPath, IsDir: true})
			}
			return nil
		}

		size, ok := regularFileSize(path, d, logger)
		if !ok {
			logger.Debug("Skipping file", zap.String("file", relPath), zap.String("reason", string(SkipIrregular)))
			stats.SkippedFiles++
			return nil
		}
		if reason := filter.SkipFile(path, relPath, size); reason != SkipNone {
			logger.Debug("Skipping file", zap.String("file", relPath), zap.String("reason", string(reason)))
			stats.SkippedFiles++
			return nil
		}

		stats.Files++
		stats.TotalBytes += size
		if !load {
			return nil
		}

		entry := LoadFile(path, relPath, size, logger)
		switch {
		case entry.Binary:
			stats.Binary++
		case !entry.HasContent():
			stats.Unreadable++
		}
		if visit != nil {
			return visit(Entry{RelPath: relPath, File: &entry})
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	logger.Debug("Completed traversal",
		zap.Int("directories", stats.Directories),
		zap.Int("files", stats.Files),
		zap.Int("skippedFiles", stats.SkippedFiles))
	return stats, nil
}

// regularFileSize returns the size of a regular file, following symlinks that
// point at regular files. Anything else is reported as not ok.
func regularFileSize(path string, d fs.DirEntry, logger *zap.Logger) (int64, bool) {
	var info fs.FileInfo
	var err error
	if d.Type()&fs.ModeSymlink != 0 {
		info, err = os.Stat(path)
	} else {
		info, err = d.Info()
	}
	if err != nil {
		logger.Warn("Failed to get file info during traversal", zap.String("filePath", path), zap.Error(err))
		return 0, false
	}
	if !info.Mode().IsRegular() {
		return 0, false
	}
	return info.Size(), true
}
