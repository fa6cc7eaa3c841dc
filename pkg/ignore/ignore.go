// Package ignore matches directory paths against exclusion patterns.
package ignore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// FileName is the optional per-root file holding extra directory exclusion patterns.
const FileName = ".dirparseignore"

// Pattern is one compiled exclusion pattern.
type Pattern struct {
	Pattern  *regexp.Regexp // Compiled regular expression for the pattern.
	Negate   bool           // Pattern started with '!'.
	PathWide bool           // Pattern contains '/' and is matched against the whole relative path.
	Line     string         // Original pattern line.
	LineNo   int            // 1-based position among compiled lines.
}

// DirPatterns is an ordered collection of directory exclusion patterns.
// Later patterns override earlier ones, so a negated pattern can re-include a directory.
type DirPatterns struct {
	Patterns []*Pattern
	logger   *zap.Logger
}

// New returns an empty pattern set.
func New(logger *zap.Logger) *DirPatterns {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirPatterns{
		Patterns: []*Pattern{},
		logger:   logger,
	}
}

// LoadIgnoreFile compiles the patterns of root's .dirparseignore file into dp.
// A missing file is not an error.
func (dp *DirPatterns) LoadIgnoreFile(root string) error {
	path := filepath.Join(root, FileName)
	if err := dp.CompileFile(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			dp.logger.Debug("No ignore file found", zap.String("filePath", path))
			return nil
		}
		return err
	}
	return nil
}

// CompileLines compiles pattern lines, skipping blanks and '#' comments.
func (dp *DirPatterns) CompileLines(lines ...string) {
	for _, line := range lines {
		pattern := parsePatternLine(line)
		if pattern == nil {
			continue
		}
		pattern.LineNo = len(dp.Patterns) + 1
		dp.Patterns = append(dp.Patterns, pattern)
		dp.logger.Debug("Compiled exclusion pattern",
			zap.Int("lineNo", pattern.LineNo),
			zap.String("pattern", pattern.Line),
			zap.Bool("negate", pattern.Negate),
			zap.Bool("pathWide", pattern.PathWide))
	}
}

// CompileFile reads a pattern file and compiles its lines.
func (dp *DirPatterns) CompileFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read ignore file %s: %w", path, err)
	}
	lines := strings.Split(string(content), "\n")
	dp.CompileLines(lines...)
	dp.logger.Info("Loaded ignore file", zap.String("filePath", path), zap.Int("lineCount", len(lines)))
	return nil
}

// Len returns the number of compiled patterns.
func (dp *DirPatterns) Len() int {
	return len(dp.Patterns)
}

// MatchesDir reports whether the directory at relDir, or any of its ancestors, is excluded.
func (dp *DirPatterns) MatchesDir(relDir string) bool {
	matched, _ := dp.MatchesDirWithPattern(relDir)
	return matched
}

// MatchesDirWithPattern is MatchesDir that also returns the deciding pattern.
func (dp *DirPatterns) MatchesDirWithPattern(relDir string) (bool, *Pattern) {
	normalized := strings.Trim(filepath.ToSlash(relDir), "/")
	if normalized == "" || normalized == "." {
		return false, nil
	}
	segments := strings.Split(normalized, "/")

	matched := false
	var matchedPattern *Pattern
	for _, pattern := range dp.Patterns {
		if !pattern.matches(normalized, segments) {
			continue
		}
		matched = !pattern.Negate
		matchedPattern = pattern
	}
	return matched, matchedPattern
}

func (p *Pattern) matches(path string, segments []string) bool {
	if p.PathWide {
		return p.Pattern.MatchString(path)
	}
	for _, segment := range segments {
		if p.Pattern.MatchString(segment) {
			return true
		}
	}
	return false
}

// parsePatternLine turns a pattern line into a Pattern. Returns nil for blanks,
// comments, and patterns that fail to compile.
func parsePatternLine(line string) *Pattern {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	body := strings.TrimSuffix(trimmed, "/")
	if body == "" {
		return nil
	}
	pathWide := strings.Contains(body, "/")

	var expr string
	if pathWide {
		expr = pathPatternRegex(body)
	} else {
		expr = namePatternRegex(body)
	}
	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}
	return &Pattern{
		Pattern:  compiled,
		Negate:   negate,
		PathWide: pathWide,
		Line:     trimmed,
	}
}
