package consolidate

import (
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxFileSizeMB is the default size cap in megabytes.
const DefaultMaxFileSizeMB = 10

// BytesPerMB converts the megabyte size flag to bytes.
const BytesPerMB = 1024 * 1024

// DefaultExcludedExtensions lists media, document, archive, binary, and system
// file extensions that are skipped unless the defaults are disabled.
var DefaultExcludedExtensions = []string{
	// Media
	".mp3", ".mp4", ".avi", ".mov", ".mkv", ".flv", ".wmv", ".m4v",
	".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp", ".ico",
	".svg", ".psd", ".ai", ".eps",

	// Documents
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".odt",

	// Archives
	".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz",

	// Executables and images
	".exe", ".dll", ".so", ".dylib", ".bin", ".app", ".msi",
	".iso", ".img", ".dmg",

	// System and scratch files
	".db", ".sqlite", ".sqlite3", ".log", ".tmp", ".temp",

	// Compiled Python
	".pyc", ".pyo",
}

// DefaultExcludedDirPatterns lists directory patterns skipped by default.
// ".git" is written as a path pattern so that it matches the exact name only
// and leaves ".github" alone.
var DefaultExcludedDirPatterns = []string{
	"__pycache__",
	"node_modules",
	"**/.git",
}

// TextExtensions lists extensions read as text without content sniffing.
var TextExtensions = map[string]bool{
	".txt": true, ".md": true, ".markdown": true, ".rst": true, ".json": true, ".xml": true,
	".html": true, ".htm": true, ".css": true, ".js": true, ".jsx": true, ".ts": true,
	".tsx": true, ".py": true, ".java": true, ".c": true, ".cpp": true, ".h": true,
	".hpp": true, ".cs": true, ".php": true, ".rb": true, ".go": true, ".rs": true,
	".swift": true, ".kt": true, ".sql": true, ".sh": true, ".bash": true, ".zsh": true,
	".ps1": true, ".bat": true, ".yml": true, ".yaml": true, ".toml": true, ".ini": true,
	".cfg": true, ".conf": true, ".csv": true, ".tsv": true, ".tex": true, ".bib": true,
	".asm": true, ".s": true, ".v": true, ".vhdl": true, ".m": true, ".mm": true,
	".f": true, ".for": true, ".f90": true, ".r": true, ".lua": true, ".pl": true,
	".pm": true, ".tcl": true, ".vbs": true, ".asp": true, ".aspx": true, ".jsp": true,
	".scala": true, ".dart": true, ".elm": true, ".clj": true, ".cljs": true, ".erl": true,
	".hrl": true, ".ex": true, ".exs": true, ".fs": true, ".fsx": true, ".fsi": true,
	".ml": true, ".mli": true, ".hs": true, ".lhs": true, ".purs": true, ".coffee": true,
	".litcoffee": true, ".ass": true, ".vue": true, ".svelte": true,
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxFileSize:         DefaultMaxFileSizeMB * BytesPerMB,
		ExcludedExtensions:  append([]string(nil), DefaultExcludedExtensions...),
		ExcludedDirPatterns: append([]string(nil), DefaultExcludedDirPatterns...),
	}
}

// NormalizeExtension lower-cases ext and adds the leading dot when missing.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Extension returns the extension of a file name. A dot file without a further
// dot, such as ".log" or ".env", has no extension.
func Extension(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return ""
	}
	return ext
}

// IsTextExtension reports whether files with ext are known to be text.
func IsTextExtension(ext string) bool {
	return TextExtensions[strings.ToLower(ext)]
}

// Exclusions returns the normalized, de-duplicated, sorted union of excluded
// extensions and directory patterns, as listed in the report header.
func (o Options) Exclusions() []string {
	seen := make(map[string]struct{})
	var all []string
	add := func(value string) {
		if value == "" {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		all = append(all, value)
	}
	for _, ext := range o.ExcludedExtensions {
		add(NormalizeExtension(ext))
	}
	for _, pattern := range o.ExcludedDirPatterns {
		add(strings.TrimSpace(pattern))
	}
	sort.Strings(all)
	return all
}
