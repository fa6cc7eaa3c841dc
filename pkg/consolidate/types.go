package consolidate

// Options holds the filtering configuration for one consolidation run.
// It is not modified once a run starts.
type Options struct {
	IncludeHidden       bool     // Include files and directories whose name starts with '.'.
	IncludeEmptyDirs    bool     // Render directories that end up with no included files.
	MaxFileSize         int64    // Largest file size in bytes to include; <= 0 disables the cap.
	ExcludedExtensions  []string // Extensions (".png") whose files are skipped, compared case-insensitively.
	ExcludedDirPatterns []string // Directory name substrings, globs, or paths whose subtrees are skipped.
	RespectGitignore    bool     // Also skip paths ignored by the root .gitignore.
	SkipPaths           []string // Absolute paths never emitted, such as the report being written.
}

// Entry is one item of the traversal sequence: a directory marker or a file.
type Entry struct {
	RelPath string     // Slash-separated path relative to the root; "." for the root itself.
	IsDir   bool       // True for directory markers.
	File    *FileEntry // Set for files only.
}

// FileEntry describes an included file and its loaded content.
type FileEntry struct {
	RelPath   string // Slash-separated path relative to the root.
	Name      string // Base name.
	Extension string // Extension as found on disk, including the dot; empty if none.
	Size      int64  // Size in bytes.
	Content   string // Text content; empty when Omitted is set.
	Omitted   string // Reason the content is not shown, such as a read error.
	Binary    bool   // Content sniffing classified the file as binary.
	Tokens    int    // Token count, filled in by callers that count tokens.
}

// HasContent reports whether the entry carries displayable text.
func (f FileEntry) HasContent() bool {
	return f.Omitted == ""
}

// SkipReason explains why a path was left out. The empty reason means included.
type SkipReason string

const (
	SkipNone        SkipReason = ""
	SkipHidden      SkipReason = "hidden"
	SkipExcludedDir SkipReason = "excluded directory pattern"
	SkipExcludedExt SkipReason = "excluded extension"
	SkipTooLarge    SkipReason = "exceeds size limit"
	SkipOutputFile  SkipReason = "output file"
	SkipGitignored  SkipReason = "ignored by .gitignore"
	SkipIrregular   SkipReason = "not a regular file"
)

// Stats summarizes a traversal.
type Stats struct {
	Directories  int   // Directories visited, including the root.
	Files        int   // Files included.
	SkippedFiles int   // Files rejected by the filter.
	SkippedDirs  int   // Directories rejected by the filter, subtrees not counted.
	Binary       int   // Included files whose content was omitted as binary.
	Unreadable   int   // Included files that could not be read, plus inaccessible paths.
	TotalBytes   int64 // Sum of included file sizes.
}
