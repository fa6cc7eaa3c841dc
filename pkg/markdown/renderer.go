// Package markdown renders consolidated directory contents as a Markdown report.
package markdown

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"dirparse/pkg/consolidate"
)

const (
	reportTitle        = "# Directory Consolidation Report"
	timestampLayout    = "2006-01-02 15:04:05"
	maxListedExclusion = 20
	headerRuleWidth    = 50
	fileRuleWidth      = 40
)

// Metadata describes the run a report belongs to.
type Metadata struct {
	Root       string     // Absolute root directory shown in the header.
	Generated  time.Time  // Generation timestamp.
	ShowTokens bool       // Render token counts.
	Languages  *Languages // Fence tag table; nil uses DefaultLanguages.
}

// Renderer accumulates traversal entries and formats them into one document.
type Renderer struct {
	opts        consolidate.Options
	meta        Metadata
	languages   *Languages
	tree        *tree
	files       int
	totalBytes  int64
	totalTokens int
}

// NewRenderer returns a Renderer for one run.
func NewRenderer(opts consolidate.Options, meta Metadata) *Renderer {
	languages := meta.Languages
	if languages == nil {
		languages = DefaultLanguages()
	}
	rootName := "."
	if meta.Root != "" {
		rootName = filepath.Base(meta.Root)
	}
	return &Renderer{
		opts:      opts,
		meta:      meta,
		languages: languages,
		tree:      newTree(rootName),
	}
}

// Add records one traversal entry. Its signature matches consolidate.VisitFunc.
func (r *Renderer) Add(entry consolidate.Entry) error {
	relPath := entry.RelPath
	if relPath == "" {
		relPath = "."
	}

	if entry.IsDir {
		r.tree.dir(relPath)
		return nil
	}
	if entry.File == nil {
		return fmt.Errorf("entry %s has no file data", relPath)
	}
	if _, dup := r.tree.seen[relPath]; dup {
		return fmt.Errorf("duplicate entry for %s", relPath)
	}
	r.tree.seen[relPath] = struct{}{}

	parent := r.tree.dir(path.Dir(relPath))
	parent.children = append(parent.children, &node{
		name:    path.Base(relPath),
		relPath: relPath,
		file:    entry.File,
	})
	r.files++
	r.totalBytes += entry.File.Size
	r.totalTokens += entry.File.Tokens
	return nil
}

// Files returns the number of file entries added so far.
func (r *Renderer) Files() int {
	return r.files
}

// Tokens returns the total token count of the files added so far.
func (r *Renderer) Tokens() int {
	return r.totalTokens
}

// Render produces the complete Markdown document.
func (r *Renderer) Render() string {
	root := r.tree.root
	root.prune(r.opts.IncludeEmptyDirs)
	root.sortTree()

	var b strings.Builder
	r.writeHeader(&b)
	r.writeTree(&b, root)
	root.walkDirs(func(dir *node) {
		r.writeDirectory(&b, dir)
	})
	return b.String()
}

func (r *Renderer) writeHeader(b *strings.Builder) {
	b.WriteString(reportTitle + "\n\n")
	fmt.Fprintf(b, "**Directory:** %s\n\n", codeSpan(r.meta.Root))
	fmt.Fprintf(b, "**Generated:** %s\n\n", r.meta.Generated.Format(timestampLayout))
	fmt.Fprintf(b, "**Files:** %s totaling %s\n\n", formatCount(r.files), formatSize(r.totalBytes))
	if r.meta.ShowTokens {
		fmt.Fprintf(b, "**Tokens:** %s\n\n", formatCount(r.totalTokens))
	}

	exclusions := r.opts.Exclusions()
	b.WriteString("**Excluded extensions/patterns:**\n\n")
	if len(exclusions) == 0 {
		b.WriteString("- none\n")
	}
	for i, exclusion := range exclusions {
		if i == maxListedExclusion {
			fmt.Fprintf(b, "- ... and %d more\n", len(exclusions)-maxListedExclusion)
			break
		}
		fmt.Fprintf(b, "- %s\n", codeSpan(exclusion))
	}
	b.WriteString("\n" + strings.Repeat("=", headerRuleWidth) + "\n\n")
}

func (r *Renderer) writeTree(b *strings.Builder, root *node) {
	b.WriteString("## Directory Tree\n\n")
	b.WriteString("```text\n")
	b.WriteString(renderASCII(root))
	b.WriteString("```\n")
}

func (r *Renderer) writeDirectory(b *strings.Builder, dir *node) {
	fmt.Fprintf(b, "\n## Directory: %s\n\n", codeSpan(dir.relPath))

	files := dir.files()
	if len(files) == 0 {
		subdirs := dir.subdirs()
		if len(subdirs) == 0 {
			b.WriteString("*Empty directory*\n")
			return
		}
		b.WriteString("**Subdirectories:**\n\n")
		for _, sub := range subdirs {
			fmt.Fprintf(b, "- %s\n", codeSpan(sub.name))
		}
		return
	}

	for _, file := range files {
		r.writeFile(b, file.file)
	}
}

func (r *Renderer) writeFile(b *strings.Builder, file *consolidate.FileEntry) {
	fmt.Fprintf(b, "\n### File: %s\n\n", codeSpan(file.Name))
	fmt.Fprintf(b, "- **Path:** %s\n", codeSpan(file.RelPath))
	extension := file.Extension
	if extension == "" {
		extension = "(none)"
	}
	fmt.Fprintf(b, "- **Extension:** %s\n", codeSpan(extension))
	fmt.Fprintf(b, "- **Size:** %s\n", formatSize(file.Size))
	if r.meta.ShowTokens {
		fmt.Fprintf(b, "- **Tokens:** %s\n", formatCount(file.Tokens))
	}
	b.WriteString("\n")

	if file.HasContent() {
		fence := fenceFor(file.Content)
		b.WriteString(fence + r.languages.Tag(file.Name) + "\n")
		b.WriteString(file.Content)
		if !strings.HasSuffix(file.Content, "\n") && file.Content != "" {
			b.WriteString("\n")
		}
		b.WriteString(fence + "\n")
	} else {
		fmt.Fprintf(b, "*[%s]*\n", file.Omitted)
	}

	b.WriteString("\n" + strings.Repeat("-", fileRuleWidth) + "\n")
}
