package markdown

import (
	"path"
	"sort"
	"strings"

	"dirparse/pkg/consolidate"
)

// node is a directory or file in the report tree.
type node struct {
	name     string
	relPath  string
	isDir    bool
	file     *consolidate.FileEntry
	children []*node
}

// hasFiles reports whether a file lies in n or anywhere below it.
func (n *node) hasFiles() bool {
	if !n.isDir {
		return true
	}
	for _, child := range n.children {
		if child.hasFiles() {
			return true
		}
	}
	return false
}

// files returns the direct file children of n.
func (n *node) files() []*node {
	var out []*node
	for _, child := range n.children {
		if !child.isDir {
			out = append(out, child)
		}
	}
	return out
}

// subdirs returns the direct directory children of n.
func (n *node) subdirs() []*node {
	var out []*node
	for _, child := range n.children {
		if child.isDir {
			out = append(out, child)
		}
	}
	return out
}

// prune removes directories without files below them, unless keepEmpty is set.
// The receiver itself is never removed.
func (n *node) prune(keepEmpty bool) {
	kept := n.children[:0]
	for _, child := range n.children {
		if child.isDir {
			child.prune(keepEmpty)
			if !keepEmpty && !child.hasFiles() {
				continue
			}
		}
		kept = append(kept, child)
	}
	n.children = kept
}

// sortTree orders children recursively: directories first, then files, by
// case-insensitive name with the exact name as tie-breaker.
func (n *node) sortTree() {
	sort.Slice(n.children, func(i, j int) bool {
		a, b := n.children[i], n.children[j]
		if a.isDir != b.isDir {
			return a.isDir
		}
		la, lb := strings.ToLower(a.name), strings.ToLower(b.name)
		if la != lb {
			return la < lb
		}
		return a.name < b.name
	})
	for _, child := range n.children {
		if child.isDir {
			child.sortTree()
		}
	}
}

// walkDirs calls fn for n and every directory below it in pre-order.
func (n *node) walkDirs(fn func(*node)) {
	fn(n)
	for _, child := range n.children {
		if child.isDir {
			child.walkDirs(fn)
		}
	}
}

// tree indexes directory nodes by relative path while entries are added.
type tree struct {
	root *node
	dirs map[string]*node
	seen map[string]struct{}
}

func newTree(rootName string) *tree {
	root := &node{name: rootName, relPath: ".", isDir: true}
	return &tree{
		root: root,
		dirs: map[string]*node{".": root},
		seen: map[string]struct{}{".": {}},
	}
}

// dir returns the node for relPath, creating it and any missing ancestors.
func (t *tree) dir(relPath string) *node {
	if relPath == "" {
		relPath = "."
	}
	if existing, ok := t.dirs[relPath]; ok {
		return existing
	}
	parent := t.dir(path.Dir(relPath))
	created := &node{name: path.Base(relPath), relPath: relPath, isDir: true}
	parent.children = append(parent.children, created)
	t.dirs[relPath] = created
	return created
}

// renderASCII draws the tree with box-drawing connectors.
func renderASCII(root *node) string {
	var builder strings.Builder
	builder.WriteString(escapeControl(root.name))
	builder.WriteString("/\n")
	renderChildren(&builder, root.children, "")
	return builder.String()
}

func renderChildren(builder *strings.Builder, children []*node, prefix string) {
	for i, child := range children {
		connector := "├── "
		extension := "│   "
		if i == len(children)-1 {
			connector = "└── "
			extension = "    "
		}

		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(escapeControl(child.name))
		if child.isDir {
			builder.WriteString("/")
		}
		builder.WriteString("\n")

		if child.isDir && len(child.children) > 0 {
			renderChildren(builder, child.children, prefix+extension)
		}
	}
}
