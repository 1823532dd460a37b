// Package tree defines the node capability the folding engine works on,
// the file-system backed node variants, and the synthetic group node.
package tree

import (
	"path/filepath"
	"strings"

	"github.com/bethropolis/foldtree/internal/ignore"
)

// Kind discriminates node variants
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "dir"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Node is the minimal capability the engine and the renderers need.
// Leaves are identified by their path.
type Node interface {
	Name() string
	StatusTag() string
	Kind() Kind
	Children() []Node
	ContainsLeaf(path string) bool
}

// FileNode is a regular file (or anything that is not a directory)
type FileNode struct {
	path   string
	status string
}

// NewFile creates a file node. An empty status becomes ignore.StatusNotChanged.
func NewFile(path, status string) *FileNode {
	return &FileNode{path: path, status: normalizeStatus(status)}
}

func (f *FileNode) Name() string                  { return baseName(f.path) }
func (f *FileNode) Path() string                  { return f.path }
func (f *FileNode) StatusTag() string             { return f.status }
func (f *FileNode) Kind() Kind                    { return KindFile }
func (f *FileNode) Children() []Node              { return nil }
func (f *FileNode) ContainsLeaf(path string) bool { return path != "" && path == f.path }

// DirNode is a directory with an already materialized child listing
type DirNode struct {
	path     string
	status   string
	children []Node
}

// NewDir creates a directory node owning children
func NewDir(path, status string, children []Node) *DirNode {
	return &DirNode{path: path, status: normalizeStatus(status), children: children}
}

func (d *DirNode) Name() string      { return baseName(d.path) }
func (d *DirNode) Path() string      { return d.path }
func (d *DirNode) StatusTag() string { return d.status }
func (d *DirNode) Kind() Kind        { return KindDirectory }

// Children returns a copy of the listing so callers cannot reorder the directory
func (d *DirNode) Children() []Node {
	return append([]Node(nil), d.children...)
}

// ContainsLeaf reports whether path is the directory itself or lies below it
func (d *DirNode) ContainsLeaf(path string) bool {
	if path == "" || d.path == "" {
		return false
	}
	if path == d.path {
		return true
	}
	prefix := strings.TrimSuffix(d.path, string(filepath.Separator)) + string(filepath.Separator)
	return strings.HasPrefix(path, prefix)
}

func baseName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

func normalizeStatus(status string) string {
	if status == "" {
		return ignore.StatusNotChanged
	}
	return status
}

// IsEligible reports whether a node may be claimed by a rule at all
func IsEligible(n Node, matchDirectories bool) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case KindFile:
		return true
	case KindDirectory:
		return matchDirectories
	default:
		return false
	}
}
