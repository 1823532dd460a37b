// Package printer renders a folded project tree
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/bethropolis/foldtree/internal/ignore"
	"github.com/bethropolis/foldtree/internal/rule"
	"github.com/bethropolis/foldtree/internal/tree"
	"github.com/fatih/color"
)

// Folder returns the child listing shown for a directory node
type Folder interface {
	Fold(parent tree.Node) []tree.Node
}

// FolderFunc adapts a function to Folder
type FolderFunc func(parent tree.Node) []tree.Node

// Fold implements Folder
func (f FolderFunc) Fold(parent tree.Node) []tree.Node { return f(parent) }

type plainFolder struct{}

func (plainFolder) Fold(parent tree.Node) []tree.Node { return parent.Children() }

// Printer handles output formatting and writing to the configured output destination
type Printer struct {
	output         io.Writer
	count          atomic.Int64
	folder         Folder
	useColors      bool
	jsonOutput     bool
	markdownOutput bool
	collapse       bool
	openPath       string
}

// New creates a new Printer with default settings
func New() *Printer {
	return &Printer{
		output:    os.Stdout,
		folder:    plainFolder{},
		useColors: true,
	}
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithFolder sets how directory listings are folded. nil prints them unfolded.
func (p *Printer) WithFolder(f Folder) *Printer {
	if f == nil {
		f = plainFolder{}
	}
	p.folder = f
	return p
}

// WithColors enables or disables colored output
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithJSON enables JSON output mode
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// WithMarkdown enables Markdown output mode
func (p *Printer) WithMarkdown(enabled bool) *Printer {
	p.markdownOutput = enabled
	return p
}

// WithCollapse renders groups collapsed, except those holding the open path
func (p *Printer) WithCollapse(enabled bool, openPath string) *Printer {
	p.collapse = enabled
	p.openPath = openPath
	return p
}

// JSONNode is one node of the JSON output
type JSONNode struct {
	Name     string      `json:"name"`
	Kind     string      `json:"kind"`
	Path     string      `json:"path,omitempty"`
	Status   string      `json:"status,omitempty"`
	Rule     string      `json:"rule,omitempty"`
	Color    string      `json:"color,omitempty"`
	Count    *int        `json:"count,omitempty"`
	Expanded *bool       `json:"expanded,omitempty"`
	Children []*JSONNode `json:"children,omitempty"`
}

// Print renders the tree rooted at root
func (p *Printer) Print(root tree.Node) error {
	if root == nil {
		return fmt.Errorf("printer: nil root")
	}

	switch {
	case p.jsonOutput:
		data, err := json.MarshalIndent(p.jsonNode(root), "", "  ")
		if err != nil {
			return fmt.Errorf("printer: error marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(p.output, "%s\n", data)
		return err
	case p.markdownOutput:
		fmt.Fprintf(p.output, "# %s\n\n", root.Name())
		p.count.Add(1)
		p.markdown(p.children(root), 0)
		return nil
	default:
		st := p.styles(rule.Color(""))
		fmt.Fprintln(p.output, st.dir.Sprint(root.Name()+"/"))
		p.count.Add(1)
		p.plain(p.children(root), "", rule.Color(""))
		return nil
	}
}

// GetCount returns the number of rendered lines (nodes)
func (p *Printer) GetCount() int64 {
	return p.count.Load()
}

func (p *Printer) children(n tree.Node) []tree.Node {
	switch n.Kind() {
	case tree.KindDirectory:
		return p.folder.Fold(n)
	default:
		return n.Children()
	}
}

func (p *Printer) expanded(g *tree.GroupNode) bool {
	if !p.collapse {
		return true
	}
	return p.openPath != "" && g.Contains(p.openPath)
}

type styles struct {
	dir     *color.Color
	file    *color.Color
	ignored *color.Color
	group   *color.Color
	muted   *color.Color
}

// styles builds the palette; plain files take tint when it is set
func (p *Printer) styles(tint rule.Color) styles {
	st := styles{
		dir:     color.New(color.FgBlue, color.Bold),
		file:    color.New(color.Reset),
		ignored: color.New(color.FgHiBlack),
		group:   color.New(color.Bold),
		muted:   color.New(color.FgHiBlack, color.Italic),
	}
	if r, g, b, ok := tint.RGB(); ok {
		st.file = color.RGB(int(r), int(g), int(b))
	}
	for _, c := range []*color.Color{st.dir, st.file, st.ignored, st.group, st.muted} {
		if p.useColors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return st
}

func (p *Printer) groupStyle(g *tree.GroupNode, st styles) *color.Color {
	if g.IsIgnoredGroup() {
		return st.muted
	}
	c := st.group
	if r, gr, b, ok := g.BackgroundColor().RGB(); ok {
		c = color.New(color.Bold).AddBgRGB(int(r), int(gr), int(b))
		if p.useColors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return c
}

func (p *Printer) label(n tree.Node, st styles) string {
	switch n.Kind() {
	case tree.KindDirectory:
		if isIgnored(n) {
			return st.ignored.Sprint(n.Name() + "/")
		}
		return st.dir.Sprint(n.Name() + "/")
	case tree.KindGroup:
		g := n.(*tree.GroupNode)
		text := g.DisplayText()
		if !p.expanded(g) {
			text += " [+]"
		}
		return p.groupStyle(g, st).Sprint(text)
	default:
		if isIgnored(n) {
			return st.ignored.Sprint(n.Name())
		}
		return st.file.Sprint(n.Name())
	}
}

func (p *Printer) plain(nodes []tree.Node, prefix string, tint rule.Color) {
	st := p.styles(tint)
	for i, n := range nodes {
		last := i == len(nodes)-1
		connector, indent := "├── ", "│   "
		if last {
			connector, indent = "└── ", "    "
		}

		fmt.Fprintf(p.output, "%s%s%s\n", prefix, connector, p.label(n, st))
		p.count.Add(1)

		childTint := tint
		if g, ok := n.(*tree.GroupNode); ok {
			if !p.expanded(g) {
				continue
			}
			childTint = g.Rule().Color
			if g.IsIgnoredGroup() {
				childTint = ""
			}
		}
		p.plain(p.children(n), prefix+indent, childTint)
	}
}

func (p *Printer) markdown(nodes []tree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		switch n.Kind() {
		case tree.KindGroup:
			g := n.(*tree.GroupNode)
			fmt.Fprintf(p.output, "%s- **%s**\n", indent, g.DisplayText())
			p.count.Add(1)
			if p.expanded(g) {
				p.markdown(p.children(n), depth+1)
			}
		case tree.KindDirectory:
			fmt.Fprintf(p.output, "%s- `%s/`\n", indent, n.Name())
			p.count.Add(1)
			p.markdown(p.children(n), depth+1)
		default:
			fmt.Fprintf(p.output, "%s- `%s`\n", indent, n.Name())
			p.count.Add(1)
		}
	}
}

func (p *Printer) jsonNode(n tree.Node) *JSONNode {
	p.count.Add(1)
	out := &JSONNode{Name: n.Name(), Kind: n.Kind().String()}

	switch v := n.(type) {
	case *tree.GroupNode:
		out.Name = v.Title()
		out.Rule = v.Rule().Name
		out.Color = v.BackgroundColor().String()
		count := v.Len()
		out.Count = &count
		expanded := p.expanded(v)
		out.Expanded = &expanded
		if !expanded {
			return out
		}
	case *tree.DirNode:
		out.Path = v.Path()
		out.Status = v.StatusTag()
	case *tree.FileNode:
		out.Path = v.Path()
		out.Status = v.StatusTag()
	}

	for _, c := range p.children(n) {
		out.Children = append(out.Children, p.jsonNode(c))
	}
	return out
}

func isIgnored(n tree.Node) bool {
	return ignore.IsIgnored(n.StatusTag())
}
