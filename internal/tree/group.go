package tree

import (
	"fmt"
	"strings"

	"github.com/bethropolis/foldtree/internal/rule"
)

const (
	// IgnoredGroupName titles the cross-rule group of ignored nodes
	IgnoredGroupName = "Ignored"

	valuePrefix = "Foldable: "
)

// GroupNode is a synthetic container replacing the siblings it owns.
// It is built once per refresh and never changed.
type GroupNode struct {
	rule     rule.Rule
	children []Node
	ignored  bool
}

// NewGroup creates the group for a rule. The children slice is copied.
func NewGroup(r rule.Rule, children []Node) *GroupNode {
	return &GroupNode{rule: r, children: append([]Node(nil), children...)}
}

// NewIgnoredGroup creates the group holding ignored nodes of every rule
func NewIgnoredGroup(children []Node) *GroupNode {
	g := NewGroup(rule.Rule{Name: IgnoredGroupName, Color: rule.Muted, Enabled: true}, children)
	g.ignored = true
	return g
}

// Name is the group's stable value, unique per rule within one directory
func (g *GroupNode) Name() string { return valuePrefix + g.rule.Name }

func (g *GroupNode) StatusTag() string { return "" }
func (g *GroupNode) Kind() Kind        { return KindGroup }

// Children returns the owned nodes, identical on every call
func (g *GroupNode) Children() []Node {
	return append([]Node(nil), g.children...)
}

// Len returns the number of owned nodes
func (g *GroupNode) Len() int { return len(g.children) }

// Rule returns the rule the group was built for (a pseudo-rule for the ignored group)
func (g *GroupNode) Rule() rule.Rule { return g.rule }

// Title is the rule name shown to the user
func (g *GroupNode) Title() string { return g.rule.Name }

// IsIgnoredGroup reports whether this is the ignored-files group
func (g *GroupNode) IsIgnoredGroup() bool { return g.ignored }

// DisplayText is "<name> (<count>)"
func (g *GroupNode) DisplayText() string {
	return fmt.Sprintf("%s (%d)", g.rule.Name, len(g.children))
}

// Tooltip joins the owned children's names; unnamed children are skipped
func (g *GroupNode) Tooltip() string {
	names := make([]string, 0, len(g.children))
	for _, c := range g.children {
		if c == nil {
			continue
		}
		if name := c.Name(); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// BackgroundColor is the rule's color, or rule.Muted for the ignored group
func (g *GroupNode) BackgroundColor() rule.Color {
	if g.ignored {
		return rule.Muted
	}
	return g.rule.Color
}

// Contains reports whether any owned node, at any depth, represents path
func (g *GroupNode) Contains(path string) bool {
	for _, c := range g.children {
		if c != nil && c.ContainsLeaf(path) {
			return true
		}
	}
	return false
}

// ContainsLeaf implements Node
func (g *GroupNode) ContainsLeaf(path string) bool { return g.Contains(path) }
