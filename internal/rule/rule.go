// Package rule defines named folding rules and their display colors
package rule

import (
	"sort"
	"strings"
)

// LegacyName is the name of the implicit rule built from a flat pattern string
const LegacyName = "Folded"

// Rule is a named pattern set. Values are immutable by convention; copy before changing.
type Rule struct {
	Name     string `yaml:"name" toml:"name" json:"name"`
	Patterns string `yaml:"patterns" toml:"patterns" json:"patterns"`
	Color    Color  `yaml:"color,omitempty" toml:"color,omitempty" json:"color,omitempty"`
	Enabled  bool   `yaml:"enabled" toml:"enabled" json:"enabled"`
}

// New returns an enabled rule
func New(name, patterns string, color Color) Rule {
	return Rule{Name: name, Patterns: patterns, Color: color, Enabled: true}
}

// FromLegacy converts a flat pattern string to the single implicit rule.
// An empty or blank string yields no rule.
func FromLegacy(patterns string) []Rule {
	if strings.TrimSpace(patterns) == "" {
		return nil
	}
	return []Rule{New(LegacyName, patterns, "")}
}

// Active returns enabled rules in their given order, dropping later duplicates by name
func Active(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if !r.Enabled {
			continue
		}
		if _, dup := seen[r.Name]; dup {
			continue
		}
		seen[r.Name] = struct{}{}
		out = append(out, r)
	}
	return out
}

// SortedByName returns a copy of rules ordered lexicographically by name
func SortedByName(rules []Rule) []Rule {
	out := append([]Rule(nil), rules...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns the rule names in order
func Names(rules []Rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}
