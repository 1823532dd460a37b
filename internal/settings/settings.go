// Package settings holds the persisted folding settings and the live store
// the host reads snapshots from.
package settings

import (
	"fmt"

	"github.com/bethropolis/foldtree/internal/folding"
	"github.com/bethropolis/foldtree/internal/rule"
)

// Settings is the normalized settings value. Both persisted shapes (a flat
// pattern string or a rule list) load into it.
type Settings struct {
	FoldingEnabled   bool
	FoldDirectories  bool
	FoldIgnoredFiles bool
	HideEmptyGroups  bool
	HideAllGroups    bool
	CaseSensitive    bool
	// SortRules orders rules by name instead of the order they were written in
	SortRules bool
	Rules     []rule.Rule
}

// DefaultRules are used when a settings file names no rules at all
func DefaultRules() []rule.Rule {
	return []rule.Rule{
		rule.New("Dotfiles", ".*", "#3C3F41"),
		rule.New("Docs", "README* LICENSE* CHANGELOG* CONTRIBUTING* CODE_OF_CONDUCT*", "#2D4B2D"),
	}
}

// Default returns the settings used when no file exists
func Default() Settings {
	return Settings{
		FoldingEnabled:   true,
		FoldDirectories:  true,
		FoldIgnoredFiles: true,
		HideEmptyGroups:  true,
		HideAllGroups:    false,
		CaseSensitive:    false,
		Rules:            DefaultRules(),
	}
}

// Disabled returns settings that turn grouping into an identity transform
func Disabled() Settings {
	return Settings{}
}

// Clone returns a deep copy
func (s Settings) Clone() Settings {
	s.Rules = append([]rule.Rule(nil), s.Rules...)
	return s
}

// Snapshot returns the engine configuration for one pass
func (s Settings) Snapshot() folding.Config {
	return folding.Config{
		FoldingEnabled:   s.FoldingEnabled,
		FoldDirectories:  s.FoldDirectories,
		FoldIgnoredFiles: s.FoldIgnoredFiles,
		HideEmptyGroups:  s.HideEmptyGroups,
		HideAllGroups:    s.HideAllGroups,
		CaseSensitive:    s.CaseSensitive,
	}
}

// OrderedRules returns a copy of the rules in evaluation order
func (s Settings) OrderedRules() []rule.Rule {
	if s.SortRules {
		return rule.SortedByName(s.Rules)
	}
	return append([]rule.Rule(nil), s.Rules...)
}

// Validate checks rule names and colors
func (s Settings) Validate() error {
	seen := make(map[string]int, len(s.Rules))
	for i, r := range s.Rules {
		if r.Name == "" {
			return fmt.Errorf("settings: rule %d: name is required", i)
		}
		if j, dup := seen[r.Name]; dup {
			return fmt.Errorf("settings: rule %d: name %q already used by rule %d", i, r.Name, j)
		}
		seen[r.Name] = i
		if err := r.Color.Validate(); err != nil {
			return fmt.Errorf("settings: rule %q: %w", r.Name, err)
		}
	}
	return nil
}
