package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/foldtree/internal/rule"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a settings file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// DefaultFileName is looked up in the project root when no path is given
const DefaultFileName = ".foldtree.yaml"

// ErrUnsupportedFormat is returned for unknown settings file extensions
var ErrUnsupportedFormat = errors.New("settings: unsupported file format")

// FormatFor picks the encoding from the file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// fileModel is the on-disk shape. Absent keys keep their defaults; both the
// legacy keys (patterns, case_insensitive) and the rule-list keys are accepted.
type fileModel struct {
	FoldingEnabled   *bool      `yaml:"folding_enabled,omitempty" toml:"folding_enabled,omitempty"`
	FoldDirectories  *bool      `yaml:"fold_directories,omitempty" toml:"fold_directories,omitempty"`
	MatchDirectories *bool      `yaml:"match_directories,omitempty" toml:"match_directories,omitempty"`
	FoldIgnoredFiles *bool      `yaml:"fold_ignored_files,omitempty" toml:"fold_ignored_files,omitempty"`
	HideEmptyGroups  *bool      `yaml:"hide_empty_groups,omitempty" toml:"hide_empty_groups,omitempty"`
	HideAllGroups    *bool      `yaml:"hide_all_groups,omitempty" toml:"hide_all_groups,omitempty"`
	CaseSensitive    *bool      `yaml:"case_sensitive,omitempty" toml:"case_sensitive,omitempty"`
	CaseInsensitive  *bool      `yaml:"case_insensitive,omitempty" toml:"case_insensitive,omitempty"`
	SortRules        *bool      `yaml:"sort_rules,omitempty" toml:"sort_rules,omitempty"`
	Patterns         *string    `yaml:"patterns,omitempty" toml:"patterns,omitempty"`
	Rules            []fileRule `yaml:"rules,omitempty" toml:"rules,omitempty"`
}

type fileRule struct {
	Name     string     `yaml:"name" toml:"name"`
	Patterns string     `yaml:"patterns" toml:"patterns"`
	Color    rule.Color `yaml:"color,omitempty" toml:"color,omitempty"`
	Enabled  *bool      `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
}

// Load reads and validates a settings file. A missing file yields an error
// wrapping os.ErrNotExist; callers decide whether defaults apply.
func Load(path string) (Settings, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Settings{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: error reading %s: %w", path, err)
	}

	return Parse(data, format)
}

// Parse decodes settings from raw bytes
func Parse(data []byte, format Format) (Settings, error) {
	var model fileModel
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &model); err != nil {
			return Settings{}, fmt.Errorf("settings: error parsing yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &model); err != nil {
			return Settings{}, fmt.Errorf("settings: error parsing toml: %w", err)
		}
	default:
		return Settings{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	s := model.normalize()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (m fileModel) normalize() Settings {
	s := Default()

	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.FoldingEnabled, m.FoldingEnabled)
	set(&s.FoldDirectories, m.MatchDirectories)
	set(&s.FoldDirectories, m.FoldDirectories)
	set(&s.FoldIgnoredFiles, m.FoldIgnoredFiles)
	set(&s.HideEmptyGroups, m.HideEmptyGroups)
	set(&s.HideAllGroups, m.HideAllGroups)
	set(&s.SortRules, m.SortRules)

	// case_sensitive wins over the legacy inverse flag
	switch {
	case m.CaseSensitive != nil:
		s.CaseSensitive = *m.CaseSensitive
	case m.CaseInsensitive != nil:
		s.CaseSensitive = !*m.CaseInsensitive
	}

	if m.Rules == nil && m.Patterns == nil {
		return s
	}

	s.Rules = nil
	if m.Rules != nil {
		for _, fr := range m.Rules {
			r := rule.New(fr.Name, fr.Patterns, fr.Color)
			if fr.Enabled != nil {
				r.Enabled = *fr.Enabled
			}
			s.Rules = append(s.Rules, r)
		}
	}
	if m.Patterns != nil {
		s.Rules = appendLegacy(s.Rules, *m.Patterns)
	}
	return s
}

// appendLegacy adds the implicit rule unless a rule already uses its name
func appendLegacy(rules []rule.Rule, patterns string) []rule.Rule {
	for _, r := range rules {
		if r.Name == rule.LegacyName {
			return rules
		}
	}
	return append(rules, rule.FromLegacy(patterns)...)
}

func (s Settings) model() fileModel {
	b := func(v bool) *bool { return &v }

	rules := make([]fileRule, 0, len(s.Rules))
	for _, r := range s.Rules {
		rules = append(rules, fileRule{Name: r.Name, Patterns: r.Patterns, Color: r.Color, Enabled: b(r.Enabled)})
	}

	m := fileModel{
		FoldingEnabled:   b(s.FoldingEnabled),
		FoldDirectories:  b(s.FoldDirectories),
		FoldIgnoredFiles: b(s.FoldIgnoredFiles),
		HideEmptyGroups:  b(s.HideEmptyGroups),
		HideAllGroups:    b(s.HideAllGroups),
		CaseSensitive:    b(s.CaseSensitive),
		SortRules:        b(s.SortRules),
		Rules:            rules,
	}
	if len(rules) == 0 {
		// keeps an explicitly empty rule list from reloading as the defaults
		empty := ""
		m.Patterns = &empty
	}
	return m
}

// Marshal encodes settings in the rule-list shape
func Marshal(s Settings, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(s.model())
	case FormatTOML:
		return toml.Marshal(s.model())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes settings to path, creating parent directories
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	data, err := Marshal(s, format)
	if err != nil {
		return fmt.Errorf("settings: failed to marshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("settings: failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("settings: failed to write %s: %w", path, err)
	}
	return nil
}
