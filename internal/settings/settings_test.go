package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/foldtree/internal/rule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyYAML = `
folding_enabled: true
fold_directories: false
hide_empty_groups: false
case_insensitive: false
patterns: "*.log build"
`

const richYAML = `
fold_ignored_files: false
case_sensitive: true
sort_rules: true
rules:
  - name: Logs
    patterns: "*.log"
    color: "#FF0000"
  - name: Build
    patterns: "build dist"
    enabled: false
  - name: Archives
    patterns: "*.zip *.tar.gz"
`

const richTOML = `
hide_all_groups = true
match_directories = false

[[rules]]
name = "Logs"
patterns = "*.log"
color = "#00ff00"
`

func TestParseLegacyShape(t *testing.T) {
	s, err := Parse([]byte(legacyYAML), FormatYAML)
	require.NoError(t, err)

	assert.True(t, s.FoldingEnabled)
	assert.False(t, s.FoldDirectories)
	assert.False(t, s.HideEmptyGroups)
	assert.True(t, s.CaseSensitive, "case_insensitive: false means case sensitive")
	assert.True(t, s.FoldIgnoredFiles, "unset keys keep defaults")

	require.Len(t, s.Rules, 1)
	assert.Equal(t, rule.LegacyName, s.Rules[0].Name)
	assert.Equal(t, "*.log build", s.Rules[0].Patterns)
}

func TestParseRichShape(t *testing.T) {
	s, err := Parse([]byte(richYAML), FormatYAML)
	require.NoError(t, err)

	assert.False(t, s.FoldIgnoredFiles)
	assert.True(t, s.CaseSensitive)
	require.Len(t, s.Rules, 3)
	assert.True(t, s.Rules[0].Enabled)
	assert.False(t, s.Rules[1].Enabled)
	assert.Equal(t, rule.Color("#FF0000"), s.Rules[0].Color)

	assert.Equal(t, []string{"Archives", "Build", "Logs"}, rule.Names(s.OrderedRules()))
	assert.Equal(t, []string{"Logs", "Build", "Archives"}, rule.Names(s.Rules))
}

func TestParseTOML(t *testing.T) {
	s, err := Parse([]byte(richTOML), FormatTOML)
	require.NoError(t, err)

	assert.True(t, s.HideAllGroups)
	assert.False(t, s.FoldDirectories)
	require.Len(t, s.Rules, 1)
	assert.Equal(t, "Logs", s.Rules[0].Name)
}

func TestParseMixedShapes(t *testing.T) {
	data := `
case_sensitive: false
case_insensitive: false
patterns: "*.tmp"
rules:
  - name: Logs
    patterns: "*.log"
`
	s, err := Parse([]byte(data), FormatYAML)
	require.NoError(t, err)

	assert.False(t, s.CaseSensitive, "case_sensitive wins")
	assert.Equal(t, []string{"Logs", rule.LegacyName}, rule.Names(s.Rules))
}

func TestParseDefaultsWhenNoRules(t *testing.T) {
	s, err := Parse([]byte("hide_all_groups: true\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, rule.Names(DefaultRules()), rule.Names(s.Rules))

	s, err = Parse([]byte("rules: []\n"), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, s.Rules)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("rules:\n  - name: A\n    patterns: x\n  - name: A\n    patterns: y\n"), FormatYAML)
	assert.ErrorContains(t, err, "already used")

	_, err = Parse([]byte("rules:\n  - patterns: x\n"), FormatYAML)
	assert.ErrorContains(t, err, "name is required")

	_, err = Parse([]byte("rules:\n  - name: A\n    color: blue\n"), FormatYAML)
	assert.ErrorContains(t, err, "invalid color")

	_, err = Parse([]byte("folding_enabled: [\n"), FormatYAML)
	assert.Error(t, err)

	_, err = Parse(nil, Format("ini"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("x/.foldtree.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFor("settings.toml")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	_, err = FormatFor("settings.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"s.yaml", "s.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			want := Default()
			want.CaseSensitive = true
			want.Rules = append(want.Rules, rule.Rule{Name: "Off", Patterns: "*.bak", Enabled: false})

			require.NoError(t, Save(path, want))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSaveEmptyRulesStaysEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	s := Default()
	s.Rules = nil

	require.NoError(t, Save(path, s))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, got.Rules)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSnapshotAndDisabled(t *testing.T) {
	cfg := Default().Snapshot()
	assert.True(t, cfg.FoldingEnabled)
	assert.True(t, cfg.FoldDirectories)
	assert.False(t, cfg.CaseSensitive)

	assert.False(t, Disabled().Snapshot().FoldingEnabled)
}

func TestCloneIsIndependent(t *testing.T) {
	s := Default()
	c := s.Clone()
	c.Rules[0].Name = "changed"
	assert.NotEqual(t, "changed", s.Rules[0].Name)
}
