package setup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/foldtree/internal/ignore"
	"github.com/bethropolis/foldtree/internal/settings"
	"github.com/bethropolis/foldtree/internal/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureWalker(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "keep.go"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "drop.tmp"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), nil, 0o644))

	var infos []string
	provider, opts, err := ConfigureWalker(WalkerConfig{
		RootDir:      root,
		HideHidden:   true,
		HideGit:      true,
		CustomIgnore: "*.tmp, ,build/",
		Context:      context.Background(),
	}, func(format string, args ...interface{}) { infos = append(infos, format) })
	require.NoError(t, err)
	assert.NotEmpty(t, infos)

	node, _, err := walker.Build(root, provider, opts...)
	require.NoError(t, err)

	tags := map[string]string{}
	for _, c := range node.Children() {
		tags[c.Name()] = c.StatusTag()
	}
	assert.Equal(t, ignore.StatusNotChanged, tags["keep.go"])
	assert.Equal(t, ignore.StatusIgnored, tags["drop.tmp"])
	assert.Equal(t, ignore.StatusProjectViewIgnored, tags[".env"])
}

func TestSettingsPath(t *testing.T) {
	root := t.TempDir()
	assert.Equal(t, "x.toml", SettingsPath("x.toml", root))
	assert.Equal(t, filepath.Join(root, settings.DefaultFileName), SettingsPath("", root))

	toml := filepath.Join(root, ".foldtree.toml")
	require.NoError(t, os.WriteFile(toml, []byte("hide_all_groups = true\n"), 0o644))
	assert.Equal(t, toml, SettingsPath("", root))
}

func TestLoadSettingsFallbacks(t *testing.T) {
	root := t.TempDir()
	missing := filepath.Join(root, settings.DefaultFileName)

	assert.Equal(t, settings.Default(), LoadSettings(missing, false, nil))
	assert.Equal(t, settings.Disabled(), LoadSettings(missing, true, nil))

	bad := filepath.Join(root, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules: [\n"), 0o644))
	assert.False(t, LoadSettings(bad, false, nil).FoldingEnabled)

	good := filepath.Join(root, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("patterns: \"*.log\"\n"), 0o644))
	s := LoadSettings(good, true, nil)
	assert.True(t, s.FoldingEnabled)
	require.Len(t, s.Rules, 1)
}
