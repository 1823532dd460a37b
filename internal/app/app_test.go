package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/foldtree/internal/config"
	"github.com/bethropolis/foldtree/internal/logger"
	"github.com/bethropolis/foldtree/internal/settings"
	"github.com/bethropolis/foldtree/internal/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectSettings = `
fold_ignored_files: true
rules:
  - name: Logs
    patterns: "*.log"
  - name: Docs
    patterns: "README* LICENSE"
    color: "#2D4B2D"
`

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func newTestApp(t *testing.T, cfg *config.Config) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, logs bytes.Buffer
	a, err := newApp(cfg, logger.New(&logs, false, false), &out)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, &out, &logs
}

func testConfig(root string) *config.Config {
	cfg := config.New()
	cfg.RootDir = root
	cfg.Quiet = true
	return cfg
}

func TestRunFoldsTree(t *testing.T) {
	root := writeProject(t, map[string]string{
		".foldtree.yaml": projectSettings,
		".gitignore":     "debug.log\n",
		"README.md":      "",
		"LICENSE":        "",
		"main.go":        "",
		"app.log":        "",
		"debug.log":      "",
		"src/util.go":    "",
		"src/trace.log":  "",
	})

	a, out, _ := newTestApp(t, testConfig(root))
	require.NoError(t, a.Run(context.Background()))

	want := strings.Join([]string{
		filepath.Base(root) + "/",
		"├── src/",
		"│   ├── util.go",
		"│   └── Logs (1)",
		"│       └── trace.log",
		"├── .foldtree.yaml",
		"├── .gitignore",
		"├── main.go",
		"├── Logs (1)",
		"│   └── app.log",
		"├── Docs (2)",
		"│   ├── LICENSE",
		"│   └── README.md",
		"└── Ignored (1)",
		"    └── debug.log",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestRunWithoutSettingsUsesDefaults(t *testing.T) {
	root := writeProject(t, map[string]string{
		"README.md": "",
		".env":      "",
		"main.go":   "",
	})

	a, out, _ := newTestApp(t, testConfig(root))
	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), "Dotfiles (1)")
	assert.Contains(t, out.String(), "Docs (1)")
}

func TestRunWithUnreadableExplicitSettingsIsIdentity(t *testing.T) {
	root := writeProject(t, map[string]string{"README.md": "", "main.go": ""})

	cfg := testConfig(root)
	cfg.SettingsFile = filepath.Join(root, "absent.yaml")
	a, out, logs := newTestApp(t, cfg)
	require.NoError(t, a.Run(context.Background()))

	assert.NotContains(t, out.String(), "Docs")
	assert.Contains(t, out.String(), "README.md")
	assert.Contains(t, logs.String(), "folding disabled")
}

func TestRunCollapsedWithOpenPath(t *testing.T) {
	root := writeProject(t, map[string]string{
		".foldtree.yaml": projectSettings,
		"README.md":      "",
		"app.log":        "",
	})

	cfg := testConfig(root)
	cfg.Collapse = true
	cfg.OpenPath = "app.log"
	cfg.ShowSummary = true
	a, out, _ := newTestApp(t, cfg)
	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), "Docs (1) [+]")
	assert.Contains(t, out.String(), "Logs (1)\n│   └── app.log")
	assert.Contains(t, out.String(), "Groups:      2")
}

func TestRunJSON(t *testing.T) {
	root := writeProject(t, map[string]string{".foldtree.yaml": projectSettings, "app.log": ""})

	cfg := testConfig(root)
	cfg.JSONOutput = true
	a, out, _ := newTestApp(t, cfg)
	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), `"kind": "group"`)
	assert.Contains(t, out.String(), `"name": "Logs"`)
}

func TestListRulesAndInit(t *testing.T) {
	root := writeProject(t, map[string]string{"main.go": ""})

	a, out, _ := newTestApp(t, testConfig(root))
	require.NoError(t, a.ListRules())
	assert.Contains(t, out.String(), "Dotfiles")
	assert.Contains(t, out.String(), "README*")

	require.NoError(t, a.Init(false))
	s, err := settings.Load(filepath.Join(root, settings.DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), s)

	assert.ErrorIs(t, a.Init(false), ErrSettingsExist)
	assert.NoError(t, a.Init(true))
}

func TestHandleBatch(t *testing.T) {
	root := writeProject(t, map[string]string{".foldtree.yaml": projectSettings})
	a, _, _ := newTestApp(t, testConfig(root))

	requests := 0
	request := func() { requests++ }

	a.handleBatch(watch.Batch{Status: true}, request)
	assert.Equal(t, 1, requests, "status changes refresh while ignored files fold")

	noIgnored := a.store.Current()
	noIgnored.FoldIgnoredFiles = false
	a.store.Commit(noIgnored)
	a.handleBatch(watch.Batch{Status: true}, request)
	assert.Equal(t, 1, requests)

	a.handleBatch(watch.Batch{Content: true}, request)
	assert.Equal(t, 2, requests)

	// the file on disk still folds ignored files, so reloading it is a change
	changed := make(chan struct{}, 1)
	unsubscribe := a.store.Subscribe(func(settings.Settings) { changed <- struct{}{} })
	defer unsubscribe()
	a.handleBatch(watch.Batch{Settings: true}, request)
	assert.Len(t, changed, 1)
	assert.True(t, a.store.Current().FoldIgnoredFiles)
}

func TestHandleBatchRefreshesNewFiles(t *testing.T) {
	root := writeProject(t, map[string]string{"main.go": ""})
	a, _, _ := newTestApp(t, testConfig(root))

	noIgnored := a.store.Current()
	noIgnored.FoldIgnoredFiles = false
	a.store.Commit(noIgnored)

	requests := 0
	request := func() { requests++ }

	// a new .gitignore appears in the listing even when ignored files do not fold
	a.handleBatch(watch.Batch{Status: true, Content: true}, request)
	assert.Equal(t, 1, requests)

	// a new settings file with the current settings commits nothing, yet is listed
	path := filepath.Join(root, settings.DefaultFileName)
	require.NoError(t, settings.Save(path, a.store.Current()))
	a.handleBatch(watch.Batch{Settings: true, Content: true}, request)
	assert.Equal(t, 2, requests)
	assert.False(t, a.store.Current().FoldIgnoredFiles)
}

func TestRootCommand(t *testing.T) {
	root := writeProject(t, map[string]string{"README.md": "", "main.go": ""})
	output := filepath.Join(t.TempDir(), "tree.md")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--markdown", "--quiet", "--output", output, root})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- **Docs (1)**")
	assert.Contains(t, string(data), "  - `README.md`")
}
