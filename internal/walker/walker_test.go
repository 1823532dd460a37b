package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/foldtree/internal/ignore"
	"github.com/bethropolis/foldtree/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func childNames(n tree.Node) []string {
	var out []string
	for _, c := range n.Children() {
		out = append(out, c.Name())
	}
	return out
}

func find(t *testing.T, n tree.Node, name string) tree.Node {
	t.Helper()
	for _, c := range n.Children() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("%s has no child %q", n.Name(), name)
	return nil
}

func TestBuildOrdersDirectoriesFirst(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.txt":      "",
		"a.txt":      "",
		"src/main.c": "",
		"docs/x.md":  "",
	})

	node, skipped, err := Build(root, nil)
	require.NoError(t, err)
	assert.Empty(t, skipped)

	assert.Equal(t, []string{"docs", "src", "a.txt", "b.txt"}, childNames(node))
	assert.Equal(t, tree.KindDirectory, node.Kind())
	assert.Equal(t, ignore.StatusNotChanged, node.StatusTag())
	assert.Equal(t, []string{"main.c"}, childNames(find(t, node, "src")))
}

func TestBuildTagsIgnoredAndSkipsTheirContents(t *testing.T) {
	root := writeTree(t, map[string]string{
		".gitignore":   "*.log\nbuild/\n",
		"app.log":      "",
		"main.go":      "",
		"build/out.o":  "",
		"build/sub/x":  "",
		"vendor/lib.c": "",
	})
	provider, err := ignore.New(root)
	require.NoError(t, err)

	node, skipped, err := Build(root, provider)
	require.NoError(t, err)

	assert.Equal(t, ignore.StatusIgnored, find(t, node, "app.log").StatusTag())
	assert.Equal(t, ignore.StatusNotChanged, find(t, node, "main.go").StatusTag())

	build := find(t, node, "build")
	assert.Equal(t, ignore.StatusIgnored, build.StatusTag())
	assert.Empty(t, build.Children())
	assert.Contains(t, skipped, SkippedItem{Path: "build", Reason: ReasonIgnoredDir, IsDir: true})

	node, _, err = Build(root, provider, WithDescendIgnored(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"sub", "out.o"}, childNames(find(t, node, "build")))
}

func TestBuildRespectsMaxDepth(t *testing.T) {
	root := writeTree(t, map[string]string{
		"top.txt":     "",
		"a/mid.txt":   "",
		"a/b/low.txt": "",
	})

	node, skipped, err := Build(root, nil, WithMaxDepth(1))
	require.NoError(t, err)
	assert.Empty(t, find(t, node, "a").Children())
	assert.Contains(t, skipped, SkippedItem{Path: "a", Reason: ReasonDepthLimit, IsDir: true})

	node, _, err = Build(root, nil, WithMaxDepth(2))
	require.NoError(t, err)
	a := find(t, node, "a")
	assert.Equal(t, []string{"b", "mid.txt"}, childNames(a))
	assert.Empty(t, find(t, a, "b").Children())
}

func TestBuildRejectsFilesAndMissingRoots(t *testing.T) {
	root := writeTree(t, map[string]string{"f.txt": ""})

	_, _, err := Build(filepath.Join(root, "f.txt"), nil)
	assert.ErrorContains(t, err, "not a directory")

	_, _, err = Build(filepath.Join(root, "absent"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a/b.txt": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, skipped, err := Build(root, nil, WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, skipped, 1)
	assert.Equal(t, ReasonSkippedCancelled, skipped[0].Reason)
}

func TestNodePathsAreAbsolute(t *testing.T) {
	root := writeTree(t, map[string]string{"src/main.go": ""})

	node, _, err := Build(root, nil)
	require.NoError(t, err)

	abs, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.True(t, node.ContainsLeaf(filepath.Join(abs, "src", "main.go")))
}
