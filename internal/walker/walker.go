package walker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/bethropolis/foldtree/internal/ignore"
	"github.com/bethropolis/foldtree/internal/tree"
)

// StatusSource computes status tags for paths relative to the walk root
type StatusSource interface {
	Status(relativePath string, isDir bool) string
}

type builder struct {
	root     string
	statuses StatusSource
	options  Options
	tracker  *SkippedTracker

	files   atomic.Int64
	dirs    atomic.Int64
	ignored atomic.Int64
	current atomic.Value // string
}

// Build lists rootDir into a directory node. Children are ordered
// directories first, then by name. Unreadable subdirectories are tracked and
// left empty; only a root failure or cancellation is returned as an error.
func Build(rootDir string, statuses StatusSource, opts ...Option) (*tree.DirNode, []SkippedItem, error) {
	startTime := time.Now()

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, nil, fmt.Errorf("walker: failed to get absolute path for '%s': %w", rootDir, err)
	}
	info, err := os.Stat(absRootDir)
	if err != nil {
		return nil, nil, fmt.Errorf("walker: cannot access '%s': %w", absRootDir, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("walker: '%s' is not a directory", absRootDir)
	}

	if statuses == nil {
		statuses = ignore.Disabled()
	}

	b := &builder{
		root:     absRootDir,
		statuses: statuses,
		options:  options,
		tracker:  NewSkippedTracker(16),
	}
	b.current.Store("")

	if options.ProgressFn != nil {
		progressCtx, progressCancel := context.WithCancel(context.Background())
		defer progressCancel()
		go b.reportProgress(progressCtx)
	}

	options.Logger.Debug("walker.Build started. Root: %s, MaxDepth: %d", absRootDir, options.MaxDepth)

	children, err := b.list(absRootDir, ".", 0)
	if err != nil {
		return nil, b.tracker.Items(), err
	}

	root := tree.NewDir(absRootDir, statuses.Status(".", true), children)
	options.Logger.Debug("walker: listed %d files and %d directories in %s",
		b.files.Load(), b.dirs.Load(), time.Since(startTime))

	return root, b.tracker.Items(), nil
}

func (b *builder) reportProgress(ctx context.Context) {
	ticker := time.NewTicker(300 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.options.ProgressFn(b.stats())
		}
	}
}

func (b *builder) stats() ProgressStats {
	current, _ := b.current.Load().(string)
	return ProgressStats{
		TotalFiles:   b.files.Load(),
		TotalDirs:    b.dirs.Load(),
		IgnoredNodes: b.ignored.Load(),
		CurrentDir:   current,
	}
}

// list reads one directory. depth is the level of absPath (root = 0).
func (b *builder) list(absPath, relPath string, depth int) ([]tree.Node, error) {
	if err := b.options.Context.Err(); err != nil {
		b.tracker.Track(relPath, ReasonSkippedCancelled, true)
		return nil, err
	}
	b.current.Store(relPath)

	entries, err := os.ReadDir(absPath)
	if err != nil {
		reason := ReasonSkippedReadError
		if os.IsPermission(err) {
			reason = ReasonSkippedPermError
		}
		b.options.Logger.Warn("walker: cannot read %q: %v", relPath, err)
		b.tracker.Track(relPath, reason, true)
		if depth == 0 {
			return nil, fmt.Errorf("walker: failed to read '%s': %w", absPath, err)
		}
		return nil, nil
	}

	children := make([]tree.Node, 0, len(entries))
	for _, entry := range entries {
		childAbs := filepath.Join(absPath, entry.Name())
		childRel := filepath.Join(relPath, entry.Name())
		isDir := entry.IsDir()
		status := b.statuses.Status(childRel, isDir)
		if ignore.IsIgnored(status) {
			b.ignored.Add(1)
		}

		if !isDir {
			b.files.Add(1)
			children = append(children, tree.NewFile(childAbs, status))
			continue
		}

		b.dirs.Add(1)
		var grandchildren []tree.Node
		switch {
		case ignore.IsIgnored(status) && !b.options.DescendIgnored:
			b.options.Logger.Debug("walker: not expanding ignored directory %q", childRel)
			b.tracker.Track(childRel, ReasonIgnoredDir, true)
		case b.options.MaxDepth > 0 && depth+1 >= b.options.MaxDepth:
			b.tracker.Track(childRel, ReasonDepthLimit, true)
		default:
			grandchildren, err = b.list(childAbs, childRel, depth+1)
			if err != nil {
				return nil, err
			}
		}
		children = append(children, tree.NewDir(childAbs, status, grandchildren))
	}

	sortNodes(children)
	return children, nil
}

// sortNodes orders directories before files, then by name
func sortNodes(nodes []tree.Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		left, right := nodes[i], nodes[j]
		if (left.Kind() == tree.KindDirectory) != (right.Kind() == tree.KindDirectory) {
			return left.Kind() == tree.KindDirectory
		}
		return left.Name() < right.Name()
	})
}
