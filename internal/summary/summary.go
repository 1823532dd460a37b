// Package summary collects fold statistics and reports scan results
package summary

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/bethropolis/foldtree/internal/folding"
	"github.com/bethropolis/foldtree/internal/walker"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// Stats are totals over every grouping pass of one render
type Stats struct {
	Directories int            `json:"directories"`
	Folded      int            `json:"folded_directories"`
	Groups      int            `json:"groups"`
	Members     int            `json:"members"`
	Ignored     int            `json:"ignored"`
	Hidden      int            `json:"hidden"`
	PerRule     map[string]int `json:"per_rule,omitempty"`
}

// Collector accumulates Stats from grouping results. Safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	stats Stats
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{stats: Stats{PerRule: make(map[string]int)}}
}

// Add records one directory's grouping pass
func (c *Collector) Add(res folding.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Directories++
	if res.Passthrough {
		return
	}

	changed := len(res.Groups) > 0 || res.Ignored != nil || len(res.Hidden) > 0
	if changed {
		c.stats.Folded++
	}
	for _, g := range res.Groups {
		c.stats.Groups++
		c.stats.Members += g.Len()
		c.stats.PerRule[g.Title()] += g.Len()
	}
	if res.Ignored != nil {
		c.stats.Groups++
		c.stats.Ignored += res.Ignored.Len()
	}
	c.stats.Hidden += len(res.Hidden)
}

// Stats returns a copy of the totals
func (c *Collector) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.stats
	out.PerRule = make(map[string]int, len(c.stats.PerRule))
	for k, v := range c.stats.PerRule {
		out.PerRule[k] = v
	}
	return out
}

// Reset clears the totals before a new render
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = Stats{PerRule: make(map[string]int)}
}

// DisplayResults shows the end results of a render
func DisplayResults(
	logger Logger,
	nodeCount int64,
	duration time.Duration,
	quiet bool,
) {
	if !quiet {
		logger.Info("Rendered %d nodes.", nodeCount)
		logger.Info("Render complete in %v.", duration.Round(time.Millisecond))
	}
}

// DisplayFoldStats writes the fold statistics table
func DisplayFoldStats(output io.Writer, stats Stats) {
	fmt.Fprintf(output, "Directories: %d (%d folded)\n", stats.Directories, stats.Folded)
	fmt.Fprintf(output, "Groups:      %d\n", stats.Groups)
	fmt.Fprintf(output, "Members:     %d\n", stats.Members)
	fmt.Fprintf(output, "Ignored:     %d\n", stats.Ignored)
	fmt.Fprintf(output, "Hidden:      %d\n", stats.Hidden)

	if len(stats.PerRule) == 0 {
		return
	}
	names := make([]string, 0, len(stats.PerRule))
	for name := range stats.PerRule {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(output, "  %-20s %d\n", name, stats.PerRule[name])
	}
}

// DisplaySkippedItems formats and prints information about directories
// whose contents were not listed
func DisplaySkippedItems(
	logger Logger,
	skippedItems []walker.SkippedItem,
	output io.Writer,
	quiet bool,
) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) > 0 {
		// Sort for consistent output
		sort.Slice(skippedItems, func(i, j int) bool {
			return skippedItems[i].Path < skippedItems[j].Path
		})
		for _, item := range skippedItems {
			typeStr := "FILE"
			if item.IsDir {
				typeStr = "DIR " // Add space for alignment
			}
			fmt.Fprintf(output, "Skipped %s: %-.*s [%s]\n",
				typeStr,
				50, // Max width for path column
				item.Path,
				item.Reason,
			)
		}
	} else {
		infoLog("No items were skipped.")
	}
	infoLog("--- End Skipped Items ---")
}
