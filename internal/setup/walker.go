// Package setup provides initialization and configuration functions
package setup

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bethropolis/foldtree/internal/ignore"
	"github.com/bethropolis/foldtree/internal/utils"
	"github.com/bethropolis/foldtree/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// WalkerConfig holds all parameters needed to configure a directory walker
type WalkerConfig struct {
	RootDir        string
	MaxDepth       int
	HideHidden     bool
	HideGit        bool
	CustomIgnore   string
	DescendIgnored bool
	ShowProgress   bool
	Context        context.Context
	Quiet          bool
	Logger         utils.Logger
}

// ConfigureWalker sets up a status provider and walker options based on the config
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) (
	*ignore.StatusProvider,
	[]walker.Option,
	error,
) {
	if infoLog == nil {
		infoLog = func(string, ...interface{}) {}
	}
	logger := utils.OrNoop(cfg.Logger)

	// --- Parse custom ignore patterns ---
	var customPatterns []string
	if cfg.CustomIgnore != "" {
		for _, pattern := range strings.Split(cfg.CustomIgnore, ",") {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				customPatterns = append(customPatterns, pattern)
			}
		}
		infoLog("Using custom ignore patterns: %v", customPatterns)
	}

	if cfg.HideHidden {
		infoLog("Tagging hidden files/directories (starting with '.') as ignored.")
	}

	// --- Initialize status provider ---
	provider, err := ignore.NewFromConfig(ignore.Config{
		RootDir:     cfg.RootDir,
		HideHidden:  cfg.HideHidden,
		HideGit:     cfg.HideGit,
		CustomRules: customPatterns,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing ignore rules: %w", err)
	}

	// --- Set up walk options ---
	walkOptions := []walker.Option{
		walker.WithLogger(logger),
		walker.WithMaxDepth(cfg.MaxDepth),
		walker.WithDescendIgnored(cfg.DescendIgnored),
	}

	if cfg.ShowProgress {
		logger.Debug("Progress display enabled")

		walkOptions = append(walkOptions, walker.WithProgress(func(stats walker.ProgressStats) {
			// Only print to stderr to avoid interfering with regular output
			if cfg.Quiet {
				return
			}
			dir := stats.CurrentDir
			if len(dir) > 40 {
				dir = "..." + dir[len(dir)-37:]
			}
			fmt.Fprintf(os.Stderr, "\rScanning: %-40s | Files: %d | Dirs: %d | Ignored: %d",
				dir, stats.TotalFiles, stats.TotalDirs, stats.IgnoredNodes)
		}))
	}

	if cfg.Context != nil {
		walkOptions = append(walkOptions, walker.WithContext(cfg.Context))
	}

	return provider, walkOptions, nil
}
