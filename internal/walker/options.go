package walker

import (
	"context"

	"github.com/bethropolis/foldtree/internal/utils"
)

// Options configures the behavior of Build
type Options struct {
	Logger utils.Logger
	// MaxDepth limits how many directory levels are listed (0 = unlimited)
	MaxDepth int
	// DescendIgnored lists the contents of ignored directories too
	DescendIgnored bool
	Context        context.Context
	ProgressFn     ProgressCallback
}

// ProgressCallback is a function that receives progress updates
type ProgressCallback func(stats ProgressStats)

// ProgressStats holds statistics about the walk progress
type ProgressStats struct {
	TotalFiles   int64  // Files listed so far
	TotalDirs    int64  // Directories listed so far
	IgnoredNodes int64  // Nodes tagged ignored so far
	CurrentDir   string // Directory being read (relative)
}

func defaultOptions() Options {
	return Options{
		Logger:  &utils.NoopLogger{},
		Context: context.Background(),
	}
}

// Option is a functional option for configuring Options
type Option func(*Options)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *Options) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithMaxDepth limits the number of listed directory levels
func WithMaxDepth(depth int) Option {
	return func(opts *Options) {
		if depth >= 0 {
			opts.MaxDepth = depth
		}
	}
}

// WithDescendIgnored lists the contents of ignored directories
func WithDescendIgnored(enabled bool) Option {
	return func(opts *Options) {
		opts.DescendIgnored = enabled
	}
}

// WithContext sets the context for cancellation
func WithContext(ctx context.Context) Option {
	return func(opts *Options) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

// WithProgress adds a progress callback function
func WithProgress(fn ProgressCallback) Option {
	return func(o *Options) {
		o.ProgressFn = fn
	}
}
