package ignore

import "github.com/bethropolis/foldtree/internal/utils"

// Option functions for configuration
type Option func(*StatusProvider)

// WithHiddenAsIgnored tags dot-files as hidden by the project view
func WithHiddenAsIgnored(hide bool) Option {
	return func(p *StatusProvider) {
		p.hideHidden = hide
	}
}

// WithGitDirAsIgnored tags .git directories as hidden by the project view
func WithGitDirAsIgnored(hide bool) Option {
	return func(p *StatusProvider) {
		p.hideGit = hide
	}
}

// WithCustomRules adds gitignore-syntax rules evaluated after the repository's own
func WithCustomRules(patterns []string) Option {
	return func(p *StatusProvider) {
		p.customPatterns = patterns
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(p *StatusProvider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithDisabled makes every path report StatusNotChanged
func WithDisabled(disabled bool) Option {
	return func(p *StatusProvider) {
		p.disabled = disabled
	}
}
