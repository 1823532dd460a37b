package ignore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bethropolis/foldtree/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// New creates and initializes a StatusProvider
func New(rootDir string, opts ...Option) (*StatusProvider, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	provider := &StatusProvider{
		rootDir:    absRootDir,
		hideHidden: false,
		hideGit:    true,
		logger:     utils.NoopLogger{},
	}

	for _, opt := range opts {
		opt(provider)
	}

	if err := provider.init(); err != nil {
		return nil, err
	}

	return provider, nil
}

// NewFromConfig creates a StatusProvider from a Config struct
func NewFromConfig(cfg Config) (*StatusProvider, error) {
	options := []Option{
		WithHiddenAsIgnored(cfg.HideHidden),
		WithGitDirAsIgnored(cfg.HideGit),
		WithDisabled(cfg.Disabled),
	}

	if len(cfg.CustomRules) > 0 {
		options = append(options, WithCustomRules(cfg.CustomRules))
	}

	if cfg.Logger != nil {
		options = append(options, WithLogger(cfg.Logger))
	}

	return New(cfg.RootDir, options...)
}

// Disabled returns a provider that tags nothing as ignored
func Disabled() *StatusProvider {
	return &StatusProvider{disabled: true, logger: utils.NoopLogger{}}
}

func (p *StatusProvider) init() error {
	p.logger.Debug("ignore.New: Initializing for root: %s", p.rootDir)
	p.logger.Debug("ignore.New: hideHidden=%v hideGit=%v", p.hideHidden, p.hideGit)

	if p.disabled {
		p.logger.Debug("ignore.New: Provider is disabled, skipping gitignore initialization")
		return nil
	}

	// The repository loader reads .gitignore files lazily per directory,
	// which matches git's own evaluation.
	repo, err := gitignore.NewRepository(p.rootDir)
	if err != nil {
		if repo != nil {
			return fmt.Errorf("ignore: failed to load repository ignores: %w", err)
		}
		p.logger.Warn("ignore.New: No .gitignore rules loaded for '%s': %v", p.rootDir, err)
		repo = gitignore.New(strings.NewReader(""), p.rootDir, nil)
	}
	p.repoIgnore = repo

	if len(p.customPatterns) > 0 {
		rules := strings.Join(p.customPatterns, "\n")
		p.customIgnore = gitignore.New(strings.NewReader(rules), p.rootDir, func(e gitignore.Error) bool {
			p.logger.Warn("ignore.New: skipping custom rule: %v", e)
			return true
		})
		p.logger.Debug("ignore.New: Loaded %d custom rules", len(p.customPatterns))
	}

	return nil
}

// Root returns the absolute root directory of the provider
func (p *StatusProvider) Root() string {
	if p == nil {
		return ""
	}
	return p.rootDir
}
