package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bethropolis/foldtree/internal/config"
	"github.com/bethropolis/foldtree/internal/folding"
	"github.com/bethropolis/foldtree/internal/logger"
	"github.com/bethropolis/foldtree/internal/pattern"
	"github.com/bethropolis/foldtree/internal/printer"
	"github.com/bethropolis/foldtree/internal/rule"
	"github.com/bethropolis/foldtree/internal/settings"
	"github.com/bethropolis/foldtree/internal/setup"
	"github.com/bethropolis/foldtree/internal/summary"
	"github.com/bethropolis/foldtree/internal/tree"
	"github.com/bethropolis/foldtree/internal/walker"
	"github.com/fatih/color"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer

	closeOutput func() error

	rootDir          string
	settingsPath     string
	explicitSettings bool

	engine *folding.Engine
	store  *settings.Store
	stats  *summary.Collector
}

// New creates a new App instance. Settings are loaded immediately.
func New(cfg *config.Config) (*App, error) {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	log := logger.New(os.Stderr, cfg.Verbose, cfg.UseColors)

	// Apply log level if specified (overrides verbose/quiet flags)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return newApp(cfg, log, os.Stdout)
}

func newApp(cfg *config.Config, log *logger.Logger, stdout io.Writer) (*App, error) {
	absRootDir, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("invalid root directory path '%s': %w", cfg.RootDir, err)
	}

	a := &App{
		cfg:              cfg,
		log:              log,
		Output:           stdout,
		closeOutput:      func() error { return nil },
		rootDir:          absRootDir,
		settingsPath:     setup.SettingsPath(cfg.SettingsFile, absRootDir),
		explicitSettings: cfg.SettingsFile != "",
		stats:            summary.NewCollector(),
	}

	// Set up output destination
	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		a.Output = file
		a.closeOutput = file.Close
	}

	a.engine = folding.New(
		folding.WithLogger(log),
		folding.WithMatcher(pattern.New(pattern.WithLogger(log))),
	)
	a.store = settings.NewStore(setup.LoadSettings(a.settingsPath, a.explicitSettings, log))

	return a, nil
}

// Close releases the output file, if any
func (a *App) Close() error {
	return a.closeOutput()
}

// Store exposes the settings store
func (a *App) Store() *settings.Store {
	return a.store
}

func (a *App) infoLog(format string, args ...interface{}) {
	if !a.cfg.Quiet {
		a.log.Info(format, args...)
	}
}

// withTimeout derives the context bounded by --timeout
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, a.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// Run renders the tree once
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if a.log.Verbose() {
		a.log.Debug("Verbose mode enabled")
		a.log.Debug("Color output: %v", a.cfg.UseColors)
		a.log.Debug("Directory: %s", a.rootDir)
		a.log.Debug("Settings file: %s (explicit: %v)", a.settingsPath, a.explicitSettings)
		a.log.Debug("Ignore settings: hidden=%v, git=%v", a.cfg.HideHidden, a.cfg.HideGit)
	}

	err := a.render(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("timeout of %v reached: %w", a.cfg.Timeout, err)
	}
	return err
}

// render walks the directory and prints one folded snapshot
func (a *App) render(ctx context.Context) error {
	startTime := time.Now()

	provider, walkOptions, err := setup.ConfigureWalker(setup.WalkerConfig{
		RootDir:        a.rootDir,
		MaxDepth:       a.cfg.MaxDepth,
		HideHidden:     a.cfg.HideHidden,
		HideGit:        a.cfg.HideGit,
		CustomIgnore:   a.cfg.CustomIgnore,
		DescendIgnored: a.cfg.DescendIgnored,
		ShowProgress:   a.cfg.ShowProgress,
		Context:        ctx,
		Quiet:          a.cfg.Quiet,
		Logger:         a.log,
	}, a.log.Debug)
	if err != nil {
		return err
	}

	a.log.Debug("Scanning directory: %s", a.rootDir)
	root, skippedItems, err := walker.Build(a.rootDir, provider, walkOptions...)
	if a.cfg.ShowProgress && !a.cfg.Quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return fmt.Errorf("critical error during directory walk: %w", err)
	}

	// One snapshot for the whole pass; later commits apply to the next render.
	current := a.store.Current()
	a.stats.Reset()

	p := a.newPrinter(a.folder(current.Snapshot(), current.OrderedRules()))
	if err := p.Print(root); err != nil {
		return err
	}

	if a.cfg.ShowSummary {
		out := a.Output
		if a.cfg.JSONOutput {
			out = os.Stderr
		}
		summary.DisplayFoldStats(out, a.stats.Stats())
	}

	summary.DisplayResults(a.log, p.GetCount(), time.Since(startTime), a.cfg.Quiet)
	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, skippedItems, os.Stderr, a.cfg.Quiet)
	}
	return nil
}

// folder folds every listed directory with one settings snapshot
func (a *App) folder(cfg folding.Config, rules []rule.Rule) printer.Folder {
	return printer.FolderFunc(func(parent tree.Node) []tree.Node {
		children := parent.Children()
		res := a.engine.Partition(parent, children, cfg, rules)
		a.stats.Add(res)
		if res.Passthrough {
			return children
		}
		return res.Nodes()
	})
}

func (a *App) newPrinter(folder printer.Folder) *printer.Printer {
	p := printer.New().
		WithOutput(a.Output).
		WithColors(a.cfg.UseColors).
		WithFolder(folder)

	if a.cfg.JSONOutput {
		a.log.Debug("JSON output mode enabled")
		p.WithJSON(true).WithColors(false)
	} else if a.cfg.MarkdownOutput {
		a.log.Debug("Markdown output mode enabled")
		p.WithMarkdown(true).WithColors(false)
	}

	if a.cfg.Collapse || a.cfg.OpenPath != "" {
		p.WithCollapse(a.cfg.Collapse, a.openPath())
	}
	return p
}

// openPath resolves --open against the root directory
func (a *App) openPath() string {
	if a.cfg.OpenPath == "" {
		return ""
	}
	if filepath.IsAbs(a.cfg.OpenPath) {
		return filepath.Clean(a.cfg.OpenPath)
	}
	return filepath.Join(a.rootDir, a.cfg.OpenPath)
}
