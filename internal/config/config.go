package config

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version is reported by --version
const Version = "1.0.0"

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	RootDir      string
	SettingsFile string

	// Logging settings
	Verbose     bool
	Quiet       bool
	LogLevel    string
	NoColor     bool
	UseColors   bool
	OutputFile  string
	ShowSkipped bool

	// Walk settings
	MaxDepth       int
	ShowProgress   bool
	Timeout        time.Duration
	HideHidden     bool
	HideGit        bool
	CustomIgnore   string
	DescendIgnored bool

	// Output format
	JSONOutput     bool
	MarkdownOutput bool
	Collapse       bool
	OpenPath       string
	ShowSummary    bool

	// Version info
	Version string
}

// New creates a Config with defaults
func New() *Config {
	return &Config{
		RootDir: ".",
		HideGit: true,
		Version: Version,
	}
}

// Bind registers the configuration flags on cmd. Flags are persistent so
// subcommands share them.
func (c *Config) Bind(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&c.SettingsFile, "settings", "", "Settings file (YAML or TOML); defaults to <dir>/.foldtree.yaml")
	flags.BoolVar(&c.Verbose, "verbose", false, "Enable verbose logging (DEBUG, WARN, ERROR)")
	flags.BoolVar(&c.Quiet, "quiet", false, "Suppress INFO messages (only show WARN, ERROR)")
	flags.StringVar(&c.LogLevel, "log-level", "", "Set the logging level (DEBUG, INFO, WARN, ERROR)")
	flags.BoolVar(&c.NoColor, "no-color", false, "Disable color output")
	flags.StringVar(&c.OutputFile, "output", "", "Output to file instead of stdout")
	flags.BoolVar(&c.ShowSkipped, "show-skipped", false, "Show directories whose contents were not listed")
	flags.IntVar(&c.MaxDepth, "depth", 0, "Max directory levels to list (0 = no limit)")
	flags.BoolVar(&c.ShowProgress, "progress", false, "Show progress information")
	flags.DurationVar(&c.Timeout, "timeout", 0, "Maximum execution time (e.g., '30s', '5m')")
	flags.BoolVar(&c.HideHidden, "hidden", false, "Tag hidden files/directories (starting with '.') as ignored")
	flags.BoolVar(&c.HideGit, "git", true, "Tag .git directories as ignored")
	flags.StringVar(&c.CustomIgnore, "ignore", "", "Extra ignore patterns (comma-separated, gitignore syntax)")
	flags.BoolVar(&c.DescendIgnored, "expand-ignored", false, "List the contents of ignored directories")
	flags.BoolVar(&c.JSONOutput, "json", false, "Output the tree in JSON format")
	flags.BoolVar(&c.MarkdownOutput, "markdown", false, "Output the tree in Markdown format")
	flags.BoolVar(&c.Collapse, "collapse", false, "Render groups collapsed")
	flags.StringVar(&c.OpenPath, "open", "", "Keep groups containing this path expanded")
	flags.BoolVar(&c.ShowSummary, "summary", false, "Print fold statistics after the tree")
}

// Resolve applies positional arguments and derived settings
func (c *Config) Resolve(args []string) {
	if len(args) > 0 && args[0] != "" {
		c.RootDir = args[0]
	}

	// Determine if colors should be used
	c.UseColors = !c.NoColor && c.OutputFile == "" && isatty.IsTerminal(os.Stdout.Fd())
}
