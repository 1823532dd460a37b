// Package app wires configuration, settings and rendering into commands
package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/bethropolis/foldtree/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the foldtree command tree
func NewRootCommand() *cobra.Command {
	cfg := config.New()

	// withApp resolves the config, builds the App and runs fn with a
	// context cancelled on interrupt
	withApp := func(fn func(ctx context.Context, a *App) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg.Resolve(args)

			a, err := New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return fn(ctx, a)
		}
	}

	cmd := &cobra.Command{
		Use:   "foldtree [dir]",
		Short: "Show a project tree with related files folded into groups",
		Long: `foldtree prints a directory tree in which sibling files matching a rule's
glob patterns are folded into one group per rule. Files ignored by
.gitignore can be collected into a separate "Ignored" group.

Rules and folding options are read from .foldtree.yaml (or .foldtree.toml)
in the project root, or from the file given with --settings.`,
		Args:    cobra.MaximumNArgs(1),
		Version: cfg.Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		RunE: withApp(func(ctx context.Context, a *App) error {
			return a.Run(ctx)
		}),
	}
	cfg.Bind(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-render the tree whenever files, ignore rules or settings change",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(ctx context.Context, a *App) error {
			return a.Watch(ctx)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rules [dir]",
		Short: "List the folding rules in evaluation order",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(_ context.Context, a *App) error {
			return a.ListRules()
		}),
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a settings file with the default rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(func(_ context.Context, a *App) error {
			return a.Init(force)
		}),
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing settings file")
	cmd.AddCommand(initCmd)

	return cmd
}
