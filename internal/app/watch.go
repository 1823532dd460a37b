package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/bethropolis/foldtree/internal/settings"
	"github.com/bethropolis/foldtree/internal/setup"
	"github.com/bethropolis/foldtree/internal/watch"
)

const clearScreen = "\033[H\033[2J"

// Watch renders the tree, then re-renders whenever the directory, its ignore
// rules or the settings file change, until ctx is done.
func (a *App) Watch(ctx context.Context) error {
	w, err := watch.New(a.rootDir,
		watch.WithSettingsFile(a.settingsPath),
		watch.WithLogger(a.log),
	)
	if err != nil {
		return err
	}

	refresh := make(chan struct{}, 1)
	request := func() {
		select {
		case refresh <- struct{}{}:
		default:
		}
	}

	// Settings commits are refresh triggers in their own right.
	unsubscribe := a.store.Subscribe(func(settings.Settings) { request() })
	defer unsubscribe()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(b watch.Batch) { a.handleBatch(b, request) })
	}()

	a.infoLog("Watching %s (%d directories)", a.rootDir, len(w.Directories()))
	if err := a.refresh(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			<-done
			return nil
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case <-refresh:
			if err := a.refresh(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				a.log.Error("Refresh failed: %v", err)
			}
		}
	}
}

// handleBatch turns one debounced batch of changes into store commits and
// refresh requests
func (a *App) handleBatch(b watch.Batch, request func()) {
	if b.Settings {
		a.log.Debug("Settings file changed, reloading %s", a.settingsPath)
		if !a.store.Commit(setup.LoadSettings(a.settingsPath, a.explicitSettings, a.log)) {
			a.log.Debug("Settings unchanged")
		}
	}

	// Settings commits request their own refresh through the store subscription.
	if b.Content || (b.Status && a.store.Current().FoldIgnoredFiles) {
		request()
	}
}

func (a *App) refresh(ctx context.Context) error {
	if a.cfg.UseColors && a.cfg.OutputFile == "" {
		fmt.Fprint(a.Output, clearScreen)
	}
	return a.render(ctx)
}
