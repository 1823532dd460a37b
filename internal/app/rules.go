package app

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bethropolis/foldtree/internal/rule"
	"github.com/bethropolis/foldtree/internal/settings"
	"github.com/fatih/color"
)

// ErrSettingsExist is returned by Init when the settings file is present
var ErrSettingsExist = errors.New("settings file already exists")

// ListRules prints the effective rules in evaluation order
func (a *App) ListRules() error {
	current := a.store.Current()

	tw := tabwriter.NewWriter(a.Output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tENABLED\tCOLOR\tPATTERNS")
	for i, r := range current.OrderedRules() {
		fmt.Fprintf(tw, "%d\t%s\t%v\t%s\t%s\n", i+1, swatch(r, a.cfg.UseColors), r.Enabled, r.Color, r.Patterns)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write rules: %w", err)
	}

	if !current.FoldingEnabled {
		a.infoLog("Folding is disabled (%s)", a.settingsPath)
	}
	return nil
}

// swatch renders the rule name on its own background color
func swatch(r rule.Rule, useColors bool) string {
	red, green, blue, ok := r.Color.RGB()
	if !ok || !useColors {
		return r.Name
	}
	c := color.BgRGB(int(red), int(green), int(blue))
	c.EnableColor()
	return c.Sprint(r.Name)
}

// Init writes the default settings to the settings file. An existing file is
// kept unless force is set.
func (a *App) Init(force bool) error {
	if _, err := os.Stat(a.settingsPath); err == nil && !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrSettingsExist, a.settingsPath)
	}

	defaults := settings.Default()
	if err := settings.Save(a.settingsPath, defaults); err != nil {
		return err
	}
	a.store.Commit(defaults)
	a.infoLog("Wrote %s with %d rules", a.settingsPath, len(defaults.Rules))
	return nil
}
