package setup

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/bethropolis/foldtree/internal/settings"
	"github.com/bethropolis/foldtree/internal/utils"
)

// candidateFiles are looked up in the project root, in order
var candidateFiles = []string{settings.DefaultFileName, ".foldtree.yml", ".foldtree.toml"}

// SettingsPath returns the settings file for rootDir: explicit when given,
// else the first candidate that exists, else the default name.
func SettingsPath(explicit, rootDir string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range candidateFiles {
		path := filepath.Join(rootDir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(rootDir, settings.DefaultFileName)
}

// LoadSettings reads the settings file. A missing implicit file means
// defaults; an explicit file that cannot be used, or any invalid file,
// disables folding so the tree is shown unchanged.
func LoadSettings(path string, explicit bool, logger utils.Logger) settings.Settings {
	logger = utils.OrNoop(logger)

	s, err := settings.Load(path)
	switch {
	case err == nil:
		logger.Debug("Loaded settings from %s (%d rules)", path, len(s.Rules))
		return s
	case errors.Is(err, os.ErrNotExist) && !explicit:
		logger.Debug("No settings file at %s, using defaults", path)
		return settings.Default()
	default:
		logger.Warn("Settings unavailable, folding disabled: %v", err)
		return settings.Disabled()
	}
}
