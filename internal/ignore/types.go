// Package ignore classifies node status tags and computes them for file-system nodes
package ignore

import (
	"github.com/bethropolis/foldtree/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// StatusProvider computes the status tag of paths below a root directory
type StatusProvider struct {
	// The core gitignore object handling repository rules
	repoIgnore gitignore.GitIgnore
	// Extra rules supplied on the command line, gitignore syntax
	customIgnore gitignore.GitIgnore

	// Configuration flags
	rootDir        string
	hideHidden     bool
	hideGit        bool
	customPatterns []string
	logger         utils.Logger
	disabled       bool
}

// Config holds configuration options for the status provider
type Config struct {
	RootDir     string
	HideHidden  bool
	HideGit     bool
	CustomRules []string
	Logger      utils.Logger
	Disabled    bool
}
