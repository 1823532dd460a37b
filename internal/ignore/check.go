package ignore

import (
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// Status returns the status tag for a path relative to the provider root
func (p *StatusProvider) Status(relativePath string, isDir bool) string {
	if p == nil || p.disabled {
		return StatusNotChanged
	}

	if relativePath == "" || relativePath == "." {
		return StatusNotChanged // the root itself is never ignored
	}

	if p.hideGit && isPathInGitDir(relativePath, isDir) {
		p.logger.Debug("ignore.Status: %q hidden (.git rule)", relativePath)
		return StatusProjectViewIgnored
	}

	if p.hideHidden && isHidden(relativePath) {
		p.logger.Debug("ignore.Status: %q hidden (dot-file rule)", relativePath)
		return StatusProjectViewIgnored
	}

	unixPath := filepath.ToSlash(relativePath)
	if p.ignoredBy(p.customIgnore, unixPath, isDir) || p.ignoredBy(p.repoIgnore, unixPath, isDir) {
		p.logger.Debug("ignore.Status: %q ignored by gitignore rules", relativePath)
		return StatusIgnored
	}

	return StatusNotChanged
}

// ignoredBy asks the library; a panic inside it counts as "not ignored".
func (p *StatusProvider) ignoredBy(rules gitignore.GitIgnore, unixPath string, isDir bool) (ignored bool) {
	if rules == nil {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("PANIC recovered in gitignore library for path %q: %v", unixPath, r)
			ignored = false
		}
	}()

	match := rules.Relative(unixPath, isDir)
	if match == nil {
		return false
	}
	// A negated rule ("!keep.log") re-includes the path.
	return match.Ignore() && !match.Include()
}

func isHidden(relativePath string) bool {
	for _, part := range strings.Split(filepath.ToSlash(relativePath), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}

// isPathInGitDir checks if a path is inside a .git directory
func isPathInGitDir(relativePath string, isDir bool) bool {
	parts := strings.Split(filepath.ToSlash(relativePath), "/")
	for i, part := range parts {
		if part == ".git" {
			// If .git is a directory component (not just a prefix of a filename)
			if isDir || i < len(parts)-1 {
				return true
			}
		}
	}
	return false
}
