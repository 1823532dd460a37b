package ignore

import "strings"

// Status tags understood by the folding engine. The set is closed.
const (
	// StatusIgnored marks a node excluded by version control.
	StatusIgnored = "IGNORED"
	// StatusProjectViewIgnored marks a node hidden by project-view filters.
	StatusProjectViewIgnored = "IGNORE.PROJECT_VIEW.IGNORED"
	// StatusNotChanged is the tag for everything else.
	StatusNotChanged = "NOT_CHANGED"
)

var ignoredStatuses = [...]string{StatusIgnored, StatusProjectViewIgnored}

// IsIgnored reports whether tag is one of the ignored sentinels (exact comparison)
func IsIgnored(tag string) bool {
	return Classifier{CaseSensitive: true}.IsIgnored(tag)
}

// Classifier decides whether a status tag means "ignored"
type Classifier struct {
	// CaseSensitive disables lowercasing both sides before comparing
	CaseSensitive bool
}

// IsIgnored implements the tag check
func (c Classifier) IsIgnored(tag string) bool {
	for _, s := range ignoredStatuses {
		if c.CaseSensitive {
			if tag == s {
				return true
			}
		} else if strings.ToLower(tag) == strings.ToLower(s) {
			return true
		}
	}
	return false
}
