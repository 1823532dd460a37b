// Package folding regroups the children of a directory under synthetic group
// nodes according to ordered pattern rules.
package folding

// Config is the settings snapshot for one grouping pass. It is passed by value.
type Config struct {
	// FoldingEnabled is the master switch; off means identity
	FoldingEnabled bool
	// FoldDirectories lets directory children be claimed by rules
	FoldDirectories bool
	// FoldIgnoredFiles routes matched, ignored children into the ignored group
	FoldIgnoredFiles bool
	// HideEmptyGroups drops rule groups that end up with no members
	HideEmptyGroups bool
	// HideAllGroups removes matched children without emitting any group
	HideAllGroups bool
	// CaseSensitive disables lowercasing for pattern and status comparison
	CaseSensitive bool
}

// Disabled returns the identity configuration
func Disabled() Config {
	return Config{}
}
