// Package walker materializes a directory into tree nodes
package walker

import (
	"sync"
)

// SkippedReason clarifies why a directory's contents were not listed.
type SkippedReason string

const (
	ReasonIgnoredDir       SkippedReason = "Not Expanded (Ignored Directory)"
	ReasonDepthLimit       SkippedReason = "Not Expanded (Depth Limit)"
	ReasonSkippedPermError SkippedReason = "Skipped (Permission Error)"
	ReasonSkippedReadError SkippedReason = "Skipped (Read Error)"
	ReasonSkippedCancelled SkippedReason = "Skipped (Cancelled)"
)

// SkippedItem holds information about a path whose listing is incomplete.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker is a struct to track skipped items
type SkippedTracker struct {
	items []SkippedItem
	mutex sync.Mutex
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns a copy of the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	return append([]SkippedItem(nil), st.items...)
}
