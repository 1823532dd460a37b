package settings

import (
	"reflect"
	"sync"
)

// Listener receives the settings that are current after a change
type Listener func(Settings)

// Store holds the committed settings and an optional preview override.
// Readers always get an independent copy, so a grouping pass in flight is
// unaffected by later changes.
type Store struct {
	mu        sync.RWMutex
	committed Settings
	preview   *Settings
	listeners map[int]Listener
	nextID    int
}

// NewStore creates a store committed to initial
func NewStore(initial Settings) *Store {
	return &Store{
		committed: initial.Clone(),
		listeners: make(map[int]Listener),
	}
}

// Current returns the preview when one is set, otherwise the committed settings
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.preview != nil {
		return s.preview.Clone()
	}
	return s.committed.Clone()
}

// Committed returns the committed settings, ignoring any preview
func (s *Store) Committed() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed.Clone()
}

// IsModified reports whether the preview differs from the committed settings
func (s *Store) IsModified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preview != nil && !reflect.DeepEqual(*s.preview, s.committed)
}

// Preview installs an uncommitted override and notifies listeners
func (s *Store) Preview(p Settings) {
	p = p.Clone()
	s.mu.Lock()
	s.preview = &p
	s.mu.Unlock()
	s.notify()
}

// ClearPreview drops the override. Listeners are notified if one was set.
func (s *Store) ClearPreview() {
	s.mu.Lock()
	had := s.preview != nil
	s.preview = nil
	s.mu.Unlock()
	if had {
		s.notify()
	}
}

// Commit replaces the committed settings and clears any preview. Listeners
// are only notified when the current settings actually changed.
func (s *Store) Commit(next Settings) bool {
	next = next.Clone()

	s.mu.Lock()
	before := s.committed
	if s.preview != nil {
		before = *s.preview
	}
	s.committed = next
	s.preview = nil
	s.mu.Unlock()

	if reflect.DeepEqual(before, next) {
		return false
	}
	s.notify()
	return true
}

// ApplyPreview commits the preview, if any
func (s *Store) ApplyPreview() bool {
	s.mu.RLock()
	p := s.preview
	s.mu.RUnlock()
	if p == nil {
		return false
	}
	return s.Commit(*p)
}

// Subscribe registers fn and returns a function that removes it
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	current := s.Current()

	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l(current.Clone())
	}
}
