// Package pattern matches flat node names against space-separated glob sets.
//
// Glob compilation is an injected capability (Compiler). The default compiler
// is backed by github.com/gobwas/glob and compiles without separators, so `*`
// matches any run of characters including dots and slashes. Besides `*`, `?`
// and `[...]`, the library treats `{a,b}` as alternation and `\` as an
// escape, so a literal brace in a name must be written as `\{`.
package pattern

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bethropolis/foldtree/internal/utils"
	"github.com/gobwas/glob"
)

// Glob is a compiled pattern
type Glob interface {
	Match(name string) bool
}

// Compiler turns a single glob string into a Glob
type Compiler interface {
	Compile(pattern string) (Glob, error)
}

// GlobCompiler compiles shell-style globs with gobwas/glob
type GlobCompiler struct{}

// Compile implements Compiler. Library panics are reported as errors.
func (GlobCompiler) Compile(pattern string) (g Glob, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = nil, fmt.Errorf("pattern: compile %q: panic: %v", pattern, r)
		}
	}()

	compiled, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("pattern: compile %q: %w", pattern, err)
	}
	return compiled, nil
}

// Matcher evaluates pattern sets against names.
// Compiled globs are memoized; a Matcher is safe for concurrent use.
type Matcher struct {
	compiler Compiler
	logger   utils.Logger
	cache    sync.Map // normalized pattern -> Glob (nil when compilation failed)
}

// Option configures a Matcher
type Option func(*Matcher)

// WithCompiler replaces the glob compiler. A nil compiler makes every match false.
func WithCompiler(c Compiler) Option {
	return func(m *Matcher) {
		m.compiler = c
	}
}

// WithLogger sets the logger used to report malformed patterns
func WithLogger(logger utils.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Matcher using GlobCompiler unless overridden
func New(opts ...Option) *Matcher {
	m := &Matcher{
		compiler: GlobCompiler{},
		logger:   utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Split breaks a pattern set on single spaces, dropping empty entries
func Split(patterns string) []string {
	parts := strings.Split(patterns, " ")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether any pattern in the space-separated set matches name.
// When caseSensitive is false both sides are lowercased first. An empty set,
// a malformed pattern, or a missing compiler never match.
func (m *Matcher) Matches(patterns, name string, caseSensitive bool) bool {
	if m == nil || m.compiler == nil {
		return false
	}

	if !caseSensitive {
		patterns = strings.ToLower(patterns)
		name = strings.ToLower(name)
	}

	for _, p := range Split(patterns) {
		g := m.compile(p)
		if g != nil && safeMatch(g, name) {
			return true
		}
	}
	return false
}

func (m *Matcher) compile(p string) Glob {
	if cached, ok := m.cache.Load(p); ok {
		g, _ := cached.(Glob)
		return g
	}

	g, err := m.compiler.Compile(p)
	if err != nil {
		g = nil
	}
	if _, loaded := m.cache.LoadOrStore(p, g); !loaded && err != nil {
		m.logger.Warn("pattern: ignoring malformed pattern %q: %v", p, err)
	}
	return g
}

func safeMatch(g Glob, name string) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	return g.Match(name)
}
