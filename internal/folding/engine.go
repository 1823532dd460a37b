package folding

import (
	"github.com/bethropolis/foldtree/internal/ignore"
	"github.com/bethropolis/foldtree/internal/pattern"
	"github.com/bethropolis/foldtree/internal/rule"
	"github.com/bethropolis/foldtree/internal/tree"
	"github.com/bethropolis/foldtree/internal/utils"
)

// Matcher decides whether a pattern set matches a name
type Matcher interface {
	Matches(patterns, name string, caseSensitive bool) bool
}

// Engine performs grouping passes. It holds no per-call state, so one Engine
// may serve any number of concurrent refreshes.
type Engine struct {
	matcher Matcher
	logger  utils.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithMatcher replaces the pattern matcher. A nil matcher matches nothing.
func WithMatcher(m Matcher) Option {
	return func(e *Engine) {
		if m == nil {
			m = matchNothing{}
		}
		e.matcher = m
	}
}

type matchNothing struct{}

func (matchNothing) Matches(string, string, bool) bool { return false }

// WithLogger sets the logger used for per-rule debug lines
func WithLogger(logger utils.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine backed by a gobwas/glob pattern matcher
func New(opts ...Option) *Engine {
	e := &Engine{logger: utils.NoopLogger{}}
	for _, opt := range opts {
		opt(e)
	}
	if e.matcher == nil {
		e.matcher = pattern.New(pattern.WithLogger(e.logger))
	}
	return e
}

// Result is the outcome of one pass, before flattening
type Result struct {
	// Unclaimed siblings in input order
	Unclaimed []tree.Node
	// Groups holds one group per rule that produced one, in rule order
	Groups []*tree.GroupNode
	// Ignored is the cross-rule ignored group, nil when empty or suppressed
	Ignored *tree.GroupNode
	// Hidden lists matched siblings dropped because of HideAllGroups
	Hidden []tree.Node
	// Passthrough is set when the pass was an identity transform
	Passthrough bool
}

// Nodes flattens the result: unclaimed, rule groups, then the ignored group
func (r Result) Nodes() []tree.Node {
	out := make([]tree.Node, 0, len(r.Unclaimed)+len(r.Groups)+1)
	out = append(out, r.Unclaimed...)
	for _, g := range r.Groups {
		out = append(out, g)
	}
	if r.Ignored != nil {
		out = append(out, r.Ignored)
	}
	return out
}

// Group returns the replacement child listing for parent. When folding is
// off, or parent is not a directory, siblings is returned as is. The input
// slice is never modified.
func (e *Engine) Group(parent tree.Node, siblings []tree.Node, cfg Config, rules []rule.Rule) []tree.Node {
	res := e.Partition(parent, siblings, cfg, rules)
	if res.Passthrough {
		return siblings
	}
	return res.Nodes()
}

// Partition runs one grouping pass and keeps the pieces apart
func (e *Engine) Partition(parent tree.Node, siblings []tree.Node, cfg Config, rules []rule.Rule) Result {
	if !cfg.FoldingEnabled || parent == nil || parent.Kind() != tree.KindDirectory {
		return Result{Unclaimed: siblings, Passthrough: true}
	}

	classifier := ignore.Classifier{CaseSensitive: cfg.CaseSensitive}
	remaining := append([]tree.Node(nil), siblings...)

	var res Result
	var ignored []tree.Node

	for _, r := range rule.Active(rules) {
		var members, matched []tree.Node
		kept := make([]tree.Node, 0, len(remaining))

		for _, n := range remaining {
			if !tree.IsEligible(n, cfg.FoldDirectories) || !e.matches(r, n, cfg.CaseSensitive) {
				kept = append(kept, n)
				continue
			}
			matched = append(matched, n)
			if cfg.FoldIgnoredFiles && classifier.IsIgnored(n.StatusTag()) {
				ignored = append(ignored, n)
			} else {
				members = append(members, n)
			}
		}
		remaining = kept

		e.logger.Debug("folding: rule %q claimed %d of %d in %q (%d ignored)",
			r.Name, len(matched), len(matched)+len(kept), parent.Name(), len(matched)-len(members))

		if cfg.HideAllGroups {
			res.Hidden = append(res.Hidden, matched...)
			continue
		}
		if len(members) > 0 || !cfg.HideEmptyGroups {
			res.Groups = append(res.Groups, tree.NewGroup(r, members))
		}
	}

	if cfg.HideAllGroups {
		ignored = nil
	}
	if len(ignored) > 0 {
		res.Ignored = tree.NewIgnoredGroup(ignored)
	}
	res.Unclaimed = remaining

	return res
}

func (e *Engine) matches(r rule.Rule, n tree.Node, caseSensitive bool) bool {
	return e.matcher.Matches(r.Patterns, n.Name(), caseSensitive)
}
