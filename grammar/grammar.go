package grammar

import (
	"context"
	"iter"
	"log/slog"
	"regexp"
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/incr/log"
	"github.com/ardnew/incr/parse"
)

// Grammar is an ordered set of named rules sharing one [parse.Registry].
//
// A Grammar is not safe for concurrent use.
type Grammar struct {
	registry *parse.Registry
	logger   log.Logger
	rules    []rule
	index    map[string]int
	start    string
}

type rule struct {
	name   string
	source string
	parser *parse.Parser
}

// New returns an empty grammar whose rules are built by reg.
// A nil reg is replaced by a new registry.
func New(reg *parse.Registry, opts ...Option) *Grammar {
	cfg := makeConfig(opts...)

	if reg == nil {
		reg = parse.NewRegistry(parse.WithLogger(cfg.logger))
	}

	return &Grammar{
		registry: reg,
		logger:   cfg.logger,
		index:    make(map[string]int),
	}
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reserved names cannot be rule names: the combinator functions and the
// keywords of the expression language.
var reserved = append(slices.Clone(functions),
	"nil", "true", "false", "and", "or", "not", "in", "matches",
	"contains", "startsWith", "endsWith", "let", "if", "else",
)

// Define compiles source with every rule defined so far in scope and adds
// the result as rule name.
func (g *Grammar) Define(ctx context.Context, name, source string) (*parse.Parser, error) {
	if !identifier.MatchString(name) || slices.Contains(reserved, name) {
		return nil, ErrInvalidName.With(slog.String("rule", name))
	}

	if _, ok := g.index[name]; ok {
		return nil, ErrDuplicateRule.With(slog.String("rule", name))
	}

	p, err := Compile(ctx, g.registry, source,
		WithRules(g.Rules()),
		WithLogger(g.logger),
	)
	if err != nil {
		return nil, parse.WrapError(err).With(slog.String("rule", name))
	}

	g.index[name] = len(g.rules)
	g.rules = append(g.rules, rule{name: name, source: source, parser: p})

	g.logger.DebugContext(ctx, "rule defined",
		slog.String("rule", name),
		slog.Uint64("parser_id", p.ID()),
	)

	return p, nil
}

// Rule returns the parser of the rule called name.
// If there is none, the error matches [ErrRuleNotFound] and lists the
// closest rule names as suggestions.
func (g *Grammar) Rule(name string) (*parse.Parser, error) {
	if i, ok := g.index[name]; ok {
		return g.rules[i].parser, nil
	}

	err := ErrRuleNotFound.With(slog.String("rule", name))
	if s := g.Suggest(name); len(s) > 0 {
		err = err.With(slog.Any("suggestions", s))
	}

	return nil, err
}

// Suggest returns up to three rule names resembling name, best first.
func (g *Grammar) Suggest(name string) []string {
	names := make([]string, len(g.rules))
	for i, r := range g.rules {
		names[i] = r.name
	}

	var out []string

	for _, m := range fuzzy.Find(name, names) {
		if len(out) == 3 {
			break
		}

		out = append(out, m.Str)
	}

	return out
}

// SetStart selects the rule returned by [Grammar.Start].
func (g *Grammar) SetStart(name string) error {
	if _, err := g.Rule(name); err != nil {
		return err
	}

	g.start = name

	return nil
}

// StartName returns the name of the start rule, or "" if the grammar has no
// rules. Without [Grammar.SetStart] it is the last rule defined, the only
// rule no other rule can refer to.
func (g *Grammar) StartName() string {
	if g.start != "" {
		return g.start
	}

	if len(g.rules) == 0 {
		return ""
	}

	return g.rules[len(g.rules)-1].name
}

// Start returns the parser of the start rule.
func (g *Grammar) Start() (*parse.Parser, error) {
	name := g.StartName()
	if name == "" {
		return nil, ErrNoStart
	}

	return g.Rule(name)
}

// Rules yields each rule name and parser in definition order.
func (g *Grammar) Rules() iter.Seq2[string, *parse.Parser] {
	return func(yield func(string, *parse.Parser) bool) {
		for _, r := range g.rules {
			if !yield(r.name, r.parser) {
				return
			}
		}
	}
}

// Source returns the expression rule name was defined with.
func (g *Grammar) Source(name string) (string, bool) {
	i, ok := g.index[name]
	if !ok {
		return "", false
	}

	return g.rules[i].source, true
}

// Len returns the number of rules.
func (g *Grammar) Len() int { return len(g.rules) }

// Registry returns the registry that built the grammar's parsers.
func (g *Grammar) Registry() *parse.Registry { return g.registry }
