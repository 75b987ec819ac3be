package grammar

import (
	"iter"

	"github.com/ardnew/incr/log"
	"github.com/ardnew/incr/parse"
)

// Option configures [Compile], [New], and [Load].
type Option func(config) config

type config struct {
	logger   log.Logger
	registry *parse.Registry
	rules    map[string]*parse.Parser
}

func makeConfig(opts ...Option) config {
	var c config

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithRegistry sets the registry [Load] builds parsers with.
// Without it, Load creates a new registry.
func WithRegistry(reg *parse.Registry) Option {
	return func(c config) config {
		c.registry = reg

		return c
	}
}

// WithRule makes p visible to [Compile] as a variable named name.
func WithRule(name string, p *parse.Parser) Option {
	return func(c config) config {
		c.rules = cloneRules(c.rules, 1)
		c.rules[name] = p

		return c
	}
}

// WithRules makes every rule yielded by rules visible to [Compile].
func WithRules(rules iter.Seq2[string, *parse.Parser]) Option {
	return func(c config) config {
		c.rules = cloneRules(c.rules, 0)

		for name, p := range rules {
			c.rules[name] = p
		}

		return c
	}
}

func cloneRules(m map[string]*parse.Parser, extra int) map[string]*parse.Parser {
	c := make(map[string]*parse.Parser, len(m)+extra)
	for k, v := range m {
		c[k] = v
	}

	return c
}
