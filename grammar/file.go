package grammar

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
)

// File is the YAML document form of a [Grammar].
//
//	start: digits
//	rules:
//	  - name: one_two
//	    expr: seq(str("1"), str("2"))
//	  - name: digits
//	    expr: alt(one_two, seq(str("3"), str("4")))
type File struct {
	Start string     `yaml:"start,omitempty"`
	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec is one rule of a [File].
type RuleSpec struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// Load decodes a grammar file from r and defines its rules in order.
//
// Parsers are built by the registry given with [WithRegistry], or by a new
// registry. Unknown document keys are rejected. An empty document yields a
// grammar with no rules.
func Load(ctx context.Context, r io.Reader, opts ...Option) (*Grammar, error) {
	f, err := Decode(ctx, r)
	if err != nil {
		return nil, err
	}

	return f.Build(ctx, opts...)
}

// Decode reads a grammar file from r without compiling its rules.
// The result can be built any number of times with [File.Build], once per
// registry.
func Decode(ctx context.Context, r io.Reader) (File, error) {
	rd := readahead.NewReader(r)
	defer rd.Close()

	var f File

	err := yaml.NewDecoder(rd, yaml.DisallowUnknownField()).DecodeContext(ctx, &f)
	if err != nil && !errors.Is(err, io.EOF) {
		var yerr yaml.Error
		if errors.As(err, &yerr) {
			return File{}, ErrGrammarDecode.Wrap(err)
		}

		return File{}, ErrGrammarRead.Wrap(err)
	}

	return f, nil
}

// Build defines the rules of f in a new [Grammar].
func (f File) Build(ctx context.Context, opts ...Option) (*Grammar, error) {
	cfg := makeConfig(opts...)
	g := New(cfg.registry, opts...)

	for _, r := range f.Rules {
		if _, err := g.Define(ctx, r.Name, r.Expr); err != nil {
			return nil, err
		}
	}

	if f.Start != "" {
		if err := g.SetStart(f.Start); err != nil {
			return nil, ErrNoStart.Wrap(err).With(slog.String("start", f.Start))
		}
	}

	return g, nil
}

// File returns the document form of g.
func (g *Grammar) File() File {
	f := File{Start: g.start, Rules: make([]RuleSpec, len(g.rules))}

	for i, r := range g.rules {
		f.Rules[i] = RuleSpec{Name: r.name, Expr: r.source}
	}

	return f
}

// Marshal writes g to w as a YAML grammar file that [Load] reads back into
// an equivalent grammar.
func Marshal(ctx context.Context, g *Grammar, w io.Writer) error {
	enc := yaml.NewEncoder(w, yaml.Indent(2), yaml.IndentSequence(true))

	if err := enc.EncodeContext(ctx, g.File()); err != nil {
		return ErrGrammarEncode.Wrap(err)
	}

	if err := enc.Close(); err != nil {
		return ErrGrammarEncode.Wrap(err)
	}

	return nil
}
