package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"slices"

	"github.com/ardnew/incr/grammar"
	"github.com/ardnew/incr/log"
	"github.com/ardnew/incr/parse"
	"github.com/ardnew/incr/pkg"
)

// DefaultGrammar is the grammar looked up in the search path when neither
// --grammar nor --expr is given. [Init] writes it to the config directory.
const DefaultGrammar = "grammar"

// ExprRule names the rule defined by --expr.
const ExprRule = "main"

// Source selects the grammar commands parse with.
type Source struct {
	Path    []string `help:"Directory searched for grammar files (repeatable)." placeholder:"DIR"`
	Grammar string   `help:"Grammar file name or path."                         placeholder:"FILE" short:"g"`
	Expr    string   `help:"Grammar expression defining rule \"main\"."         placeholder:"EXPR" short:"e"`
	Start   string   `help:"Start rule, overriding the grammar's own."          placeholder:"RULE"`
}

// dirs returns the directories grammar names are resolved against.
// The config directory is searched last.
func (s Source) dirs() []string {
	return append(slices.Clone(s.Path), pkg.ConfigDir())
}

// File reads the selected grammar and returns it with a description of
// where it came from.
//
// An --expr is appended to the rules of --grammar as rule [ExprRule] and
// becomes the start rule. --start overrides both.
func (s Source) File(ctx context.Context) (grammar.File, string, error) {
	var (
		f      grammar.File
		origin string
	)

	name := s.Grammar
	if name == "" && s.Expr == "" {
		name = DefaultGrammar
	}

	if name != "" {
		path, err := grammar.Find(name, s.dirs()...)
		if err != nil {
			if s.Grammar == "" && errors.Is(err, grammar.ErrNotFound) {
				return f, "", ErrNoGrammar.Wrap(err)
			}

			return f, "", err
		}

		if f, err = readFile(ctx, path); err != nil {
			return f, path, err
		}

		origin = path
	}

	if s.Expr != "" {
		f.Rules = append(f.Rules, grammar.RuleSpec{Name: ExprRule, Expr: s.Expr})
		f.Start = ExprRule

		if origin == "" {
			origin = "--expr"
		}
	}

	if s.Start != "" {
		f.Start = s.Start
	}

	log.DebugContext(ctx, "grammar selected",
		slog.String("origin", origin),
		slog.Int("rules", len(f.Rules)),
		slog.String("start", f.Start),
	)

	return f, origin, nil
}

func readFile(ctx context.Context, path string) (grammar.File, error) {
	r, err := os.Open(path)
	if err != nil {
		return grammar.File{}, grammar.ErrGrammarRead.Wrap(err).With(slog.String("path", path))
	}
	defer r.Close()

	f, err := grammar.Decode(ctx, r)
	if err != nil {
		return f, parse.WrapError(err).With(slog.String("path", path))
	}

	return f, nil
}

// builder returns a [driver.Builder]-compatible function that compiles f in
// the given registry and returns its start rule.
func builder(ctx context.Context, f grammar.File) func(*parse.Registry) (*parse.Parser, error) {
	return func(reg *parse.Registry) (*parse.Parser, error) {
		g, err := f.Build(ctx,
			grammar.WithRegistry(reg),
			grammar.WithLogger(log.Default()),
		)
		if err != nil {
			return nil, err
		}

		return g.Start()
	}
}
