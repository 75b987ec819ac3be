package grammar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/ardnew/incr/parse"
)

// Names of the combinator functions available to rule expressions.
var functions = []string{"str", "pattern", "sequence", "seq", "choice", "alt"}

// Compile evaluates source and returns the parser it describes, built by reg.
//
// Rules given with [WithRule] or [WithRules] are visible to source by name.
// Compile returns [ErrExprCompile] for malformed or ill-typed expressions,
// [ErrExprEvaluate] when a combinator rejects its arguments (an invalid
// pattern also matches [parse.ErrPattern]), and [ErrNotParser] when source
// yields anything other than a parser.
func Compile(
	ctx context.Context,
	reg *parse.Registry,
	source string,
	opts ...Option,
) (*parse.Parser, error) {
	cfg := makeConfig(opts...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	env := make(map[string]any, len(cfg.rules))
	for name, p := range cfg.rules {
		env[name] = p
	}

	options := append([]expr.Option{
		expr.Env(env),
		expr.DisableAllBuiltins(),
	}, combinators(reg)...)

	program, err := expr.Compile(source, options...)
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).With(slog.String("expr", source))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrExprEvaluate.Wrap(err).With(slog.String("expr", source))
	}

	p, ok := out.(*parse.Parser)
	if !ok || p == nil {
		return nil, ErrNotParser.With(
			slog.String("expr", source),
			slog.String("type", fmt.Sprintf("%T", out)),
		)
	}

	cfg.logger.DebugContext(ctx, "expression compiled",
		slog.String("expr", source),
		slog.Uint64("parser_id", p.ID()),
	)

	return p, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(ctx context.Context, reg *parse.Registry, source string, opts ...Option) *parse.Parser {
	p, err := Compile(ctx, reg, source, opts...)
	if err != nil {
		panic(err)
	}

	return p
}

func combinators(reg *parse.Registry) []expr.Option {
	text := func(params ...any) (string, error) {
		if len(params) != 1 {
			return "", fmt.Errorf("expected 1 argument, got %d", len(params))
		}

		s, ok := params[0].(string)
		if !ok {
			return "", fmt.Errorf("expected string argument, got %T", params[0])
		}

		return s, nil
	}

	operands := func(params []any) ([]*parse.Parser, error) {
		ps := make([]*parse.Parser, len(params))

		for i, v := range params {
			p, ok := v.(*parse.Parser)
			if !ok || p == nil {
				return nil, fmt.Errorf("operand %d: expected parser, got %T", i, v)
			}

			ps[i] = p
		}

		return ps, nil
	}

	str := func(params ...any) (any, error) {
		s, err := text(params...)
		if err != nil {
			return nil, err
		}

		return reg.Str(s), nil
	}

	pattern := func(params ...any) (any, error) {
		s, err := text(params...)
		if err != nil {
			return nil, err
		}

		return reg.Pattern(s)
	}

	sequence := func(params ...any) (any, error) {
		ps, err := operands(params)
		if err != nil {
			return nil, err
		}

		return reg.Sequence(ps...), nil
	}

	choice := func(params ...any) (any, error) {
		ps, err := operands(params)
		if err != nil {
			return nil, err
		}

		return reg.Choice(ps...), nil
	}

	leaf := new(func(string) *parse.Parser)
	node := new(func(...*parse.Parser) *parse.Parser)

	return []expr.Option{
		expr.Function("str", str, leaf),
		expr.Function("pattern", pattern, leaf),
		expr.Function("sequence", sequence, node),
		expr.Function("seq", sequence, node),
		expr.Function("choice", choice, node),
		expr.Function("alt", choice, node),
	}
}
