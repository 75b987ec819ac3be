package parse

import (
	"log/slog"
	"regexp"
)

// Pattern returns the parser that matches the regular expression expr (RE2
// syntax) at the start of its input.
//
// Matching is anchored: a match must begin at offset 0, so a match found
// later in the input never counts. Tasks resolve on their first step, to
// Success(matched, rest) or Failure. An expression that can match the empty
// string succeeds without consuming input where nothing longer matches.
//
// Expressions that do not compile return an error matching [ErrPattern] and
// are not remembered by the registry.
func (r *Registry) Pattern(expr string) (*Parser, error) {
	return r.construct(KindPattern, expr, nil, func(p *Parser) error {
		// Compile expr on its own first: only a well-formed expression can be
		// wrapped without its groups escaping the anchor.
		_, err := regexp.Compile(expr)
		if err != nil {
			return ErrPattern.Wrap(err).With(slog.String("pattern", expr))
		}

		re, err := regexp.Compile(`\A(?:` + expr + `)`)
		if err != nil {
			return ErrPattern.Wrap(err).With(slog.String("pattern", expr))
		}

		p.re = re

		return nil
	})
}

// MustPattern is like [Registry.Pattern] but panics if expr does not compile.
func (r *Registry) MustPattern(expr string) *Parser {
	p, err := r.Pattern(expr)
	if err != nil {
		panic(err)
	}

	return p
}

func matchPattern(re *regexp.Regexp, input string) stepFunc {
	return func() Result {
		loc := re.FindStringIndex(input)
		if loc == nil || loc[0] != 0 {
			return Failure()
		}

		return Success(input[:loc[1]], input[loc[1]:])
	}
}
