// Package grammar builds parsers from textual grammar definitions.
//
// A rule is an expr-lang expression over the combinator functions
//
//	str(s)            pattern(expr)
//	sequence(p, ...)  choice(p, ...)
//
// with seq and alt as short aliases. Every previously defined rule name is
// in scope as a variable, so larger grammars are assembled from smaller
// ones:
//
//	g := grammar.New(parse.NewRegistry())
//	g.Define(ctx, "one_two", `seq(str("1"), str("2"))`)
//	g.Define(ctx, "digits", `alt(one_two, seq(str("3"), str("4")))`)
//
// A rule may only refer to rules defined before it, so every grammar is
// acyclic. All parsers of a [Grammar] come from one [parse.Registry] and
// share structure and work through it.
//
// Grammars are stored as YAML files (see [Load] and [Marshal]) and located
// through a search path built from $INCR_PATH (see [Find]).
package grammar
