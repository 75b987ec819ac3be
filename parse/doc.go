// Package parse is an incremental parser-combinator engine.
//
// Parsers are built from two primitives, [Registry.Str] and
// [Registry.Pattern], and composed with [Registry.Sequence] and
// [Registry.Choice]. Matching does not happen in one blocking call: a parser
// hands out a [Task] for an input, and the caller advances the task one
// [Task.Step] at a time until it resolves.
//
// # Example
//
//	r := parse.NewRegistry()
//	p := r.Choice(
//		r.Sequence(r.Str("1"), r.Str("2")),
//		r.Sequence(r.Str("3"), r.Str("4")),
//	)
//
//	t := p.Task("34")
//	for !t.Step() {
//	}
//
//	res, _ := t.Result() // Success(["3", "4"], "")
//
// # Stepping
//
// Each call to Step runs the task's step function once. Primitive tasks
// resolve on their first step. A sequence steps its active operand; a choice
// steps every unresolved alternative once per call. Because composites step
// their children from inside their own step function, a single outer Step
// cascades depth-first through every level of the tree that has work to do.
// The cascade is bounded by the nesting depth of the parser, which
// [Registry.Stats] reports as MaxDepth.
//
// Once a task resolves its result never changes, and further calls to Step
// return true without doing any work. There is no cancellation: a task that
// is no longer stepped simply stays pending.
//
// # Sharing
//
// A [Registry] memoizes at two levels. Constructing a parser from the same
// combinator and deeply-equal operands returns the same *Parser, so
// independently written grammars that spell out the same sub-grammar share
// it. Each parser then memoizes its tasks by input, so asking for the same
// (parser, input) pair returns the same *Task. Together these let two
// unrelated composites that reach a common sub-grammar at a common remaining
// input perform that sub-match exactly once.
//
// The tables are append-only and live as long as their registry. Use one
// registry per grammar session and let it go when the session ends.
//
// # Failure
//
// A failed match is an ordinary terminal [Result], never a Go error or a
// panic. The only recovery is structural: a choice tries its other
// alternatives. Go errors are reserved for construction problems, such as a
// pattern that does not compile ([ErrPattern]). Composing nil operands or
// operands from a different registry is a programming error and panics with
// [ErrNilParser] or [ErrForeignParser].
package parse
