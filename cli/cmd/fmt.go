package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/incr/grammar"
	"github.com/ardnew/incr/log"
	"github.com/ardnew/incr/parse"
)

// Fmt prints the rules of the grammar in canonical form.
type Fmt struct {
	Format string `default:"native" enum:"native,yaml" help:"Output format." short:"f"`
}

// Run executes the fmt command.
//
// The native format prints one "name = parser" line per rule, where parser
// is the rule's canonical expression with referenced rules expanded, and
// marks the start rule with a leading "*". The yaml format prints a grammar
// file that loads back into the same grammar.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	_, out := streamsFrom(ctx)

	file, origin, err := sourceFrom(ctx).File(ctx)
	if err != nil {
		return err
	}

	g, err := file.Build(ctx, grammar.WithLogger(log.Default()))
	if err != nil {
		return parse.WrapError(err).With(slog.String("grammar", origin))
	}

	if f.Format == "yaml" {
		return grammar.Marshal(ctx, g, out)
	}

	start := g.StartName()

	for name, p := range g.Rules() {
		mark := " "
		if name == start {
			mark = "*"
		}

		if _, err := fmt.Fprintf(out, "%s%s = %s\n", mark, name, p); err != nil {
			return err
		}
	}

	return nil
}
