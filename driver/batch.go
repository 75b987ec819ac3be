package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/incr/parse"
	"github.com/ardnew/incr/pkg"
)

// Builder constructs the parser to run with reg.
// [Batch] calls it once per input, each time with a fresh registry.
type Builder func(reg *parse.Registry) (*parse.Parser, error)

// Outcome is the result of one input of a [Batch].
type Outcome struct {
	Input  string
	Result parse.Result
	Steps  int
	Err    error
}

// Batch runs the parser made by build over each input, at most
// [WithJobs] at a time, and returns one [Outcome] per input in input order.
//
// Each input is run in its own registry, so inputs share no parsers or
// tasks and may be stepped in parallel. The registries log through the
// [WithLogger] logger. A failing input does not stop the
// others: its error is recorded in its Outcome and the errors of all inputs
// are returned together as a [pkg.Error], each prefixed with its quoted input.
func Batch(ctx context.Context, build Builder, inputs []string, opts ...Option) ([]Outcome, error) {
	cfg := makeConfig(opts...)
	out := make([]Outcome, len(inputs))
	began := time.Now()

	var g errgroup.Group

	g.SetLimit(cfg.jobs)

	for i, input := range inputs {
		g.Go(func() error {
			out[i] = runOne(ctx, cfg, build, input, opts)

			return nil
		})
	}

	_ = g.Wait()

	var errs []error

	for _, o := range out {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", o.Input, o.Err))
		}
	}

	cfg.logger.DebugContext(ctx, "batch finished",
		slog.Int("inputs", len(inputs)),
		slog.Int("jobs", cfg.jobs),
		slog.Int("errors", len(errs)),
		slog.Duration("elapsed", time.Since(began)),
	)

	if len(errs) == 0 {
		return out, nil
	}

	return out, pkg.Error(errs)
}

func runOne(ctx context.Context, cfg config, build Builder, input string, opts []Option) Outcome {
	o := Outcome{Input: input}

	p, err := build(parse.NewRegistry(parse.WithLogger(cfg.logger)))
	if err != nil {
		o.Err = err

		return o
	}

	task := p.Task(input)

	o.Result, o.Err = Run(ctx, task, opts...)
	o.Steps = task.Steps()

	return o
}
