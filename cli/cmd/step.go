package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/incr/cli/cmd/stepper"
	"github.com/ardnew/incr/driver"
	"github.com/ardnew/incr/log"
	"github.com/ardnew/incr/parse"
)

// Step opens the interactive stepper on one input.
type Step struct {
	Input string `arg:"" help:"Input to step through." name:"input"`
}

// Run executes the step command. The final result is printed once the
// stepper exits.
func (s *Step) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in, out := streamsFrom(ctx)

	f, origin, err := sourceFrom(ctx).File(ctx)
	if err != nil {
		return err
	}

	reg := parse.NewRegistry(parse.WithLogger(log.Default()))

	p, err := builder(ctx, f)(reg)
	if err != nil {
		return parse.WrapError(err).With(slog.String("grammar", origin))
	}

	res, err := stepper.Run(ctx, p, s.Input,
		stepper.WithInput(in),
		stepper.WithOutput(out),
		stepper.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}

	return driver.Format(out, res, driver.Native)
}
