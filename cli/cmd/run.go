package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/incr/driver"
	"github.com/ardnew/incr/log"
	"github.com/ardnew/incr/parse"
	"github.com/ardnew/incr/pkg"
)

// Run parses each input with the start rule of the grammar and prints the
// results.
type Run struct {
	Trace    bool   `help:"Print the result of every step."                      short:"t"`
	MaxSteps int    `default:"0"      help:"Abort an input after N steps (0: no limit)." placeholder:"N"`
	Jobs     int    `default:"0"      help:"Inputs parsed at once (0: one per CPU)."     placeholder:"N" short:"j"`
	Format   string `default:"native" enum:"native,json,yaml"                            help:"Result format." short:"f"`

	Inputs []string `arg:"" help:"Inputs to parse; read one per line from stdin if none." name:"input" optional:""`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in, out := streamsFrom(ctx)

	enc, err := driver.ParseEncoding(r.Format)
	if err != nil {
		return err
	}

	f, origin, err := sourceFrom(ctx).File(ctx)
	if err != nil {
		return err
	}

	build := builder(ctx, f)

	// Surface grammar errors once rather than once per input.
	if _, err := build(parse.NewRegistry()); err != nil {
		return parse.WrapError(err).With(slog.String("grammar", origin))
	}

	inputs := r.Inputs
	if len(inputs) == 0 {
		if inputs, err = readLines(in); err != nil {
			return err
		}
	}

	opts := []driver.Option{
		driver.WithMaxSteps(r.MaxSteps),
		driver.WithJobs(r.Jobs),
		driver.WithLogger(log.Default()),
	}

	if r.Trace {
		// One input at a time keeps each trace contiguous.
		opts = append(opts, driver.WithJobs(1), driver.WithObserver(traceTo(out)))
	}

	outcomes, batchErr := driver.Batch(ctx, build, inputs, opts...)

	reports := make([]driver.Report, len(outcomes))
	for i, o := range outcomes {
		reports[i] = o.Report()
	}

	if err := driver.Write(ctx, out, enc, reports...); err != nil {
		return err
	}

	return batchErr
}

func traceTo(w io.Writer) driver.Observer {
	return func(s driver.Step) {
		fmt.Fprintf(w, "%q step %d: %s\n", s.Task.Input(), s.N, s.Result)
	}
}

// readLines returns the lines of r without their line endings.
// Carriage returns before a newline are dropped too.
func readLines(r io.Reader) ([]string, error) {
	var lines []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}

	if err := sc.Err(); err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	return lines, nil
}
