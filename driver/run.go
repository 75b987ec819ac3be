package driver

import (
	"context"
	"log/slog"

	"github.com/ardnew/incr/parse"
)

// ErrStepLimit is returned when a task does not resolve within the step
// limit set by [WithMaxSteps].
var ErrStepLimit = parse.NewError("step limit reached")

// Step describes one call of [parse.Task.Step] made by [Run].
type Step struct {
	Task   *parse.Task
	N      int          // 1 for the first step of the run
	Done   bool         // whether the task resolved
	Result parse.Result // Pending until Done
}

// Observer receives each [Step] of a run.
type Observer func(Step)

// Run steps task until it resolves and returns its result.
//
// The context is checked before each step; a canceled run returns the
// context's cause and leaves the task pending but intact, so it can be
// resumed later. A task that was already resolved returns after one step.
func Run(ctx context.Context, task *parse.Task, opts ...Option) (parse.Result, error) {
	cfg := makeConfig(opts...)

	for n := 1; ; n++ {
		if ctx.Err() != nil {
			return parse.Result{}, context.Cause(ctx)
		}

		if cfg.maxSteps > 0 && n > cfg.maxSteps {
			cfg.logger.WarnContext(ctx, "step limit reached",
				slog.String("parser", task.Parser().String()),
				slog.Int("max_steps", cfg.maxSteps),
			)

			return parse.Result{}, ErrStepLimit.With(
				slog.Int("max_steps", cfg.maxSteps),
				slog.Int("input_len", len(task.Input())),
			)
		}

		done := task.Step()
		res, _ := task.Result()

		if cfg.observer != nil {
			cfg.observer(Step{Task: task, N: n, Done: done, Result: res})
		}

		if done {
			return res, nil
		}
	}
}

// Parse runs p against input; it is shorthand for Run(ctx, p.Task(input)).
func Parse(ctx context.Context, p *parse.Parser, input string, opts ...Option) (parse.Result, error) {
	return Run(ctx, p.Task(input), opts...)
}
