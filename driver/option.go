package driver

import (
	"runtime"

	"github.com/ardnew/incr/log"
)

// Option configures [Run] and [Batch].
type Option func(config) config

type config struct {
	logger   log.Logger
	observer Observer
	maxSteps int
	jobs     int
}

func makeConfig(opts ...Option) config {
	c := config{jobs: runtime.GOMAXPROCS(0)}

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// WithMaxSteps stops a run with [ErrStepLimit] once n steps were taken
// without resolving. Zero or less means no limit.
func WithMaxSteps(n int) Option {
	return func(c config) config {
		c.maxSteps = n

		return c
	}
}

// WithObserver calls fn after every step.
// In [Batch], fn is called from several goroutines at once.
func WithObserver(fn Observer) Option {
	return func(c config) config {
		c.observer = fn

		return c
	}
}

// WithJobs sets how many inputs [Batch] runs at once.
// Zero or less means [runtime.GOMAXPROCS].
func WithJobs(n int) Option {
	return func(c config) config {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}

		c.jobs = n

		return c
	}
}

// WithLogger sets the logger for run diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}
