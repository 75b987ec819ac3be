package stepper

import (
	"io"

	"github.com/ardnew/incr/log"
)

// Option configures [Run].
type Option func(config) config

type config struct {
	in     io.Reader
	out    io.Writer
	logger log.Logger
}

func makeConfig(opts ...Option) config {
	var c config

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// WithInput reads key presses from r instead of the terminal.
func WithInput(r io.Reader) Option {
	return func(c config) config {
		c.in = r

		return c
	}
}

// WithOutput renders to w instead of the terminal.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		c.out = w

		return c
	}
}

// WithLogger sets the logger for key and step events.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}
