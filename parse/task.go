package parse

import (
	"log/slog"

	"github.com/ardnew/incr/log"
)

// stepFunc performs one unit of matching work.
// It returns a [Pending] result to suspend, or a terminal result to resolve.
type stepFunc func() Result

// Task is one attempt to match a [Parser] against a fixed input.
//
// Tasks are shared: every caller that asks the same parser for a task on the
// same input receives the same *Task, possibly already partially or fully
// resolved. Stepping it from any caller advances state visible to all of them.
// Callers must never assume exclusive ownership of a task.
//
// A task is not safe for concurrent use.
type Task struct {
	parser *Parser
	input  string
	next   stepFunc // nil once resolved
	result Result
	steps  int
}

// Step performs one unit of work and reports whether the task is resolved.
//
// Once resolved, Step returns true without doing anything. Otherwise the
// task's step function runs exactly once; composite tasks step their active
// children from within it, so one call may cascade through several nested
// levels before returning.
func (t *Task) Step() bool {
	if t.next == nil {
		return true
	}

	r := t.parser.registry

	r.enter()
	res := t.next()
	r.leave()

	t.steps++

	if res.State == Pending {
		return false
	}

	t.result = res
	t.next = nil // release child state held by the closure

	if r.logger.Allows(log.LevelTrace) {
		r.logger.Trace("task resolved",
			append(parserAttrs(t.parser),
				slog.String("state", res.State.String()),
				slog.Int("steps", t.steps),
				slog.Int("input_len", len(t.input)),
			)...,
		)
	}

	return true
}

// Done reports whether the task is resolved.
func (t *Task) Done() bool { return t.next == nil }

// Result returns the task's result and true if it is resolved.
// An unresolved task returns a [Pending] result and false. Every caller
// receives the same Value; see [Result].
func (t *Task) Result() (Result, bool) {
	if t.next != nil {
		return Result{}, false
	}

	return t.result, true
}

// Steps returns the number of times the task's step function has run.
func (t *Task) Steps() int { return t.steps }

// Parser returns the parser that created t.
func (t *Task) Parser() *Parser { return t.parser }

// Input returns the input t matches against.
func (t *Task) Input() string { return t.input }
