package parse

import (
	"iter"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/ardnew/incr/log"
	"github.com/ardnew/incr/memo"
)

// Registry owns both memoization tiers of a grammar-compilation session: the
// parser table that shares structurally equal parsers, and (through each
// parser) the task tables that share work on equal inputs.
//
// Registries are independent. Parsers from one registry cannot be composed
// with parsers from another, and dropping a registry drops every parser and
// task it built. Nothing is evicted while the registry is alive.
//
// Constructing parsers is safe for concurrent use. Stepping tasks is not:
// the tasks of one registry must be stepped from a single goroutine.
type Registry struct {
	parsers  *memo.Table[key, *Parser]
	logger   log.Logger
	nextID   atomic.Uint64
	tasks    atomic.Int64
	steps    atomic.Int64
	depth    int
	maxDepth int
}

// Stats summarizes the work performed through a [Registry].
type Stats struct {
	Parsers    int        // distinct parsers constructed
	Tasks      int        // distinct (parser, input) tasks created
	Steps      int        // step functions run, across all tasks
	MaxDepth   int        // deepest cascade of nested steps observed
	ParserMemo memo.Stats // parser-construction table counters
	TaskMemo   memo.Stats // task tables, summed over all parsers
}

// Option configures a [Registry].
type Option func(*Registry)

// WithLogger sets the structured logger used for trace-level diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry returns an empty [Registry].
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		parsers: memo.New[key, *Parser](
			memo.WithHasher(hashKey),
			memo.WithEqual(equalKey),
		),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Parsers returns an iterator over the registry's parsers in construction
// order.
func (r *Registry) Parsers() iter.Seq[*Parser] {
	return func(yield func(*Parser) bool) {
		for _, p := range r.parsers.All() {
			if !yield(p) {
				return
			}
		}
	}
}

// Stats returns a snapshot of the registry's counters.
func (r *Registry) Stats() Stats {
	s := Stats{
		Parsers:    r.parsers.Len(),
		Tasks:      int(r.tasks.Load()),
		Steps:      int(r.steps.Load()),
		MaxDepth:   r.maxDepth,
		ParserMemo: r.parsers.Stats(),
	}

	for p := range r.Parsers() {
		ts := p.tasks.Stats()
		s.TaskMemo.Hits += ts.Hits
		s.TaskMemo.Misses += ts.Misses
		s.TaskMemo.Entries += ts.Entries
		s.TaskMemo.Collisions += ts.Collisions
	}

	return s
}

// construct returns the shared parser for (kind, text, children), building it
// with init on first use. An error from init is returned and nothing is stored.
func (r *Registry) construct(
	kind Kind,
	text string,
	children []*Parser,
	init func(*Parser) error,
) (*Parser, error) {
	for i, c := range children {
		switch {
		case c == nil:
			panic(ErrNilParser.With(
				slog.String("kind", kind.String()),
				slog.Int("operand", i),
			))

		case c.registry != r:
			panic(ErrForeignParser.With(
				slog.String("kind", kind.String()),
				slog.Int("operand", i),
				slog.String("parser", c.String()),
			))
		}
	}

	p, loaded, err := r.parsers.LoadOrCompute(
		makeKey(kind, text, children),
		func() (*Parser, error) {
			p := &Parser{
				registry: r,
				tasks:    memo.New[string, *Task](),
				children: slices.Clone(children),
				text:     text,
				kind:     kind,
			}

			if init != nil {
				if err := init(p); err != nil {
					return nil, err
				}
			}

			p.id = r.nextID.Add(1)
			p.name = formatName(kind, text, p.children)

			return p, nil
		},
	)
	if err != nil {
		return nil, err
	}

	if !loaded && r.logger.Allows(log.LevelTrace) {
		r.logger.Trace("parser constructed", parserAttrs(p)...)
	}

	return p, nil
}

func (r *Registry) newTask(p *Parser, input string) *Task {
	t := &Task{parser: p, input: input}

	switch p.kind {
	case KindStr:
		t.next = matchLiteral(p.text, input)

	case KindPattern:
		t.next = matchPattern(p.re, input)

	case KindSequence:
		t.next = newSequenceTask(p.children, input).step

	case KindChoice:
		t.next = newChoiceTask(p.children, input).step

	default:
		t.next = Failure
	}

	r.tasks.Add(1)

	if r.logger.Allows(log.LevelTrace) {
		r.logger.Trace("task created",
			append(parserAttrs(p), slog.Int("input_len", len(input)))...,
		)
	}

	return t
}

// enter and leave bracket a step function so the registry can record how
// deeply one outer Step cascades.
func (r *Registry) enter() {
	r.depth++
	if r.depth > r.maxDepth {
		r.maxDepth = r.depth
	}
}

func (r *Registry) leave() {
	r.depth--
	r.steps.Add(1)
}
