package parse

import "slices"

// Sequence returns the parser that matches each of parsers in order, each
// against the input left over by the one before it.
//
// A sequence task steps only its active operand. When that operand matches,
// its value is appended and the next operand's task is created against the
// remaining input, to be stepped on the following call. When it fails, the
// sequence fails at once and later operands are never instantiated. After the
// last operand matches, the sequence resolves to Success(values, rest) where
// values holds every operand's value in declaration order.
//
// The empty sequence resolves on its first step to Success([]any{}, input).
//
// Sequence panics if any operand is nil or was built by another registry.
func (r *Registry) Sequence(parsers ...*Parser) *Parser {
	p, _ := r.construct(KindSequence, "", parsers, nil)

	return p
}

// sequenceTask is the saved state of a sequence between steps.
type sequenceTask struct {
	parsers []*Parser
	values  []any
	active  *Task
	cursor  string
	index   int
}

func newSequenceTask(parsers []*Parser, input string) *sequenceTask {
	s := &sequenceTask{
		parsers: parsers,
		values:  make([]any, 0, len(parsers)),
		cursor:  input,
	}

	if len(parsers) > 0 {
		s.active = parsers[0].Task(input)
	}

	return s
}

func (s *sequenceTask) step() Result {
	if s.active == nil {
		return Success(s.values, s.cursor)
	}

	if !s.active.Step() {
		return Result{}
	}

	res, _ := s.active.Result()
	if !res.OK() {
		return Failure()
	}

	s.values = append(s.values, res.Value)
	s.cursor = res.Remaining
	s.index++

	if s.index == len(s.parsers) {
		s.active = nil

		// Full capacity: an append by any holder reallocates.
		return Success(slices.Clip(s.values), s.cursor)
	}

	s.active = s.parsers[s.index].Task(s.cursor)

	return Result{}
}
