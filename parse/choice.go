package parse

// Choice returns the parser that matches the first of parsers, in declaration
// order, to succeed against the input.
//
// A choice task creates one task per alternative, all against the same input,
// when the choice task itself is created. Each step advances every unresolved
// alternative once, in declaration order, so no alternative can starve
// another. After the round, the choice resolves to the result of the
// earliest-declared alternative that has matched; if every alternative has
// failed it resolves to Failure; otherwise it stays pending.
//
// The same alternative listed twice shares one task, which is stepped once
// per round.
//
// The empty choice resolves to Failure on its first step.
//
// Choice panics if any operand is nil or was built by another registry.
func (r *Registry) Choice(parsers ...*Parser) *Parser {
	p, _ := r.construct(KindChoice, "", parsers, nil)

	return p
}

// choiceTask is the saved state of a choice between steps.
type choiceTask struct {
	tasks []*Task
}

func newChoiceTask(parsers []*Parser, input string) *choiceTask {
	c := &choiceTask{tasks: make([]*Task, len(parsers))}

	for i, p := range parsers {
		c.tasks[i] = p.Task(input)
	}

	return c
}

func (c *choiceTask) step() Result {
	for i, t := range c.tasks {
		if t.Done() || c.seen(i) {
			continue
		}

		t.Step()
	}

	failed := 0

	for _, t := range c.tasks {
		res, ok := t.Result()

		switch {
		case !ok:
			continue

		case res.OK():
			return res

		default:
			failed++
		}
	}

	if failed == len(c.tasks) {
		return Failure()
	}

	return Result{}
}

// seen reports whether the task at index i also appears earlier in the list.
func (c *choiceTask) seen(i int) bool {
	for _, t := range c.tasks[:i] {
		if t == c.tasks[i] {
			return true
		}
	}

	return false
}
