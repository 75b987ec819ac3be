package parse

import "strings"

// Str returns the parser that matches literal at the start of its input.
//
// Its tasks resolve on their first step: to Success(literal, rest) when the
// input starts with literal, and to Failure otherwise. The empty literal
// matches every input without consuming anything.
func (r *Registry) Str(literal string) *Parser {
	p, _ := r.construct(KindStr, literal, nil, nil)

	return p
}

func matchLiteral(literal, input string) stepFunc {
	return func() Result {
		rest, ok := strings.CutPrefix(input, literal)
		if !ok {
			return Failure()
		}

		return Success(literal, rest)
	}
}
