package parse

import (
	"strconv"
	"strings"
)

// State is the resolution state carried by a [Result].
type State uint8

const (
	Pending State = iota // pending
	Matched              // matched
	Failed               // failed
)

// String returns the lower-case name of s.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Matched:
		return "matched"
	case Failed:
		return "failed"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// Result is the outcome of one step of a task.
//
// A Result in state [Pending] means the task has not resolved yet; step
// functions return it to suspend. A [Matched] result carries the produced
// Value and the Remaining (unconsumed) suffix of the task's input. A [Failed]
// result carries nothing.
//
// Value is a string for [Registry.Str] and [Registry.Pattern], a []any in
// declaration order for [Registry.Sequence], and the winning alternative's
// value for [Registry.Choice].
//
// A resolved result is shared by every holder of its task, so Value must be
// treated as read-only. Copy a sequence's slice before modifying it.
type Result struct {
	Value     any
	Remaining string
	State     State
}

// Success returns a [Matched] result.
func Success(value any, remaining string) Result {
	return Result{Value: value, Remaining: remaining, State: Matched}
}

// Failure returns a [Failed] result.
func Failure() Result { return Result{State: Failed} }

// OK reports whether r is a successful match.
func (r Result) OK() bool { return r.State == Matched }

// Resolved reports whether r is terminal.
func (r Result) Resolved() bool { return r.State != Pending }

// String renders r as Success(value, "remaining"), Failure or Pending.
func (r Result) String() string {
	switch r.State {
	case Matched:
		var sb strings.Builder

		sb.WriteString("Success(")
		writeValue(&sb, r.Value)
		sb.WriteString(", ")
		sb.WriteString(strconv.Quote(r.Remaining))
		sb.WriteByte(')')

		return sb.String()

	case Failed:
		return "Failure"

	default:
		return "Pending"
	}
}

// FormatValue renders a result value using quoted strings and bracketed lists,
// for example ["1", "2"].
func FormatValue(v any) string {
	var sb strings.Builder

	writeValue(&sb, v)

	return sb.String()
}

func writeValue(sb *strings.Builder, v any) {
	switch v := v.(type) {
	case string:
		sb.WriteString(strconv.Quote(v))

	case []any:
		sb.WriteByte('[')

		for i, elem := range v {
			if i > 0 {
				sb.WriteString(", ")
			}

			writeValue(sb, elem)
		}

		sb.WriteByte(']')

	case nil:
		sb.WriteString("nil")

	default:
		sb.WriteString(resultTypeName(v))
	}
}
