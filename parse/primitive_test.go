package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drive steps t until it resolves and returns the result and the number of
// Step calls made, including the resolving one.
func drive(t *testing.T, task *Task) (Result, int) {
	t.Helper()

	const limit = 10_000

	for n := 1; n <= limit; n++ {
		if task.Step() {
			res, ok := task.Result()
			require.True(t, ok)

			return res, n
		}
	}

	t.Fatalf("task %s did not resolve within %d steps", task.Parser(), limit)

	return Result{}, 0
}

func TestStr(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		input   string
		want    Result
	}{
		{"exact", "abc", "abc", Success("abc", "")},
		{"prefix", "ab", "abcd", Success("ab", "cd")},
		{"mismatch", "ab", "ba", Failure()},
		{"input shorter", "abc", "ab", Failure()},
		{"empty input", "a", "", Failure()},
		{"empty literal", "", "xyz", Success("", "xyz")},
		{"multibyte", "héllo", "héllo wörld", Success("héllo", " wörld")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			task := r.Str(tt.literal).Task(tt.input)

			assert.False(t, task.Done())

			_, ok := task.Result()
			assert.False(t, ok, "result must be absent before the first step")

			assert.True(t, task.Step(), "str resolves within one step")

			got, ok := task.Result()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, task.Steps())
		})
	}
}

func TestPattern_Anchored(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		input string
		want  Result
	}{
		{"digits", "[0-9]+", "123abc", Success("123", "abc")},
		{"whole input", "[a-z]+", "abc", Success("abc", "")},
		{"match later in input", "[0-9]+", "a1", Failure()},
		{"no match", "[0-9]+", "abc", Failure()},
		{"empty match", "a*", "bbb", Success("", "bbb")},
		{"alternation stays anchored", "x|y", "zy", Failure()},
		{"leftmost first", "a|ab", "abc", Success("a", "bc")},
		{"caret is redundant", "^a", "ab", Success("a", "b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()

			p, err := r.Pattern(tt.expr)
			require.NoError(t, err)

			task := p.Task(tt.input)
			assert.True(t, task.Step(), "pattern resolves within one step")

			got, _ := task.Result()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPattern_Invalid(t *testing.T) {
	r := NewRegistry()

	for _, expr := range []string{"[", "a)|(b", "(?P<x"} {
		p, err := r.Pattern(expr)
		require.Error(t, err, "expr %q", expr)
		assert.ErrorIs(t, err, ErrPattern)
		assert.Nil(t, p)
	}

	assert.Equal(t, 0, r.Stats().Parsers, "failed patterns are not stored")
	assert.Panics(t, func() { r.MustPattern("(") })
}

func TestStep_IdempotentAfterResolution(t *testing.T) {
	r := NewRegistry()
	task := r.Sequence(r.Str("a"), r.Str("b")).Task("ab")

	want, n := drive(t, task)
	require.Equal(t, 2, n)

	steps := task.Steps()
	total := r.Stats().Steps

	for range 5 {
		assert.True(t, task.Step())
	}

	got, ok := task.Result()
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, steps, task.Steps(), "resolved tasks perform no work")
	assert.Equal(t, total, r.Stats().Steps)
}

func TestResult_String(t *testing.T) {
	tests := []struct {
		res  Result
		want string
	}{
		{Success([]any{"1", "2"}, ""), `Success(["1", "2"], "")`},
		{Success("a", "bc"), `Success("a", "bc")`},
		{Success([]any{}, "x"), `Success([], "x")`},
		{Success([]any{"a", []any{"b"}}, ""), `Success(["a", ["b"]], "")`},
		{Failure(), "Failure"},
		{Result{}, "Pending"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.String())
		})
	}
}
