package stepper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/incr/log"
	"github.com/ardnew/incr/parse"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestModel(t *testing.T, input string) (model, *parse.Parser) {
	t.Helper()

	r := parse.NewRegistry()
	p := r.Sequence(r.Str("a"), r.Str("b"), r.Str("c"))

	return newModel(context.Background(), p, input, log.Logger{}), p
}

func update(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()

	for _, msg := range msgs {
		next, _ := m.Update(msg)

		var ok bool

		m, ok = next.(model)
		require.True(t, ok)
	}

	return m
}

func TestModel_Step(t *testing.T) {
	m, _ := newTestModel(t, "abcd")

	m = update(t, m, enter)
	require.Len(t, m.trail, 1)
	assert.Equal(t, parse.Pending, m.trail[0].res.State)

	m = update(t, m, enter, enter)
	require.Len(t, m.trail, 3)
	assert.Equal(t, parse.Success([]any{"a", "b", "c"}, "d"), m.trail[2].res)
	assert.True(t, m.task.Done())

	m = update(t, m, enter)
	assert.Len(t, m.trail, 3, "stepping a resolved task records nothing")
	assert.Equal(t, "task is resolved", m.note)
	assert.Equal(t, 3, m.task.Steps())
}

func TestModel_Run(t *testing.T) {
	m, _ := newTestModel(t, "abx")

	m = update(t, m, runes("r"))
	assert.True(t, m.task.Done())

	res, ok := m.task.Result()
	require.True(t, ok)
	assert.Equal(t, parse.Failure(), res)
	assert.Len(t, m.trail, 3)
}

func TestModel_EditSharesTasks(t *testing.T) {
	m, p := newTestModel(t, "abc")

	m = update(t, m, enter, enter)
	first := m.task

	// Switch to another input, then back.
	m = update(t, m, runes("e"))
	require.True(t, m.editing)

	m.input.SetValue("xyz")
	m = update(t, m, enter)
	require.False(t, m.editing)
	assert.Equal(t, "xyz", m.task.Input())
	assert.Empty(t, m.trail)

	m = update(t, m, runes("e"))
	m.input.SetValue("abc")
	m = update(t, m, enter)

	assert.Same(t, first, m.task)
	assert.Same(t, p.Task("abc"), m.task)
	require.Len(t, m.trail, 1)
	assert.Equal(t, 2, m.trail[0].n)
	assert.Contains(t, m.note, "resumed after 2 step(s)")
}

func TestModel_EditCancel(t *testing.T) {
	m, _ := newTestModel(t, "abc")

	m = update(t, m, runes("e"), runes("q"))
	assert.False(t, m.quitting, "q is typed while editing")
	assert.Equal(t, "abcq", m.input.Value())

	m = update(t, m, esc)
	assert.False(t, m.editing)
	assert.Equal(t, "abc", m.task.Input())
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, "abc")

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(model).quitting)
	assert.Empty(t, next.View())
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t, "abc")

	view := m.View()
	assert.Contains(t, view, `sequence(str("a"), str("b"), str("c"))`)
	assert.Contains(t, view, `"abc"`)
	assert.Contains(t, view, "not stepped yet")
	assert.Contains(t, view, "step")

	m = update(t, m, runes("r"))
	view = m.View()
	assert.Contains(t, view, `Success(["a", "b", "c"], "")`)
	assert.Contains(t, view, "4 parsers")

	m = update(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
}

func TestEllipsize(t *testing.T) {
	assert.Equal(t, "abc", ellipsize("abc", 3))
	assert.Equal(t, "ab…", ellipsize("abcd", 3))
	assert.Equal(t, "abcd", ellipsize("abcd", 0))
}
