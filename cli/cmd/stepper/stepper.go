package stepper

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/incr/log"
	"github.com/ardnew/incr/parse"
)

// ErrStepper is returned when the terminal program fails.
var ErrStepper = parse.NewError("stepper")

// trailLen is the number of most recent steps shown.
const trailLen = 12

const defaultWidth = 80

// Styles.
var (
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(8)
	parserStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	inputStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(5).Align(lipgloss.Right)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	matchedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// entry records one step of the current task.
type entry struct {
	n   int
	res parse.Result
}

// model is the Bubble Tea model for the stepper.
type model struct {
	ctxFunc  func() context.Context
	parser   *parse.Parser
	task     *parse.Task
	trail    []entry
	note     string // one-line status shown under the trail
	keys     keyMap
	help     help.Model
	input    textinput.Model
	logger   log.Logger
	width    int
	editing  bool
	quitting bool
}

// Run opens the stepper on the task of p for input and blocks until the user
// quits. It returns the result of the task shown last, which is [parse.Pending]
// if it was left unresolved.
func Run(ctx context.Context, p *parse.Parser, input string, opts ...Option) (parse.Result, error) {
	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(ctx, "stepper start",
		slog.String("parser", p.String()),
		slog.Int("input_len", len(input)),
	)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}

	if cfg.in != nil {
		progOpts = append(progOpts, tea.WithInput(cfg.in))
	}

	if cfg.out != nil {
		progOpts = append(progOpts, tea.WithOutput(cfg.out))
	}

	final, err := tea.NewProgram(newModel(ctx, p, input, cfg.logger), progOpts...).Run()
	if err != nil {
		return parse.Result{}, ErrStepper.Wrap(err)
	}

	m, ok := final.(model)
	if !ok {
		return parse.Result{}, nil
	}

	res, _ := m.task.Result()

	return res, nil
}

func newModel(ctx context.Context, p *parse.Parser, input string, logger log.Logger) model {
	ti := textinput.New()
	ti.Prompt = labelStyle.Render("input")
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	keys := newKeyMap()
	keys.editing(false)

	m := model{
		ctxFunc: func() context.Context { return ctx },
		parser:  p,
		keys:    keys,
		help:    help.New(),
		input:   ti,
		logger:  logger,
		width:   defaultWidth,
	}

	return m.open(input)
}

// open switches to the task of m.parser for input. A shared task that some
// earlier view already advanced keeps its progress.
func (m model) open(input string) model {
	m.task = m.parser.Task(input)
	m.trail = nil
	m.note = ""

	if n := m.task.Steps(); n > 0 {
		res, _ := m.task.Result()
		m.trail = append(m.trail, entry{n: n, res: res})
		m.note = "shared task resumed after " + strconv.Itoa(n) + " step(s)"
	}

	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleEdit(msg)
		}

		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(m.input.Prompt) - 2

		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "stepper keypress",
		slog.String("key", msg.String()),
	)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

		return m, tea.Quit

	case key.Matches(msg, m.keys.Step):
		return m.step(), nil

	case key.Matches(msg, m.keys.Run):
		for !m.task.Done() {
			m = m.step()
		}

		return m, nil

	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.keys.editing(true)
		m.input.SetValue(m.task.Input())
		m.input.CursorEnd()
		cmd := m.input.Focus()

		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m model) handleEdit(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		m = m.stopEditing().open(m.input.Value())

		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		return m.stopEditing(), nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) stopEditing() model {
	m.editing = false
	m.keys.editing(false)
	m.input.Blur()

	return m
}

// step advances the task once. Stepping a resolved task only notes it.
func (m model) step() model {
	if m.task.Done() {
		m.note = "task is resolved"

		return m
	}

	m.task.Step()

	res, _ := m.task.Result()
	m.trail = append(m.trail, entry{n: m.task.Steps(), res: res})
	m.note = ""

	m.logger.TraceContext(m.ctxFunc(), "stepper step",
		slog.Int("step", m.task.Steps()),
		slog.String("state", res.State.String()),
	)

	return m
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(labelStyle.Render("parser"))
	b.WriteString(parserStyle.Render(ellipsize(m.parser.String(), m.width-8)))
	b.WriteString("\n")

	if m.editing {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(labelStyle.Render("input"))
		b.WriteString(inputStyle.Render(strconv.Quote(m.task.Input())))
	}

	b.WriteString("\n")

	st := m.parser.Registry().Stats()
	b.WriteString(labelStyle.Render("memo"))
	b.WriteString(hintStyle.Render(fmt.Sprintf(
		"%d parsers, %d tasks, %d steps, depth %d",
		st.Parsers, st.Tasks, st.Steps, st.MaxDepth,
	)))
	b.WriteString("\n\n")

	trail := m.trail
	if len(trail) > trailLen {
		trail = trail[len(trail)-trailLen:]
	}

	for _, e := range trail {
		b.WriteString(stepStyle.Render(strconv.Itoa(e.n)))
		b.WriteString("  ")
		b.WriteString(renderResult(e.res))
		b.WriteString("\n")
	}

	if len(trail) == 0 {
		b.WriteString(hintStyle.Render("not stepped yet"))
		b.WriteString("\n")
	}

	if m.note != "" {
		b.WriteString(hintStyle.Render(m.note))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func renderResult(res parse.Result) string {
	switch res.State {
	case parse.Matched:
		return matchedStyle.Render(res.String())
	case parse.Failed:
		return failedStyle.Render(res.String())
	default:
		return pendingStyle.Render(res.String())
	}
}

// ellipsize truncates s to width runes, marking the cut with "…".
func ellipsize(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}

	return string(r[:width-1]) + "…"
}
