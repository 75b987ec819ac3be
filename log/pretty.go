package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of one output stream. Styles are bound to a
// renderer for that stream, so color is dropped when it is not a terminal.
type palette struct {
	time, key, punct, msg, source, str, num, err lipgloss.Style

	level map[slog.Level]lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return palette{
		time:   fg("8"),
		key:    fg("4"),
		punct:  fg("8"),
		msg:    r.NewStyle().Bold(true),
		source: fg("8").Italic(true),
		str:    fg("7"),
		num:    fg("5"),
		err:    fg("1"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("8"),
			slog.Level(LevelDebug): fg("6"),
			slog.Level(LevelInfo):  fg("2"),
			slog.Level(LevelWarn):  fg("3").Bold(true),
			slog.Level(LevelError): fg("1").Bold(true),
		},
	}
}

func (p palette) levelStyle(l slog.Level) lipgloss.Style {
	for _, at := range []slog.Level{
		slog.Level(LevelError),
		slog.Level(LevelWarn),
		slog.Level(LevelInfo),
		slog.Level(LevelDebug),
	} {
		if l >= at {
			return p.level[at]
		}
	}

	return p.level[slog.Level(LevelTrace)]
}

// field is an attribute flattened to a dotted key.
type field struct {
	key string
	val slog.Value
	err bool
}

type prettyStream struct {
	mu     sync.Mutex
	out    io.Writer
	opts   slog.HandlerOptions
	format Format
	style  palette
}

// prettyHandler renders records for a human reading a terminal. Text
// records go on one line; JSON records are indented. Group attributes are
// flattened to dotted keys in both formats.
type prettyHandler struct {
	*prettyStream

	groups []string
	attrs  []field
}

func newPrettyHandler(w io.Writer, format Format, opts *slog.HandlerOptions) *prettyHandler {
	s := &prettyStream{out: w, format: format, style: makePalette(w)}
	if opts != nil {
		s.opts = *opts
	}

	return &prettyHandler{prettyStream: s}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.attrs = slices.Clip(c.attrs)

	for _, a := range attrs {
		c.attrs = h.collect(c.attrs, h.groups, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(c.groups), name)

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = h.builtin(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = h.builtin(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		fields = h.builtin(fields, slog.String(slog.SourceKey,
			filepath.Base(f.File)+":"+strconv.Itoa(f.Line)))
	}

	fields = h.builtin(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = h.collect(fields, h.groups, a)

		return true
	})

	var buf bytes.Buffer

	if h.format == FormatJSON {
		h.renderJSON(&buf, fields, r.Level)
	} else {
		h.renderText(&buf, fields, r.Level)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.out.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) builtin(fields []field, a slog.Attr) []field {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Key == "" {
		return fields
	}

	return append(fields, field{key: a.Key, val: a.Value.Resolve()})
}

func (h *prettyHandler) collect(fields []field, groups []string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			groups = append(slices.Clip(groups), a.Key)
		}

		for _, g := range a.Value.Group() {
			fields = h.collect(fields, groups, g)
		}

		return fields
	}

	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Equal(slog.Attr{}) {
		return fields
	}

	_, isErr := a.Value.Any().(error)

	return append(fields, field{
		key: strings.Join(append(slices.Clip(groups), a.Key), "."),
		val: a.Value,
		err: isErr,
	})
}

func (h *prettyHandler) renderText(buf *bytes.Buffer, fields []field, level slog.Level) {
	s := h.style

	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		switch f.key {
		case slog.TimeKey:
			buf.WriteString(s.time.Render(f.val.String()))
		case slog.LevelKey:
			buf.WriteString(s.levelStyle(level).Render(fmt.Sprintf("%-5s", f.val.String())))
		case slog.SourceKey:
			buf.WriteString(s.source.Render(f.val.String()))
		case slog.MessageKey:
			buf.WriteString(s.msg.Render(f.val.String()))
		default:
			buf.WriteString(s.key.Render(f.key))
			buf.WriteString(s.punct.Render("="))
			buf.WriteString(h.textValue(f))
		}
	}

	buf.WriteByte('\n')
}

func (h *prettyHandler) textValue(f field) string {
	s := h.style

	switch f.val.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindBool, slog.KindDuration:
		return s.num.Render(f.val.String())
	case slog.KindTime:
		return s.str.Render(f.val.Time().Format(time.RFC3339Nano))
	}

	text := f.val.String()
	if needsQuote(text) {
		text = strconv.Quote(text)
	}

	if f.err {
		return s.err.Render(text)
	}

	return s.str.Render(text)
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}

	for _, r := range s {
		if unicode.IsSpace(r) || r == '"' || r == '=' || !unicode.IsPrint(r) {
			return true
		}
	}

	return false
}

func (h *prettyHandler) renderJSON(buf *bytes.Buffer, fields []field, level slog.Level) {
	s := h.style

	buf.WriteString(s.punct.Render("{"))
	buf.WriteByte('\n')

	for i, f := range fields {
		key, _ := json.Marshal(f.key)

		buf.WriteString("  ")
		buf.WriteString(s.key.Render(string(key)))
		buf.WriteString(s.punct.Render(":"))
		buf.WriteByte(' ')

		val := string(jsonValue(f.val))

		switch {
		case f.key == slog.LevelKey:
			val = s.levelStyle(level).Render(val)
		case f.key == slog.TimeKey:
			val = s.time.Render(val)
		case f.err:
			val = s.err.Render(val)
		case f.val.Kind() == slog.KindString:
			val = s.str.Render(val)
		default:
			val = s.num.Render(val)
		}

		buf.WriteString(val)

		if i < len(fields)-1 {
			buf.WriteString(s.punct.Render(","))
		}

		buf.WriteByte('\n')
	}

	buf.WriteString(s.punct.Render("}"))
	buf.WriteByte('\n')
}

func jsonValue(v slog.Value) []byte {
	var x any

	switch v.Kind() {
	case slog.KindString:
		x = v.String()
	case slog.KindInt64:
		return strconv.AppendInt(nil, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(nil, v.Uint64(), 10)
	case slog.KindFloat64:
		x = v.Float64()
	case slog.KindBool:
		return strconv.AppendBool(nil, v.Bool())
	case slog.KindDuration:
		x = v.Duration().String()
	case slog.KindTime:
		x = v.Time().Format(time.RFC3339Nano)
	default:
		if err, ok := v.Any().(error); ok {
			x = err.Error()
		} else {
			x = v.Any()
		}
	}

	b, err := json.Marshal(x)
	if err != nil {
		b, _ = json.Marshal(fmt.Sprint(x))
	}

	return b
}
