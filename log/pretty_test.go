package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// Output to a bytes.Buffer is not a terminal, so pretty records carry no
// color sequences and can be compared as plain text.
func TestPrettyText_Layout(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"), WithFormat(FormatText))
	logger.With(slog.String("grammar", "digits")).
		Group("task").
		Info("task resolved",
			slog.Int("steps", 3),
			slog.String("input", "1 2"),
			slog.Any("err", errors.New("boom")),
		)

	want := `INFO  task resolved grammar=digits task.steps=3 task.input="1 2" task.err=boom` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestPrettyJSON_Layout(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"), WithFormat(FormatJSON))
	logger.Warn("slow", slog.Group("task", slog.Int("steps", 10_000)))

	want := strings.Join([]string{
		"{",
		`  "level": "WARN",`,
		`  "msg": "slow",`,
		`  "task.steps": 10000`,
		"}",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestPretty_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelWarn))
	logger.Info("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
