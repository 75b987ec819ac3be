package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		floor   Level
		logFunc func(Logger, string, ...slog.Attr)
		logged  bool
	}{
		{"trace below info", LevelInfo, Logger.Trace, false},
		{"debug below info", LevelInfo, Logger.Debug, false},
		{"info at info", LevelInfo, Logger.Info, true},
		{"error above warn", LevelWarn, Logger.Error, true},
		{"trace at trace", LevelTrace, Logger.Trace, true},
		{"warn below error", LevelError, Logger.Warn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := Make(&buf, WithLevel(tt.floor))
			tt.logFunc(logger, "test message")

			if got := buf.Len() > 0; got != tt.logged {
				t.Errorf("expected logged=%v, got output %q", tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_AllLevels_RenderNames(t *testing.T) {
	tests := []struct {
		logFunc func(Logger, string, ...slog.Attr)
		label   string
	}{
		{Logger.Trace, "TRACE"},
		{Logger.Debug, "DEBUG"},
		{Logger.Info, "INFO"},
		{Logger.Warn, "WARN"},
		{Logger.Error, "ERROR"},
	}

	for _, format := range []Format{FormatText, FormatJSON} {
		for _, pretty := range []bool{false, true} {
			for _, tt := range tests {
				name := format.String() + "/" + tt.label
				if pretty {
					name += "/pretty"
				}

				t.Run(name, func(t *testing.T) {
					var buf bytes.Buffer

					logger := Make(&buf,
						WithLevel(LevelTrace),
						WithFormat(format),
						WithPretty(pretty),
					)
					tt.logFunc(logger, "test message")

					out := buf.String()
					if !strings.Contains(out, "test message") {
						t.Errorf("message missing from %q", out)
					}

					if !strings.Contains(out, tt.label) {
						t.Errorf("expected level %q in %q", tt.label, out)
					}
				})
			}
		}
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
	logger.With(slog.String("key", "value")).Info("test message")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal log entry: %v", err)
	}

	if val := entry["key"]; val != "value" {
		t.Errorf("expected key=value in log entry, got %v", val)
	}
}

func TestLogger_Group_QualifiesAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
	logger.Group("task").Info("resolved", slog.Int("steps", 3))

	var entry struct {
		Task struct {
			Steps int `json:"steps"`
		} `json:"task"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal log entry: %v", err)
	}

	if entry.Task.Steps != 3 {
		t.Errorf("expected task.steps=3, got %s", buf.String())
	}
}

func TestLogger_Wrap_KeepsUnchangedSettings(t *testing.T) {
	var first, second bytes.Buffer

	logger := Make(&first, WithLevel(LevelDebug), WithFormat(FormatJSON))
	wrapped := logger.Wrap(WithOutput(&second))

	if wrapped.Level() != LevelDebug {
		t.Errorf("expected level debug, got %v", wrapped.Level())
	}

	if wrapped.Format() != FormatJSON {
		t.Errorf("expected format json, got %v", wrapped.Format())
	}

	wrapped.Debug("to second")

	if first.Len() != 0 || !strings.Contains(second.String(), "to second") {
		t.Errorf("expected output only in second writer, got %q and %q",
			first.String(), second.String())
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var l Logger

	l.Trace("test")
	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")

	if l.Allows(LevelError) {
		t.Error("zero value logger must not allow any level")
	}

	if l.With(slog.String("key", "value")).Logger != nil {
		t.Error("expected nil logger from zero value With")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("zero value logger reports defaults")
	}
}

func TestLogger_Allows(t *testing.T) {
	logger := Make(nil, WithLevel(LevelDebug))

	if logger.Allows(LevelTrace) {
		t.Error("trace is below debug")
	}

	if !logger.Allows(LevelDebug) || !logger.Allows(LevelError) {
		t.Error("debug and error are at or above debug")
	}
}

func TestLogger_Caller_ReportsCallSite(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithCaller(true), WithFormat(FormatJSON), WithPretty(false))
	logger.Info("where")

	var entry struct {
		Source struct {
			File string `json:"file"`
		} `json:"source"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal log entry: %v", err)
	}

	if !strings.HasSuffix(entry.Source.File, "log_test.go") {
		t.Errorf("expected call site in log_test.go, got %q", entry.Source.File)
	}
}

func TestLogger_NoTimeLayout_OmitsTime(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithTimeLayout("none"), WithFormat(FormatJSON), WithPretty(false))
	l.Info("test")

	if strings.Contains(buf.String(), `"time"`) {
		t.Errorf("expected no time field, got: %s", buf.String())
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer

		logger := Make(&buf, WithPretty(pretty))

		var wg sync.WaitGroup
		for i := range 100 {
			wg.Add(1)

			go func(id int) {
				defer wg.Done()
				logger.Info("concurrent message", slog.Int("id", id))
			}(i)
		}

		wg.Wait()

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 100 {
			t.Errorf("pretty=%v: expected 100 log lines, got %d", pretty, len(lines))
		}
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_Info_Pretty(b *testing.B) {
	var buf bytes.Buffer

	logger := Make(&buf)

	for i := 0; b.Loop(); i++ {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_Trace_Disabled(b *testing.B) {
	logger := Make(nil)

	for b.Loop() {
		logger.Trace("never emitted", slog.String("key", "value"))
	}
}
