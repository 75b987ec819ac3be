// Package log is a small leveled logger over [log/slog].
//
// A [Logger] is made with [Make] and functional options, and adds a
// [LevelTrace] below slog's debug level for per-step diagnostics:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithPretty(false))
//
//	logger.Trace("task resolved", slog.Int("steps", 3))
//
// Loggers are immutable values. [Logger.Wrap] and [Logger.With] return new
// loggers, and the zero Logger silently discards everything.
//
// The package also keeps a default logger, reconfigured with [Config] and
// used by the package-level functions such as [Info] and [ErrorContext].
//
// # Pretty output
//
// With [WithPretty] enabled, records are colorized with lipgloss when the
// output is a terminal. Text records stay on one line, JSON records are
// indented, and grouped attributes are flattened to dotted keys.
package log
