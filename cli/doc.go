// Package cli contains the command line interface for incr.
//
// # Usage
//
//	incr [flags] [run] [input...]
//	incr step <input>
//	incr fmt [--format=native|yaml]
//	incr init [--force]
//
// run is the default command: each input argument, or each line of stdin if
// there are none, is parsed with the start rule of the selected grammar.
//
// # Grammar Selection
//
//   - --grammar/-g: grammar file name or path
//   - --expr/-e: inline expression, appended to the grammar as rule "main"
//   - --start: start rule override
//   - --path: directory searched for grammar files (repeatable)
//
// Grammar names are also searched for in the directories listed in
// $INCR_PATH and finally in the configuration directory, where init writes
// the default grammar used when neither --grammar nor --expr is given.
//
// # Configuration File
//
// Flag defaults are read from config.yaml in the configuration directory
// (for example ~/.config/incr/config.yaml), a flat mapping from flag name to
// value. init writes one holding the current flag values. Command-line flags
// override the file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
// The build adds these flags:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/incr/pprof)
//
// # Examples
//
//	# Parse two inputs with an inline grammar
//	incr -e 'seq(pattern("[0-9]+"), str(";"))' 12\; x\;
//
//	# Trace every step as JSON lines
//	incr -g arith --trace --format=json < inputs.txt
//
//	# Debug logging with CPU profiling
//	incr --log-level=debug --pprof-mode=cpu run 1+2
package cli
