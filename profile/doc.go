// Package profile starts optional runtime profiling of incr.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] always returns a
// stopper that does nothing, so callers never need their own build tags.
//
// With the tag, profiles are written by [github.com/pkg/profile] to the
// directory named by [Profiler.Path], one file per mode (cpu.pprof,
// mem.pprof, and so on), and the [net/http/pprof] handlers are registered on
// [net/http.DefaultServeMux]. Inspect a profile with:
//
//	go tool pprof -http=: ./incr $XDG_CACHE_HOME/incr/pprof/cpu.pprof
//
// Compiling a large grammar and running it over many inputs is dominated by
// memo table lookups, so the "cpu" and "allocs" modes are the most useful.
package profile

// Tag is the build tag that enables profiling.
const Tag = "pprof"
