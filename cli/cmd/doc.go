// Package cmd provides the subcommands of incr: run, step, fmt and init.
//
// Commands read the grammar selected by the global [Source] flags and the
// standard streams from their [context.Context], so tests can substitute
// both with [WithSource] and [WithStreams].
package cmd

var (
	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// GrammarIdentifier is the kong variable identifier containing the path
	// of the default grammar file written by [Init].
	GrammarIdentifier = "grammar"

	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"
)
