package cmd

import "github.com/ardnew/incr/parse"

var (
	ErrWriteConfig = parse.NewError("write configuration file")
	ErrFileExists  = parse.NewError("file exists (use --force to overwrite)")
	ErrNoGrammar   = parse.NewError("no grammar (use --grammar, --expr or run init)")
)
