//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of incr embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name and the base name of its config and cache
	// directories.
	Name = "incr"
	// Description is a one-line summary used in help output.
	Description = "Incremental parser-combinator engine"
	// EnvPrefix prefixes every environment variable incr reads.
	EnvPrefix = "INCR_"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
