package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/incr/log"
	"github.com/ardnew/incr/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// starterGrammar is written by [Init] as the default grammar.
const starterGrammar = `# Grammar used by incr when neither --grammar nor --expr is given.
#
# Each rule is an expression over str(s), pattern(re), sequence(p...) (or
# seq), choice(p...) (or alt), and the rules defined above it.
start: pair
rules:
  - name: number
    expr: pattern("[0-9]+")
  - name: sign
    expr: choice(str("+"), str("-"))
  - name: pair
    expr: sequence(number, sign, number)
`

// Init writes a configuration file holding the current flag values and a
// starter grammar into the configuration directory.
type Init struct {
	Force bool `help:"Overwrite existing files" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	vars := ktx.Model.Vars()

	confPath, ok := vars[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	grammarPath, ok := vars[GrammarIdentifier]
	if !ok {
		panic("internal error: grammar path undefined")
	}

	// Check both before writing either.
	for _, path := range []string{confPath, grammarPath} {
		if _, err := os.Stat(path); err == nil && !i.Force {
			return ErrWriteConfig.
				With(slog.String("file", path)).
				With(slog.Bool("exists", true)).
				Wrap(ErrFileExists)
		}
	}

	err = writeFile(confPath, func(w io.Writer) error {
		enc := yaml.NewEncoder(w, yaml.Indent(defaultConfigIndent))
		if err := enc.EncodeContext(ctx, i.buildConfig(ctx)); err != nil {
			return err
		}

		return enc.Close()
	})
	if err != nil {
		return err
	}

	err = writeFile(grammarPath, func(w io.Writer) error {
		_, err := io.WriteString(w, starterGrammar)

		return err
	})
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "initialized configuration",
		slog.String("config", confPath),
		slog.String("grammar", grammarPath),
	)

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	file, err := os.Create(path)
	if err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return ErrWriteConfig.With(slog.String("file", path)).Wrap(err)
	}

	return nil
}

// buildConfig collects the current value of every global flag, keyed by
// flag name, in declaration order.
func (i *Init) buildConfig(ctx context.Context) yaml.MapSlice {
	ktx := kongContextFrom(ctx)

	prefixIgnore := []string{"help", "version", profile.Tag}

	var entries yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := i.flagValue(ctx, flag.Name)
		if val != nil {
			entries = append(entries, yaml.MapItem{Key: flag.Name, Value: val})
		}
	}

	return entries
}

// flagValue returns the YAML value for a CLI flag, or nil if unset.
func (i *Init) flagValue(ctx context.Context, name string) any {
	ktx := kongContextFrom(ctx)

	idx := slices.IndexFunc(ktx.Model.Flags, func(flag *kong.Flag) bool {
		return flag.Name == name
	})
	if idx == -1 {
		return nil
	}

	val := ktx.FlagValue(ktx.Model.Flags[idx])

	switch v := val.(type) {
	case nil:
		return nil

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	default:
		return val
	}
}
