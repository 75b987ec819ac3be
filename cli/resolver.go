package cli

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve returns a [kong.ConfigurationLoader] that reads a YAML
// configuration file, as written by the init command.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// The document is a flat mapping from flag name to value:
//
//	log-level: debug
//	log-format: json
//	log-pretty: false
//	path:
//	  - ~/grammars
//
// Keys may use underscores in place of hyphens. Numbers are converted to
// the string form kong parses. An empty document configures nothing.
// Command-line flags override config file values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var raw map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &raw)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		conf := make(config, len(raw))
		for k, v := range raw {
			conf[strings.ReplaceAll(k, "_", "-")] = v
		}

		return conf, nil
	}
}

// config implements [kong.Resolver] for YAML configuration files.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// Unknown keys are ignored so that one file can serve several versions.
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	value, ok := r[strings.ReplaceAll(flag.Name, "_", "-")]
	if !ok || value == nil {
		// Not found - return nil to let Kong use defaults
		return nil, nil
	}

	return scalar(value), nil
}

// scalar converts a decoded YAML number into the string form kong parses.
// Lists are passed through; kong decodes them element by element.
func scalar(value any) any {
	switch v := value.(type) {
	case uint64:
		return strconv.FormatUint(v, 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return v
	}
}
