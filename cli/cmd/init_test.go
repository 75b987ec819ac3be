package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/incr/grammar"
)

// initContext parses args against a CLI with a few global flags and returns
// a context carrying the kong context, as cli.Run does.
func initContext(t *testing.T, dir string, args ...string) context.Context {
	t.Helper()

	var cli struct {
		LogLevel string   `default:"info"`
		Pretty   bool     `default:"true" negatable:""`
		Path     []string `name:"path"`
		Count    int      `default:"3"`
	}

	parser, err := kong.New(&cli, kong.Vars{
		ConfigIdentifier:  filepath.Join(dir, "config.yaml"),
		GrammarIdentifier: filepath.Join(dir, "grammar.yaml"),
	})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), "incr")
			ctx := initContext(t, dir, "--log-level=debug")

			if tt.exists {
				if err := os.MkdirAll(dir, 0o700); err != nil {
					t.Fatal(err)
				}

				if err := os.WriteFile(filepath.Join(dir, "grammar.yaml"), []byte("existing"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			err := (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				if !errors.Is(err, ErrWriteConfig) {
					t.Errorf("Init.Run() error = %v, want it to wrap %v", err, ErrWriteConfig)
				}

				if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err == nil {
					t.Error("Init.Run() wrote the config file despite failing")
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			// The starter grammar must load.
			r, err := os.Open(filepath.Join(dir, "grammar.yaml"))
			if err != nil {
				t.Fatal(err)
			}
			defer r.Close()

			g, err := grammar.Load(context.Background(), r)
			if err != nil {
				t.Fatalf("starter grammar does not load: %v", err)
			}

			if g.StartName() != "pair" {
				t.Errorf("starter grammar start = %q, want %q", g.StartName(), "pair")
			}

			// The config holds the parsed flag values.
			data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
			if err != nil {
				t.Fatal(err)
			}

			var conf map[string]any
			if err := yaml.Unmarshal(data, &conf); err != nil {
				t.Fatalf("config is not YAML: %v\n%s", err, data)
			}

			if conf["log-level"] != "debug" {
				t.Errorf("log-level = %v, want debug", conf["log-level"])
			}

			if conf["pretty"] != true {
				t.Errorf("pretty = %v, want true", conf["pretty"])
			}

			if _, ok := conf["path"]; ok {
				t.Error("empty flags should be omitted")
			}

			if _, ok := conf["help"]; ok {
				t.Error("help flag should be omitted")
			}
		})
	}
}

// TestInitFlagValue tests the flagValue method with different types.
func TestInitFlagValue(t *testing.T) {
	t.Parallel()

	ctx := initContext(t, t.TempDir(), "--path=a", "--path=b", "--count=5")
	i := &Init{}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "info"},
		{"pretty", true},
		{"count", 5},
		{"missing", nil},
	}

	for _, tt := range tests {
		if got := i.flagValue(ctx, tt.flag); got != tt.want {
			t.Errorf("flagValue(%q) = %v (%T), want %v", tt.flag, got, got, tt.want)
		}
	}

	got, ok := i.flagValue(ctx, "path").([]string)
	if !ok || len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("flagValue(path) = %v, want [a b]", got)
	}
}
