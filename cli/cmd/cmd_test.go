package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/incr/driver"
	"github.com/ardnew/incr/grammar"
)

const pairsYAML = `start: pairs
rules:
  - name: one_two
    expr: seq(str("1"), str("2"))
  - name: pairs
    expr: alt(one_two, seq(str("3"), str("4")))
`

// writeGrammar writes content to name in a new temporary directory and
// returns the directory.
func writeGrammar(t *testing.T, name, content string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return dir
}

// execute runs c with src and stdin, and returns what it wrote.
func execute(t *testing.T, c interface{ Run(context.Context) error }, src Source, stdin string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	ctx := WithSource(context.Background(), src)
	ctx = WithStreams(ctx, strings.NewReader(stdin), &out)

	err := c.Run(ctx)

	return out.String(), err
}

func TestSourceFile(t *testing.T) {
	dir := writeGrammar(t, "pairs.yaml", pairsYAML)

	tests := []struct {
		name      string
		src       Source
		wantRules []string
		wantStart string
		wantErr   error
	}{
		{
			name:      "named grammar",
			src:       Source{Path: []string{dir}, Grammar: "pairs"},
			wantRules: []string{"one_two", "pairs"},
			wantStart: "pairs",
		},
		{
			name:      "grammar path",
			src:       Source{Grammar: filepath.Join(dir, "pairs.yaml")},
			wantRules: []string{"one_two", "pairs"},
			wantStart: "pairs",
		},
		{
			name:      "expression only",
			src:       Source{Expr: `str("x")`},
			wantRules: []string{ExprRule},
			wantStart: ExprRule,
		},
		{
			name:      "expression extends grammar",
			src:       Source{Path: []string{dir}, Grammar: "pairs", Expr: `seq(pairs, pairs)`},
			wantRules: []string{"one_two", "pairs", ExprRule},
			wantStart: ExprRule,
		},
		{
			name:      "start override",
			src:       Source{Path: []string{dir}, Grammar: "pairs", Start: "one_two"},
			wantRules: []string{"one_two", "pairs"},
			wantStart: "one_two",
		},
		{
			name:    "missing grammar",
			src:     Source{Path: []string{dir}, Grammar: "nope"},
			wantErr: grammar.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, origin, err := tt.src.File(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("File() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("File() error = %v", err)
			}

			if origin == "" {
				t.Error("File() returned no origin")
			}

			var names []string
			for _, r := range f.Rules {
				names = append(names, r.Name)
			}

			if strings.Join(names, ",") != strings.Join(tt.wantRules, ",") {
				t.Errorf("rules = %v, want %v", names, tt.wantRules)
			}

			if f.Start != tt.wantStart {
				t.Errorf("start = %q, want %q", f.Start, tt.wantStart)
			}
		})
	}
}

func TestStreamsDefault(t *testing.T) {
	in, out := streamsFrom(context.Background())
	if in != os.Stdin || out != os.Stdout {
		t.Error("streamsFrom should default to the standard streams")
	}
}

func TestRun(t *testing.T) {
	dir := writeGrammar(t, "pairs.yaml", pairsYAML)
	src := Source{Path: []string{dir}, Grammar: "pairs"}

	tests := []struct {
		name  string
		run   Run
		stdin string
		want  string
	}{
		{
			name: "arguments",
			run:  Run{Format: "native", Inputs: []string{"12", "34x", "56"}},
			want: `"12": Success(["1", "2"], "")` + "\n" +
				`"34x": Success(["3", "4"], "x")` + "\n" +
				`"56": Failure` + "\n",
		},
		{
			name:  "stdin lines",
			run:   Run{Format: "native"},
			stdin: "12\r\n56\n",
			want: `"12": Success(["1", "2"], "")` + "\n" +
				`"56": Failure` + "\n",
		},
		{
			name: "json",
			run:  Run{Format: "json", Inputs: []string{"56"}},
			want: `{"input":"56","state":"failed","steps":1}` + "\n",
		},
		{
			name: "trace",
			run:  Run{Format: "native", Trace: true, Inputs: []string{"12"}},
			want: `"12" step 1: Pending` + "\n" +
				`"12" step 2: Success(["1", "2"], "")` + "\n" +
				`"12": Success(["1", "2"], "")` + "\n",
		},
		{
			name:  "no input",
			run:   Run{Format: "native"},
			stdin: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, &tt.run, src, tt.stdin)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Run() output:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestRunStepLimit(t *testing.T) {
	run := Run{Format: "native", MaxSteps: 1, Inputs: []string{"12", "x"}}

	got, err := execute(t, &run, Source{Expr: `seq(str("1"), str("2"))`}, "")
	if !errors.Is(err, driver.ErrStepLimit) {
		t.Fatalf("Run() error = %v, want %v", err, driver.ErrStepLimit)
	}

	want := `"12": error: step limit reached` + "\n" + `"x": Failure` + "\n"
	if got != want {
		t.Errorf("Run() output:\n%s\nwant:\n%s", got, want)
	}
}

func TestRunBadGrammar(t *testing.T) {
	run := Run{Format: "native", Inputs: []string{"1"}}

	got, err := execute(t, &run, Source{Expr: `seq(undefined_rule)`}, "")
	if !errors.Is(err, grammar.ErrExprCompile) {
		t.Fatalf("Run() error = %v, want %v", err, grammar.ErrExprCompile)
	}

	if got != "" {
		t.Errorf("Run() wrote %q before failing", got)
	}
}

func TestFmt(t *testing.T) {
	dir := writeGrammar(t, "pairs.yaml", pairsYAML)
	src := Source{Path: []string{dir}, Grammar: "pairs"}

	got, err := execute(t, &Fmt{Format: "native"}, src, "")
	if err != nil {
		t.Fatal(err)
	}

	want := ` one_two = sequence(str("1"), str("2"))` + "\n" +
		`*pairs = choice(sequence(str("1"), str("2")), sequence(str("3"), str("4")))` + "\n"
	if got != want {
		t.Errorf("Fmt native:\n%s\nwant:\n%s", got, want)
	}

	got, err = execute(t, &Fmt{Format: "yaml"}, src, "")
	if err != nil {
		t.Fatal(err)
	}

	g, err := grammar.Load(context.Background(), strings.NewReader(got))
	if err != nil {
		t.Fatalf("Fmt yaml output does not load: %v\n%s", err, got)
	}

	if g.StartName() != "pairs" || g.Len() != 2 {
		t.Errorf("reloaded grammar: start %q, %d rules", g.StartName(), g.Len())
	}
}
