package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/incr/parse"
	"github.com/ardnew/incr/pkg"
)

// Encoding selects how results are rendered.
type Encoding int

const (
	Native Encoding = iota // native
	JSON                   // json
	YAML                   // yaml
)

var encodings = []Encoding{Native, JSON, YAML}

func (e Encoding) String() string {
	switch e {
	case Native:
		return "native"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// Encodings returns the names of all encodings.
func Encodings() []string {
	names := make([]string, len(encodings))
	for i, e := range encodings {
		names[i] = e.String()
	}

	return names
}

// ParseEncoding returns the encoding named s.
func ParseEncoding(s string) (Encoding, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for _, e := range encodings {
		if e.String() == s {
			return e, nil
		}
	}

	return Native, pkg.ErrInvalidFormat.Wrapf("%q (valid: %s)", s, strings.Join(Encodings(), ", "))
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *Encoding) UnmarshalText(text []byte) error {
	enc, err := ParseEncoding(string(text))
	if err != nil {
		return err
	}

	*e = enc

	return nil
}

// Report is the serializable form of a result.
type Report struct {
	Input     string  `json:"input,omitempty"`
	State     string  `json:"state"`
	Value     any     `json:"value,omitzero"`
	Remaining *string `json:"remaining,omitempty"`
	Steps     int     `json:"steps,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// NewReport describes res.
func NewReport(res parse.Result) Report {
	r := Report{State: res.State.String()}

	if res.OK() {
		remaining := res.Remaining
		r.Value = res.Value
		r.Remaining = &remaining
	}

	return r
}

// Report describes the outcome of one batch input.
func (o Outcome) Report() Report {
	r := NewReport(o.Result)
	r.Input = o.Input
	r.Steps = o.Steps

	if o.Err != nil {
		r.Error = o.Err.Error()
	}

	return r
}

// mapSlice orders the YAML keys like the JSON ones.
func (r Report) mapSlice() yaml.MapSlice {
	var m yaml.MapSlice

	add := func(k string, v any) { m = append(m, yaml.MapItem{Key: k, Value: v}) }

	if r.Input != "" {
		add("input", r.Input)
	}

	add("state", r.State)

	if r.Value != nil {
		add("value", r.Value)
	}

	if r.Remaining != nil {
		add("remaining", *r.Remaining)
	}

	if r.Steps != 0 {
		add("steps", r.Steps)
	}

	if r.Error != "" {
		add("error", r.Error)
	}

	return m
}

func (r Report) native() string {
	var sb strings.Builder

	if r.Input != "" {
		sb.WriteString(fmt.Sprintf("%q: ", r.Input))
	}

	switch {
	case r.Error != "":
		sb.WriteString("error: " + r.Error)
	case r.Remaining != nil:
		sb.WriteString("Success(")
		sb.WriteString(parse.FormatValue(r.Value))
		sb.WriteString(", ")
		sb.WriteString(fmt.Sprintf("%q", *r.Remaining))
		sb.WriteString(")")
	case r.State == parse.Failed.String():
		sb.WriteString("Failure")
	default:
		sb.WriteString("Pending")
	}

	return sb.String()
}

// Format writes res to w using enc.
func Format(w io.Writer, res parse.Result, enc Encoding) error {
	return Write(context.Background(), w, enc, NewReport(res))
}

// Write renders reports to w: one line each for [Native], one JSON object
// per line for [JSON], and one document each for [YAML].
func Write(ctx context.Context, w io.Writer, enc Encoding, reports ...Report) error {
	switch enc {
	case Native:
		for _, r := range reports {
			if _, err := fmt.Fprintln(w, r.native()); err != nil {
				return err
			}
		}

	case JSON:
		e := json.NewEncoder(w)
		e.SetEscapeHTML(false)

		for _, r := range reports {
			if err := e.Encode(r); err != nil {
				return pkg.ErrJSONMarshal.Wrap(err)
			}
		}

	case YAML:
		for i, r := range reports {
			b, err := yaml.MarshalContext(ctx, r.mapSlice())
			if err != nil {
				return pkg.ErrYAMLMarshal.Wrap(err)
			}

			if i > 0 {
				if _, err := io.WriteString(w, "---\n"); err != nil {
					return err
				}
			}

			if _, err := w.Write(b); err != nil {
				return err
			}
		}

	default:
		return pkg.ErrInvalidFormat.Wrap(parse.NewError(enc.String()).With(slog.Int("encoding", int(enc))))
	}

	return nil
}
