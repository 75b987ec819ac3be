package pkg

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestVersion_MatchesFile(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("failed to read VERSION file: %v", err)
	}

	if want := strings.TrimSpace(string(buf)); Version != want {
		t.Errorf("expected Version %q, got %q", want, Version)
	}
}

func TestAuthor_Defined(t *testing.T) {
	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/bin/incr", "incr"},
		{"/tmp/__debug_bin3141", Name},
		{"./.incr", "incr"},
		{"/opt/incr.test", "incr"},
		{"...", Name},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizePrefix(tt.path); got != tt.want {
				t.Errorf("normalizePrefix(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestError_Chain(t *testing.T) {
	cause := errors.New("disk on fire")
	err := ErrReadInput.Wrap(cause)

	if !errors.Is(err, cause) {
		t.Error("expected the cause to be matched")
	}

	if !errors.Is(err, ErrReadInput) {
		t.Error("expected the sentinel to be matched")
	}

	if errors.Is(err, ErrInvalidFormat) {
		t.Error("unrelated sentinel matched")
	}

	if got, want := err.Error(), "failed to read input: disk on fire"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if len(ErrReadInput) != 1 {
		t.Error("Wrap must not modify the receiver")
	}
}

func TestMakeError_SkipsNil(t *testing.T) {
	if err := MakeError(nil, nil); err != nil {
		t.Errorf("expected nil chain, got %v", err)
	}

	a, b := errors.New("a"), errors.New("b")

	err := MakeError(a, nil, b)
	if len(err) != 2 || !errors.Is(err, a) || !errors.Is(err, b) {
		t.Errorf("unexpected chain %v", err)
	}
}
