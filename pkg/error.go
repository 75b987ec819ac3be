package pkg

import (
	"fmt"
	"slices"
	"strings"
)

// Error is a chain of errors, innermost first.
//
// It is used where several independent failures are reported together, such
// as the inputs of a batch run, and where a sentinel needs context appended
// without losing [errors.Is] matching.
type Error []error

// ErrReadInput is returned when reading parser input fails.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrInvalidFormat is returned for an unknown output format.
var ErrInvalidFormat = MakeErrorf("invalid format")

// ErrJSONMarshal is returned when encoding a result as JSON fails.
var ErrJSONMarshal = MakeErrorf("JSON marshal error")

// ErrYAMLMarshal is returned when encoding a result as YAML fails.
var ErrYAMLMarshal = MakeErrorf("YAML marshal error")

// MakeError flattens errs into one chain, skipping nil errors.
// It returns nil if every error is nil.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error joins the chain with ": ", innermost first.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap returns a copy of e with errs appended.
func (e Error) Wrap(errs ...error) Error {
	return append(slices.Clip(e), errs...)
}

// Wrapf returns a copy of e with a formatted error appended.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Is reports whether target is an Error whose every member also appears in
// e, so a chain built by wrapping a sentinel still matches that sentinel.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 {
		return false
	}

	for _, want := range t {
		if !slices.ContainsFunc(e, func(err error) bool { return err == want }) {
			return false
		}
	}

	return true
}

// Unwrap returns the errors of the chain.
func (e Error) Unwrap() []error {
	return e
}

// UnwrapErrors flattens the tree of errors wrapped by err, innermost first,
// ending with err itself.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	var chain Error

	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}

	case interface{ Unwrap() error }:
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
