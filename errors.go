package qtwirl

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

var (
	// ErrInputValidation marks a malformed error model: negative or
	// non-finite probabilities, or per-state totals above 1.
	ErrInputValidation = errors.New("input validation failed")
	// ErrChannelCompleteness marks a Kraus set or channel matrix that is not
	// a valid trace-preserving channel.
	ErrChannelCompleteness = errors.New("channel completeness check failed")
	// ErrDimensionMismatch marks an empty Kraus set or operators of
	// inconsistent or non-square shape.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrArgument marks a bad qubit count or a label that does not fit the
	// configured qubit count or alphabet.
	ErrArgument = errors.New("invalid argument")
)

/*
ViolationError carries every violation found by a single check, so callers
see the whole picture instead of the first failure only. Kind is one of the
sentinel errors above and is what errors.Is matches against.
*/
type ViolationError struct {
	Kind       error
	Violations []error
}

func (e *ViolationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}

	noun := "violation"
	if len(msgs) != 1 {
		noun = "violations"
	}

	return fmt.Sprintf("%v (%d %s): %s", e.Kind, len(msgs), noun, strings.Join(msgs, "; "))
}

func (e *ViolationError) Unwrap() error {
	return e.Kind
}

// violations accumulates failures of one kind.
type violations struct {
	kind error
	err  error
}

func newViolations(kind error) *violations {
	return &violations{kind: kind}
}

func (v *violations) add(format string, args ...any) {
	v.err = multierr.Append(v.err, fmt.Errorf(format, args...))
}

// asError returns nil when nothing was recorded.
func (v *violations) asError() error {
	if v.err == nil {
		return nil
	}

	return &ViolationError{
		Kind:       v.kind,
		Violations: multierr.Errors(v.err),
	}
}

// combineViolations merges the non-empty collectors into one error. Each
// kind stays reachable through errors.Is.
func combineViolations(all ...*violations) error {
	var err error
	for _, v := range all {
		err = multierr.Append(err, v.asError())
	}
	return err
}

// Violations extracts every individual violation from an error returned by
// this package, across all kinds it carries.
func Violations(err error) []error {
	var out []error
	for _, e := range multierr.Errors(err) {
		var ve *ViolationError
		if errors.As(e, &ve) {
			out = append(out, ve.Violations...)
			continue
		}
		out = append(out, e)
	}
	return out
}

func argumentError(format string, args ...any) error {
	v := newViolations(ErrArgument)
	v.add(format, args...)
	return v.asError()
}
