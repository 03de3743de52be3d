// FILE: lixenwraith/argbind/errors.go
package argbind

import (
	"errors"
	"fmt"
)

// Sentinel errors. Wrapped errors returned by the package can be matched with errors.Is.
var (
	// ErrParse marks a fatal parse error raised by a converter that committed to a value
	ErrParse = errors.New("argument parse failed")

	ErrDuplicateConverter = errors.New("converter already registered")
	ErrConverterNotFound  = errors.New("converter not registered")

	ErrUnknownArgument   = errors.New("unknown argument")
	ErrAmbiguousArgument = errors.New("ambiguous argument")
	ErrMissingArgument   = errors.New("missing required argument")
	ErrMissingValue      = errors.New("missing argument value")
	ErrMultiplicity      = errors.New("argument given too many times")
	ErrBinding           = errors.New("cannot bind value")
	ErrInvalidSchema     = errors.New("invalid argument schema")

	ErrDefaultsFile = errors.New("cannot load defaults file")
)

// maxValuePreview is how much of an offending raw value is echoed in error messages
const maxValuePreview = 10

// ParseError is the single fatal error kind of the conversion pipeline.
// It aborts binding and is never retried.
type ParseError struct {
	Msg string
	Err error // underlying I/O or decode failure, may be nil
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrParse as a match so callers need not type-assert.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func parseErrorf(err error, format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// truncateValue shortens a raw token for display
func truncateValue(s string) string {
	r := []rune(s)
	if len(r) <= maxValuePreview {
		return s
	}
	return string(r[:maxValuePreview]) + "..."
}
