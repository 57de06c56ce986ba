package bounded

import (
	"errors"
	"fmt"
)

// ErrInvalidLength is matched by every length violation. Use errors.Is to
// check for it and errors.As with *TooLongError / *TooShortError for details.
var ErrInvalidLength = errors.New("invalid length")

// ErrInvalidUTF8 is returned for a string of acceptable length that is not
// valid UTF-8.
var ErrInvalidUTF8 = errors.New("value is not valid UTF-8")

// TooLongError is returned when a value is longer than the maximum.
type TooLongError struct {
	Len int
	Max int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("length of value %d longer than %d", e.Len, e.Max)
}

// Unwrap returns ErrInvalidLength for errors.Is() compatibility.
func (e *TooLongError) Unwrap() error { return ErrInvalidLength }

// TooShortError is returned when a value is shorter than the minimum.
type TooShortError struct {
	Len int
	Min int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("length of value %d shorter than %d", e.Len, e.Min)
}

// Unwrap returns ErrInvalidLength for errors.Is() compatibility.
func (e *TooShortError) Unwrap() error { return ErrInvalidLength }

// DecodeError reports a length violation found while decoding Format.
// Its message is the validation message prefixed with the format name.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return e.Format + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TypeError is returned by decoders whose format has no type-mismatch error of
// its own (TOML, SQL) when the input is not a string.
type TypeError struct {
	Format string
	Got    string
	Range  Range
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s, got %s", e.Format, expecting(e.Range), e.Got)
}

func expecting(r Range) string {
	return fmt.Sprintf("expected a string with length at least %d and at most %d", r.Min, r.Max)
}
