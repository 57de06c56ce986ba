// Package bounded provides String, an immutable string value whose length is
// constrained to an inclusive range fixed by its type.
//
// The range is carried by a zero-size marker type implementing Bounds, so each
// field definition gets its own specialized type:
//
//	type titleBounds struct{}
//
//	func (titleBounds) MinLen() int { return 1 }
//	func (titleBounds) MaxLen() int { return 120 }
//
//	type Title = bounded.String[titleBounds]
//
// Values are built with New (or decoded through one of the codec hooks) and are
// never mutated afterwards. Length is measured in bytes, as len does.
package bounded

import (
	"fmt"
	"unicode/utf8"
)

// Bounds supplies the inclusive length range of a String. Implementations are
// expected to be empty structs whose methods return constants.
type Bounds interface {
	MinLen() int
	MaxLen() int
}

// Range is an inclusive [Min, Max] length range. It is the runtime form of
// Bounds and can be used on its own where the range is only known at runtime.
// Min <= Max is assumed; an inverted range rejects every input.
type Range struct {
	Min int
	Max int
}

// Check reports whether s fits the range. Oversized input is reported first,
// so an inverted range yields TooLongError for len(s) > Max and TooShortError
// otherwise. A string of valid length that is not UTF-8 fails with
// ErrInvalidUTF8: encoders would rewrite its bytes and change its length.
func (r Range) Check(s string) error {
	n := len(s)
	if n > r.Max {
		return &TooLongError{Len: n, Max: r.Max}
	}
	if n < r.Min {
		return &TooShortError{Len: n, Min: r.Min}
	}
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}
	return nil
}

// String renders the range as "[min, max]".
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// String is a string whose length lies within the range given by B.
// The zero value holds "" and has not been validated; use New.
type String[B Bounds] struct {
	inner string
}

// New returns s wrapped as a String[B], or a *TooLongError / *TooShortError
// when len(s) falls outside B's range. s is kept as-is: no trimming or padding.
func New[B Bounds](s string) (String[B], error) {
	if err := rangeOf[B]().Check(s); err != nil {
		return String[B]{}, err
	}
	return String[B]{inner: s}, nil
}

// MustNew is like New but panics on error. Intended for package-level literals.
func MustNew[B Bounds](s string) String[B] {
	v, err := New[B](s)
	if err != nil {
		panic(fmt.Sprintf("bounded: MustNew(%q): %v", s, err))
	}
	return v
}

// String returns the underlying string value.
func (s String[B]) String() string {
	return s.inner
}

// Len returns the length of the underlying string in bytes.
func (s String[B]) Len() int {
	return len(s.inner)
}

// Range returns the length range enforced for this type.
func (s String[B]) Range() Range {
	return rangeOf[B]()
}

// IsZero reports whether s is the unconstructed zero value.
func (s String[B]) IsZero() bool {
	return s == String[B]{}
}

// Validate re-checks the held value against B. Values obtained from New or a
// successful decode always pass; only a zero value can fail when MinLen > 0.
func (s String[B]) Validate() error {
	return rangeOf[B]().Check(s.inner)
}

func rangeOf[B Bounds]() Range {
	var b B
	return Range{Min: b.MinLen(), Max: b.MaxLen()}
}
