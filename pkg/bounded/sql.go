package bounded

import (
	"database/sql/driver"
	"fmt"
)

// Value implements driver.Valuer.
func (s String[B]) Value() (driver.Value, error) {
	return s.inner, nil
}

// Scan implements sql.Scanner. Text columns are validated like any other
// decode; NULL and non-text columns fail with *TypeError.
func (s *String[B]) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return s.decode(FormatSQL, v)
	case []byte:
		return s.decode(FormatSQL, string(v))
	case nil:
		return &TypeError{Format: FormatSQL, Got: "NULL", Range: s.Range()}
	default:
		return &TypeError{Format: FormatSQL, Got: fmt.Sprintf("%T", src), Range: s.Range()}
	}
}
