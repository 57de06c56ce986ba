package models

import "github.com/ghuser/boundedstr/pkg/bounded"

type itemNameBounds struct{}

func (itemNameBounds) MinLen() int { return 1 }
func (itemNameBounds) MaxLen() int { return 255 }

type ownerNameBounds struct{}

func (ownerNameBounds) MinLen() int { return 3 }
func (ownerNameBounds) MaxLen() int { return 255 }

// ItemName is a value object representing a valid item name (1..255 bytes).
// It decodes from JSON, YAML, TOML and SQL with the same length check as NewItemName.
type ItemName = bounded.String[itemNameBounds]

// OwnerName is the display name of the item's owner (3..255 bytes).
type OwnerName = bounded.String[ownerNameBounds]

// NewItemName constructs a valid ItemName or returns a length error.
func NewItemName(s string) (ItemName, error) {
	return bounded.New[itemNameBounds](s)
}

// NewOwnerName constructs a valid OwnerName or returns a length error.
func NewOwnerName(s string) (OwnerName, error) {
	return bounded.New[ownerNameBounds](s)
}
