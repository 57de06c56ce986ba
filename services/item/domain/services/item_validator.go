// Package services contains stateless domain services for the item bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	itemdomain "github.com/ghuser/boundedstr/services/item/domain"
	"github.com/ghuser/boundedstr/services/item/domain/models"
)

// ValidateName enforces business rules on top of the length bound carried by
// the ItemName type:
//   - No leading or trailing whitespace
//   - Not whitespace only
//   - No control characters (Unicode category Cc)
//   - No consecutive spaces
func ValidateName(name models.ItemName) error {
	if err := name.Validate(); err != nil {
		return err
	}
	return validateText(name.String())
}

// ValidateOwnerName applies the same text rules to an OwnerName.
func ValidateOwnerName(owner models.OwnerName) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	return validateText(owner.String())
}

func validateText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be only whitespace")
	}
	if s != strings.TrimSpace(s) {
		return errors.New("must not have leading or trailing whitespace")
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return errors.New("must not contain control characters")
		}
	}
	if strings.Contains(s, "  ") {
		return errors.New("must not contain consecutive spaces")
	}
	return nil
}

// ValidateItemForCreation checks a fully built Item before it is persisted.
// Name and owner failures wrap ErrInvalidItemName / ErrInvalidOwnerName.
func ValidateItemForCreation(item *models.Item) error {
	if item == nil {
		return errors.New("item cannot be nil")
	}
	if err := ValidateName(item.Name); err != nil {
		return fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, err)
	}
	if err := ValidateOwnerName(item.Owner); err != nil {
		return fmt.Errorf("%w: %w", itemdomain.ErrInvalidOwnerName, err)
	}
	if item.OrgID == uuid.Nil {
		return errors.New("org_id must be set")
	}
	if item.ID == uuid.Nil {
		return errors.New("id must be set")
	}
	return nil
}
