package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is the core aggregate for this bounded context.
type Item struct {
	ID        uuid.UUID
	OrgID     uuid.UUID // tenant scope; always filter by this in queries
	Name      ItemName
	Owner     OwnerName
	CreatedAt time.Time
}

// NewItem builds an Item with a generated ID and the current UTC timestamp.
// name and owner are already length-checked by their types.
func NewItem(orgID uuid.UUID, name ItemName, owner OwnerName) *Item {
	return &Item{
		ID:        uuid.New(),
		OrgID:     orgID,
		Name:      name,
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
	}
}
