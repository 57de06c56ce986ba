package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/boundedstr/services/item/domain/models"
)

// TopicItemCreated is the Watermill topic published when an Item is created.
const TopicItemCreated = "item.created"

// ItemCreatedEvent is published after a new Item is persisted.
// Name and Owner are bounded types, so a payload with an out-of-range name
// fails to decode on the consumer side.
type ItemCreatedEvent struct {
	EventID    uuid.UUID        `json:"event_id"`
	Version    int              `json:"version"` // bump on breaking schema changes
	ItemID     uuid.UUID        `json:"item_id"`
	OrgID      uuid.UUID        `json:"org_id"`
	Name       models.ItemName  `json:"name"`
	Owner      models.OwnerName `json:"owner_name"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewItemCreatedEvent builds the version 1 event for item.
func NewItemCreatedEvent(item *models.Item) ItemCreatedEvent {
	return ItemCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     item.ID,
		OrgID:      item.OrgID,
		Name:       item.Name,
		Owner:      item.Owner,
		OccurredAt: item.CreatedAt,
	}
}

// ParseItemCreatedEvent decodes an item.created payload. Names are
// length-checked while decoding; names missing from the payload are rejected
// afterwards, so a returned event always carries valid names.
func ParseItemCreatedEvent(payload []byte) (ItemCreatedEvent, error) {
	var evt ItemCreatedEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return ItemCreatedEvent{}, fmt.Errorf("decode %s: %w", TopicItemCreated, err)
	}
	if err := evt.Name.Validate(); err != nil {
		return ItemCreatedEvent{}, fmt.Errorf("decode %s: name: %w", TopicItemCreated, err)
	}
	if err := evt.Owner.Validate(); err != nil {
		return ItemCreatedEvent{}, fmt.Errorf("decode %s: owner_name: %w", TopicItemCreated, err)
	}
	return evt, nil
}

// Item rebuilds the Item described by the event.
func (e ItemCreatedEvent) Item() *models.Item {
	return &models.Item{
		ID:        e.ItemID,
		OrgID:     e.OrgID,
		Name:      e.Name,
		Owner:     e.Owner,
		CreatedAt: e.OccurredAt,
	}
}
