package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewItem(t *testing.T) {
	orgID := uuid.New()
	name, _ := NewItemName("Test Item")
	owner, _ := NewOwnerName("Jordan")

	t.Run("returns item with non-zero ID", func(t *testing.T) {
		item := NewItem(orgID, name, owner)
		if item.ID == uuid.Nil {
			t.Fatal("expected non-zero UUID for ID")
		}
	})

	t.Run("carries the given fields", func(t *testing.T) {
		item := NewItem(orgID, name, owner)
		if item.OrgID != orgID {
			t.Fatalf("expected OrgID %v, got %v", orgID, item.OrgID)
		}
		if item.Name != name {
			t.Fatalf("expected Name %q, got %q", name, item.Name)
		}
		if item.Owner != owner {
			t.Fatalf("expected Owner %q, got %q", owner, item.Owner)
		}
	})

	t.Run("sets CreatedAt to approximately now UTC", func(t *testing.T) {
		before := time.Now().UTC()
		item := NewItem(orgID, name, owner)
		after := time.Now().UTC()
		if item.CreatedAt.Before(before) || item.CreatedAt.After(after) {
			t.Fatalf("CreatedAt %v not between %v and %v", item.CreatedAt, before, after)
		}
	})

	t.Run("generates unique IDs on each call", func(t *testing.T) {
		if NewItem(orgID, name, owner).ID == NewItem(orgID, name, owner).ID {
			t.Fatal("expected unique IDs, got identical")
		}
	})
}
