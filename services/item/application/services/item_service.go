package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/boundedstr/pkg/cache"
	"github.com/ghuser/boundedstr/pkg/logger"
	"github.com/ghuser/boundedstr/pkg/telemetry"
	itemdomain "github.com/ghuser/boundedstr/services/item/domain"
	"github.com/ghuser/boundedstr/services/item/domain/models"
	"github.com/ghuser/boundedstr/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/boundedstr/services/item/domain/services"
)

// ItemCache is the read model store used by ItemService.
type ItemCache interface {
	Get(ctx context.Context, orgID, id uuid.UUID) (*models.Item, error)
	Set(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

// ItemService orchestrates creation and retrieval of Items.
// Event publishing is handled by the repository layer (outbox pattern).
// Reads are served from the cache when one is configured.
type ItemService struct {
	repo       repositories.ItemRepository
	cache      ItemCache
	log        logger.Logger
	rejections *telemetry.LengthRejections
}

// NewItemService returns an ItemService. itemCache and rejections may be nil.
func NewItemService(
	repo repositories.ItemRepository,
	itemCache ItemCache,
	log logger.Logger,
	rejections *telemetry.LengthRejections,
) *ItemService {
	return &ItemService{repo: repo, cache: itemCache, log: log, rejections: rejections}
}

// Rejections returns the counter shared by every entry point of the item
// context. It may be nil; Record is nil-safe.
func (s *ItemService) Rejections() *telemetry.LengthRejections {
	return s.rejections
}

// Create validates and persists an Item. The repository publishes ItemCreatedEvent.
func (s *ItemService) Create(ctx context.Context, orgID uuid.UUID, name models.ItemName, owner models.OwnerName) (*models.Item, error) {
	item := models.NewItem(orgID, name, owner)

	if err := domainsvcs.ValidateItemForCreation(item); err != nil {
		field := "name"
		if errors.Is(err, itemdomain.ErrInvalidOwnerName) {
			field = "owner_name"
		}
		s.rejections.Record(ctx, field, err)
		return nil, err
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	s.log.InfoContext(ctx, "item created", "item_id", item.ID, "org_id", orgID, "name_len", item.Name.Len())
	return item, nil
}

// GetByID retrieves an Item using a read-through cache:
//  1. Check the cache first.
//  2. On miss or cache error, query Postgres.
//  3. Write the Postgres result back to the cache.
//
// A cached entry whose names fail their length check is treated as a miss.
func (s *ItemService) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, orgID, id)
		if err == nil {
			return cached, nil
		}
		if !pkgcache.IsMiss(err) {
			s.rejections.Record(ctx, "cache", err)
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	s.Warm(ctx, item)
	return item, nil
}

// Warm writes item to the cache. Failures are logged, not returned.
func (s *ItemService) Warm(ctx context.Context, item *models.Item) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, item); err != nil {
		s.log.WarnContext(ctx, "item cache write failed", "item_id", item.ID, "error", err)
	}
}

// List returns a paginated slice of items for the org plus total count.
func (s *ItemService) List(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	items, total, err := s.repo.FindByOrgID(ctx, orgID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	return items, total, nil
}

// Rename replaces an item's name and drops its cache entry.
func (s *ItemService) Rename(ctx context.Context, orgID, id uuid.UUID, name models.ItemName) error {
	if err := domainsvcs.ValidateName(name); err != nil {
		s.rejections.Record(ctx, "name", err)
		return fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, err)
	}
	if err := s.repo.Rename(ctx, orgID, id, name); err != nil {
		return fmt.Errorf("rename item: %w", err)
	}
	s.evict(ctx, orgID, id)
	return nil
}

// Delete removes an item by ID scoped to the given org.
// Returns ErrItemNotFound if no matching item exists.
func (s *ItemService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, orgID, id)
	if err != nil {
		return fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return itemdomain.ErrItemNotFound
	}
	if err := s.repo.Delete(ctx, orgID, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.evict(ctx, orgID, id)
	return nil
}

func (s *ItemService) evict(ctx context.Context, orgID, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, orgID, id); err != nil {
		s.log.WarnContext(ctx, "item cache evict failed", "item_id", id, "error", err)
	}
}
