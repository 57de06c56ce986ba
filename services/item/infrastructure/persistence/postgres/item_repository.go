package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/boundedstr/pkg/database"
	"github.com/ghuser/boundedstr/pkg/events"
	itemdomain "github.com/ghuser/boundedstr/services/item/domain"
	domainevents "github.com/ghuser/boundedstr/services/item/domain/events"
	"github.com/ghuser/boundedstr/services/item/domain/models"
	"github.com/ghuser/boundedstr/services/item/domain/repositories"
)

const (
	insertItemSQL = `INSERT INTO item.items (id, org_id, name, owner_name, created_at)
VALUES ($1, $2, $3, $4, $5)`
	selectItemSQL = `SELECT id, org_id, name, owner_name, created_at
FROM item.items WHERE id = $1 AND org_id = $2`
	listItemsSQL = `SELECT id, org_id, name, owner_name, created_at
FROM item.items WHERE org_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	countItemsSQL = `SELECT count(*) FROM item.items WHERE org_id = $1`
	renameItemSQL = `UPDATE item.items SET name = $3 WHERE id = $1 AND org_id = $2`
	deleteItemSQL = `DELETE FROM item.items WHERE id = $1 AND org_id = $2`
	itemExistsSQL = `SELECT EXISTS (SELECT 1 FROM item.items WHERE id = $1 AND org_id = $2)`
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
// Bounded name columns are written through driver.Valuer and read back through
// sql.Scanner, so a row holding an out-of-range name fails to load.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given pool and
// event bus. bus may be nil, in which case no events are published.
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

// Save persists a new Item and publishes an ItemCreatedEvent within the same transaction.
// Returns ErrItemAlreadyExists on unique constraint violations.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertItemSQL,
			item.ID, item.OrgID, item.Name, item.Owner, item.CreatedAt,
		); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return itemdomain.ErrItemAlreadyExists
			}
			return fmt.Errorf("insert item: %w", err)
		}

		if r.bus != nil {
			if err := r.publishCreated(ctx, tx, item); err != nil {
				return fmt.Errorf("publish item created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves an Item by ID scoped to the given org. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx, selectItemSQL, id, orgID)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// FindByOrgID retrieves a paginated list of items and total count for the given org.
func (r *ItemRepository) FindByOrgID(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	rows, err := r.db.DB().QueryContext(ctx, listItemsSQL, orgID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	items := make([]*models.Item, 0, opts.Limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items: %w", err)
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx, countItemsSQL, orgID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}
	return items, total, nil
}

// Rename replaces the name of an existing Item. Returns ErrItemNotFound when
// no row matches.
func (r *ItemRepository) Rename(ctx context.Context, orgID, id uuid.UUID, name models.ItemName) error {
	res, err := r.db.DB().ExecContext(ctx, renameItemSQL, id, orgID, name)
	if err != nil {
		return fmt.Errorf("rename item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename item: %w", err)
	}
	if n == 0 {
		return itemdomain.ErrItemNotFound
	}
	return nil
}

// Delete removes an item by ID scoped to the given org.
func (r *ItemRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	if _, err := r.db.DB().ExecContext(ctx, deleteItemSQL, id, orgID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Exists reports whether an item with the given ID exists for the given org.
func (r *ItemRepository) Exists(ctx context.Context, orgID, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.DB().QueryRowContext(ctx, itemExistsSQL, id, orgID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

func (r *ItemRepository) publishCreated(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	event := domainevents.NewItemCreatedEvent(item)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	return r.bus.PublishTx(ctx, tx, domainevents.TopicItemCreated, msg)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem reads one item row. Name and owner go through bounded.String.Scan.
func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	if err := row.Scan(&item.ID, &item.OrgID, &item.Name, &item.Owner, &item.CreatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}
