package services

import (
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/ghuser/boundedstr/pkg/app"
	"github.com/ghuser/boundedstr/pkg/telemetry"
	"github.com/ghuser/boundedstr/services/item/infrastructure/cache"
	"github.com/ghuser/boundedstr/services/item/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the Application container.
func New(a *app.Application) (*Services, error) {
	rejections, err := telemetry.NewLengthRejections(otel.Meter("boundedstr/item"))
	if err != nil {
		return nil, fmt.Errorf("item metrics: %w", err)
	}

	repo := postgres.NewItemRepository(a.Db, a.EventBus)

	var itemCache ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
	}

	return &Services{
		Item: NewItemService(repo, itemCache, a.Logger.With("service", "item"), rejections),
	}, nil
}
