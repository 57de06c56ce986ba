// Package subscribers holds the item context's event handlers.
package subscribers

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/boundedstr/pkg/events"
	"github.com/ghuser/boundedstr/pkg/logger"
	"github.com/ghuser/boundedstr/pkg/telemetry"
	appsvcs "github.com/ghuser/boundedstr/services/item/application/services"
	itemevents "github.com/ghuser/boundedstr/services/item/domain/events"
)

// ItemCreated warms the item cache from item.created events.
// Payloads with out-of-range or missing names are rejected as permanent
// failures and never reach the cache. The handler is idempotent.
func ItemCreated(svc *appsvcs.ItemService, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := itemevents.ParseItemCreatedEvent(msg.Payload)
		if err != nil {
			log.WarnContext(ctx, "rejected item.created payload", "message_id", msg.UUID, "error", err)
			svc.Rejections().Record(ctx, itemevents.TopicItemCreated, err)
			return events.Permanent(err)
		}

		svc.Warm(ctx, evt.Item())
		log.InfoContext(ctx, "cache warmed", "item_id", evt.ItemID, "org_id", evt.OrgID)
		return nil
	}
}

// Register subscribes every item handler on bus and drains the error
// channels into log and Sentry.
func Register(ctx context.Context, bus *events.EventBus, svc *appsvcs.ItemService, log logger.Logger) error {
	errCh, err := bus.Subscribe(ctx, itemevents.TopicItemCreated, ItemCreated(svc, log))
	if err != nil {
		return err
	}

	go func() {
		for err := range errCh {
			log.ErrorContext(ctx, "subscriber error", "topic", itemevents.TopicItemCreated, "error", err)
			telemetry.CaptureError(ctx, err)
		}
	}()

	log.Info("event subscribers registered", "topics", []string{itemevents.TopicItemCreated})
	return nil
}
