package app

import (
	"github.com/ghuser/boundedstr/pkg/cache"
	"github.com/ghuser/boundedstr/pkg/database"
	"github.com/ghuser/boundedstr/pkg/events"
	"github.com/ghuser/boundedstr/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to every service's route registration during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context
// methods and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing item", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient // nil disables read-through caching
}
