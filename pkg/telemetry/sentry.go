package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/boundedstr/pkg/config"
)

// SetupSentry initializes the Sentry SDK. No-ops if DSN is empty.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(sentryOptions(cfg, nil)); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

// sentryOptions tags every event with the service name and drops rejected
// values. A nil transport selects the SDK's HTTP transport.
func sentryOptions(cfg *config.Config, transport sentry.Transport) sentry.ClientOptions {
	return sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		TracesSampleRate: 0.2,
		Tags:             map[string]string{"service": cfg.ServiceName},
		BeforeSend:       dropRejections,
		Transport:        transport,
	}
}

// dropRejections discards events for values refused by their length range.
// Those are client input errors; LengthRejections counts them.
func dropRejections(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	if hint != nil && Reason(hint.OriginalException) != "" {
		return nil
	}
	return event
}

// CaptureError reports err on the hub bound to ctx, falling back to the
// global hub.
func CaptureError(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}

// SentryFlush flushes buffered events before process exit.
func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware returns a net/http middleware that captures panics and errors.
// Repanic: true so the outer Recovery middleware still handles the 500 response.
func SentryMiddleware() func(http.Handler) http.Handler {
	h := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return h.Handle
}
