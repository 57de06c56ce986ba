package telemetry

import (
	"context"
	"encoding/json"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/boundedstr/pkg/bounded"
)

// LengthRejections counts values refused for falling outside their length
// range, labelled by field and reason (see Reason).
type LengthRejections struct {
	counter metric.Int64Counter
}

// NewLengthRejections registers the boundedstr.length.rejections counter on meter.
func NewLengthRejections(meter metric.Meter) (*LengthRejections, error) {
	c, err := meter.Int64Counter("boundedstr.length.rejections",
		metric.WithDescription("Values rejected for violating a length range"),
		metric.WithUnit("{value}"),
	)
	if err != nil {
		return nil, err
	}
	return &LengthRejections{counter: c}, nil
}

// Record increments the counter when Reason classifies err.
// Other errors, and nil, are ignored.
func (m *LengthRejections) Record(ctx context.Context, field string, err error) {
	reason := Reason(err)
	if m == nil || reason == "" {
		return
	}
	m.counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("field", field),
		attribute.String("reason", reason),
	))
}

// Reason classifies err as "too_long", "too_short", "invalid_utf8",
// "wrong_type" or "". A JSON type mismatch counts as "wrong_type".
func Reason(err error) string {
	var (
		long    *bounded.TooLongError
		short   *bounded.TooShortError
		typ     *bounded.TypeError
		jsonTyp *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &long):
		return "too_long"
	case errors.As(err, &short):
		return "too_short"
	case errors.Is(err, bounded.ErrInvalidUTF8):
		return "invalid_utf8"
	case errors.As(err, &typ), errors.As(err, &jsonTyp):
		return "wrong_type"
	default:
		return ""
	}
}
