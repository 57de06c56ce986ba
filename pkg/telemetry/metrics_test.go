package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/ghuser/boundedstr/pkg/bounded"
)

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"too long", &bounded.TooLongError{Len: 300, Max: 255}, "too_long"},
		{"too short wrapped", fmt.Errorf("create: %w", &bounded.TooShortError{Len: 0, Min: 1}), "too_short"},
		{"decode error", &bounded.DecodeError{Format: bounded.FormatJSON, Err: &bounded.TooShortError{Len: 2, Min: 3}}, "too_short"},
		{"type error", &bounded.TypeError{Format: bounded.FormatSQL, Got: "NULL"}, "wrong_type"},
		{"json type mismatch", &json.UnmarshalTypeError{Value: "number", Field: "name"}, "wrong_type"},
		{"invalid utf8", &bounded.DecodeError{Format: bounded.FormatSQL, Err: bounded.ErrInvalidUTF8}, "invalid_utf8"},
		{"other", errors.New("boom"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reason(tt.err); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLengthRejections_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background()) //nolint:errcheck

	m, err := NewLengthRejections(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewLengthRejections: %v", err)
	}

	ctx := context.Background()
	m.Record(ctx, "name", &bounded.TooLongError{Len: 300, Max: 255})
	m.Record(ctx, "name", &bounded.TooLongError{Len: 256, Max: 255})
	m.Record(ctx, "owner_name", &bounded.TooShortError{Len: 1, Min: 3})
	m.Record(ctx, "name", errors.New("not a length error"))
	m.Record(ctx, "name", nil)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(rm.ScopeMetrics) != 1 || len(rm.ScopeMetrics[0].Metrics) != 1 {
		t.Fatalf("expected one metric, got %+v", rm.ScopeMetrics)
	}
	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected Sum[int64], got %T", rm.ScopeMetrics[0].Metrics[0].Data)
	}

	got := map[string]int64{}
	for _, dp := range sum.DataPoints {
		field, _ := dp.Attributes.Value(attribute.Key("field"))
		reason, _ := dp.Attributes.Value(attribute.Key("reason"))
		got[field.AsString()+"/"+reason.AsString()] = dp.Value
	}
	if got["name/too_long"] != 2 || got["owner_name/too_short"] != 1 || len(got) != 2 {
		t.Errorf("unexpected data points: %v", got)
	}
}

func TestLengthRejections_nilReceiver(t *testing.T) {
	var m *LengthRejections
	m.Record(context.Background(), "name", &bounded.TooLongError{Len: 2, Max: 1})
}
