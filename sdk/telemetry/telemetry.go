// Package telemetry provides per-request trace identifiers.
package telemetry

import (
	"context"

	"github.com/google/uuid"
)

type telKey int

const (
	traceIDKey telKey = iota + 1
)

// NoTrace is reported for contexts that never passed through SetTraceID.
const NoTrace = "00000000-0000-0000-0000-000000000000"

type Telemetry struct{}

// NewTelemetry creates a new telemetry instance.
func NewTelemetry() Telemetry {
	return Telemetry{}
}

// SetTraceID stores a fresh trace id in the context.
func (t Telemetry) SetTraceID(ctx context.Context) context.Context {
	return t.WithTraceID(ctx, uuid.NewString())
}

// WithTraceID stores the given trace id, typically propagated from an inbound
// request header. Ids that are not valid UUIDs are replaced.
func (t Telemetry) WithTraceID(ctx context.Context, traceID string) context.Context {
	if _, err := uuid.Parse(traceID); err != nil {
		traceID = uuid.NewString()
	}
	return context.WithValue(ctx, traceIDKey, traceID)
}

func (t Telemetry) GetTraceID(ctx context.Context) string {
	v, ok := ctx.Value(traceIDKey).(string)
	if !ok {
		return NoTrace
	}

	return v
}
