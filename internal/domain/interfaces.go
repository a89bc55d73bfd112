package domain

import (
	"context"
	"time"
)

// MeasurementRepository is the append-only measurement log. Inserts
// must be atomic; there is no update or delete. List returns records
// whose measured_at calendar date falls within [since, until] (either
// bound may be nil), ascending by measured_at with insertion order as
// the same-timestamp tie-break.
type MeasurementRepository interface {
	Insert(ctx context.Context, m *Measurement) error
	List(ctx context.Context, since, until *time.Time) ([]Measurement, error)
}

// NarrativeRewriter is the optional external collaborator that turns a
// structured summary into a short, neutral, non-diagnostic insight.
// Callers must tolerate failure: any error leaves the AI narrative
// absent and never fails the request.
type NarrativeRewriter interface {
	Rewrite(ctx context.Context, summary *Summary) (string, error)
}
