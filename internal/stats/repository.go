package stats

import (
	"context"
	"time"
)

type Repository interface {
	// Increment adds delta to the named counter for the given date,
	// creating the row if it does not exist yet.
	Increment(ctx context.Context, date time.Time, c Counter, delta int) error
	// Get returns nil, nil when no row exists for the date.
	Get(ctx context.Context, date time.Time) (*DailyStats, error)
	// Range returns rows with from <= date <= to, ordered by date ascending.
	Range(ctx context.Context, from, to time.Time) ([]DailyStats, error)
}
