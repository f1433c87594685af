package repository

import (
	"context"

	"btcwave/internal/domain/models"
)

// SeriesSource fetches one upstream time series as raw wire-format text,
// one record per line. Implementations never retry; the orchestrator
// owns the retry budget.
type SeriesSource interface {
	Name() string
	Kind() SeriesKind
	Fetch(ctx context.Context) (string, error)
}

// Publisher emits the final report to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, r *models.Report) error
	Close() error
}

// Metrics records operational counters for a run.
type Metrics interface {
	RecordFetchAttempt(source string)
	RecordFetchError(source string)
	RecordPointsParsed(series string, n int)
	RecordPercentChange(series string, pct float64)
	RecordAnalysisDuration(seconds float64)
}
