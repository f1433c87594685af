package models

import "errors"

// Fatal error kinds. All three abort the analysis before any
// recommendation is produced; none is ever recovered internally.
var (
	// ErrIncompleteData marks a series with fewer than the minimum
	// usable data points.
	ErrIncompleteData = errors.New("INCOMPLETE_DATA")

	// ErrTimestampDiscontinuity marks a series with a gap between
	// consecutive points exceeding its configured ceiling.
	ErrTimestampDiscontinuity = errors.New("TIMESTAMP_DISCONTINUITY")

	// ErrExecutionFailure marks an upstream provider that could not be
	// fetched within the retry budget.
	ErrExecutionFailure = errors.New("EXECUTION_FAILURE")
)
