package strategy

import (
	"fmt"

	"btcwave/internal/domain/models"
)

// Thresholds holds the bullish/bearish cutoffs for one series, in percent.
type Thresholds struct {
	Bullish float64
	Bearish float64
}

// Default threshold pairs per lookback horizon.
var (
	DefaultShortWindow = Thresholds{Bullish: 0.5, Bearish: -0.5}
	DefaultMinorWave   = Thresholds{Bullish: 2.0, Bearish: -2.0}
	DefaultHigherWave  = Thresholds{Bullish: 5.0, Bearish: -5.0}
)

// lookback is the short-window reference depth: the open of the point
// this many positions before the end is compared against the last close.
const lookback = 7

// ClassifyShortWindow classifies the recent movement of a series:
// the open of the 7th-from-last point against the close of the last.
// Used for the daily price and dominance series.
func ClassifyShortWindow(points []models.DataPoint, th Thresholds, tag models.SeriesTag) (models.Signal, error) {
	if len(points) < lookback {
		return models.Signal{}, fmt.Errorf("%w: need at least %d data points for %s trend calculation", models.ErrIncompleteData, lookback, tag)
	}

	refOpen := points[len(points)-lookback].Open
	lastClose := points[len(points)-1].Close
	return classify(refOpen, lastClose, th, tag), nil
}

// ClassifyFullWindow classifies the whole series: first open against last
// close, regardless of length beyond the minimum. Used for the wave series.
func ClassifyFullWindow(points []models.DataPoint, th Thresholds, tag models.SeriesTag) (models.Signal, error) {
	if len(points) < lookback {
		return models.Signal{}, fmt.Errorf("%w: need at least %d data points for %s trend calculation", models.ErrIncompleteData, lookback, tag)
	}

	return classify(points[0].Open, points[len(points)-1].Close, th, tag), nil
}

// classify applies the threshold rule. The comparisons are strictly
// greater/less than: a change landing exactly on either threshold is
// Neutral.
func classify(refOpen, lastClose float64, th Thresholds, tag models.SeriesTag) models.Signal {
	change := (lastClose - refOpen) / refOpen * 100

	state := models.TrendNeutral
	switch {
	case change > th.Bullish:
		state = models.TrendBullish
	case change < th.Bearish:
		state = models.TrendBearish
	}

	return models.Signal{Tag: tag, State: state, PercentChange: change}
}
