package models

import "time"

// TrendState classifies the direction of a series over its lookback window.
type TrendState string

const (
	TrendBullish TrendState = "Bullish"
	TrendBearish TrendState = "Bearish"
	TrendNeutral TrendState = "Neutral"
)

// TrendStates lists every state, in matrix order.
var TrendStates = []TrendState{TrendBullish, TrendBearish, TrendNeutral}

// SeriesTag identifies which input series a signal was computed from.
type SeriesTag string

const (
	TagDaily      SeriesTag = "daily"
	TagDominance  SeriesTag = "dominance"
	TagMinorWave  SeriesTag = "minor_wave"
	TagHigherWave SeriesTag = "higher_wave"
)

// DataPoint is one parsed candle. Only open and close participate in
// classification; highs, lows and volume are dropped at parse time.
// Dominance series store the open/close percentage literally here.
type DataPoint struct {
	Timestamp time.Time
	Open      float64
	Close     float64
}

// Signal is the classifier's output for one series.
type Signal struct {
	Tag           SeriesTag  `json:"tag"`
	State         TrendState `json:"state"`
	PercentChange float64    `json:"percent_change"`
}

// Recommendation is the final trading advice derived from the signals.
type Recommendation struct {
	Text        string `json:"text"`
	RiskContext string `json:"risk_context"`
	Confidence  int    `json:"confidence"` // always within [50,95]
}
