package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Report is the complete output of one analysis run. Nothing in it is
// retained between runs.
type Report struct {
	GeneratedAt    time.Time         `json:"generated_at"`
	Daily          Signal            `json:"daily"`
	Dominance      Signal            `json:"dominance"`
	MinorWave      Signal            `json:"minor_wave"`
	HigherWave     *Signal           `json:"higher_wave,omitempty"`
	Recommendation Recommendation    `json:"recommendation"`
	Warnings       map[SeriesTag]int `json:"warnings,omitempty"` // skipped malformed lines per series
}

// Text renders the report in the console format.
func (r *Report) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s]\n", r.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"))
	fmt.Fprintf(&b, "BTC 7h Trend: %s %.2f%% (%s)\n", glyph(r.Daily.PercentChange), math.Abs(r.Daily.PercentChange), r.Daily.State)
	fmt.Fprintf(&b, "BTC.D 7h Trend: %s %.2f%% (%s)\n", glyph(r.Dominance.PercentChange), math.Abs(r.Dominance.PercentChange), r.Dominance.State)
	fmt.Fprintf(&b, "MWC Status: %s (Weekly %+.1f%%)\n", r.MinorWave.State, r.MinorWave.PercentChange)
	if r.HigherWave != nil {
		fmt.Fprintf(&b, "HWC Status: %s (Monthly %+.1f%%)\n", r.HigherWave.State, r.HigherWave.PercentChange)
	}
	fmt.Fprintf(&b, "\nRECOMMENDATION: %s\n", r.Recommendation.Text)
	fmt.Fprintf(&b, "RISK CONTEXT: %s\n", r.Recommendation.RiskContext)
	fmt.Fprintf(&b, "CONFIDENCE: %d%% (based on historical pattern match)\n", r.Recommendation.Confidence)

	return b.String()
}

func glyph(change float64) string {
	if change > 0 {
		return "▲"
	}
	return "▼"
}
