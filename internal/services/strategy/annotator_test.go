package strategy

import (
	"strings"
	"testing"

	"btcwave/internal/domain/models"
)

func TestConfidenceScoring(t *testing.T) {
	a := NewAnnotator()
	b := models.TrendBullish
	s := models.TrendBearish
	n := models.TrendNeutral

	higherOf := func(state models.TrendState) *models.Signal {
		return &models.Signal{Tag: models.TagHigherWave, State: state, PercentChange: 6}
	}

	cases := []struct {
		name                   string
		daily, dominance, wave models.TrendState
		higher                 *models.Signal
		want                   int
	}{
		{"all aligned", b, b, b, nil, 85},
		{"all aligned with agreeing monthly", b, b, b, higherOf(b), 90},
		{"all aligned with conflicting monthly", b, b, b, higherOf(s), 75},
		{"pair agrees", b, b, s, nil, 75},
		{"pair agrees with neutral", b, b, n, nil, 60},
		{"all neutral", n, n, n, nil, 70},
		{"all distinct", b, s, n, nil, 50},
		{"all distinct with conflicting monthly", b, s, n, higherOf(b), 50}, // raw 40, clamped
	}
	for _, tc := range cases {
		if got := a.Confidence(tc.daily, tc.dominance, tc.wave, tc.higher); got != tc.want {
			t.Errorf("%s: confidence = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestConfidenceAlwaysInBand(t *testing.T) {
	a := NewAnnotator()

	highers := []*models.Signal{
		nil,
		{Tag: models.TagHigherWave, State: models.TrendBullish},
		{Tag: models.TagHigherWave, State: models.TrendBearish},
		{Tag: models.TagHigherWave, State: models.TrendNeutral},
	}
	for _, d := range models.TrendStates {
		for _, dom := range models.TrendStates {
			for _, w := range models.TrendStates {
				for _, h := range highers {
					got := a.Confidence(d, dom, w, h)
					if got < 50 || got > 95 {
						t.Errorf("Confidence(%s,%s,%s,%v) = %d, outside [50,95]", d, dom, w, h, got)
					}
				}
			}
		}
	}
}

func TestRiskContextNarratives(t *testing.T) {
	a := NewAnnotator()
	b := models.TrendBullish
	s := models.TrendBearish
	n := models.TrendNeutral

	cases := []struct {
		daily, dominance, wave models.TrendState
		want                   string
	}{
		{b, b, b, "Low risk - All indicators aligned bullish"},
		{b, s, b, "Requires HWC confirmation - monitor for weekly trend reversal"},
		{b, s, s, "High risk - Altcoin market weakness"},
		{s, b, b, "Medium risk - BTC weakness with dominance strength"},
		{s, b, s, "High risk - Strong bearish momentum"},
		{n, n, n, standardConditions},
		{b, b, n, standardConditions},
	}
	for _, tc := range cases {
		if got := a.RiskContext(tc.daily, tc.dominance, tc.wave, nil); got != tc.want {
			t.Errorf("RiskContext(%s,%s,%s) = %q, want %q", tc.daily, tc.dominance, tc.wave, got, tc.want)
		}
	}
}

func TestRiskContextMonthlyConflict(t *testing.T) {
	a := NewAnnotator()
	b := models.TrendBullish
	s := models.TrendBearish

	higher := &models.Signal{Tag: models.TagHigherWave, State: s, PercentChange: -7}
	got := a.RiskContext(b, b, b, higher)

	wantPrefix := "Warning: monthly trend Bearish conflicts with weekly trend Bullish."
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("conflict narrative = %q, want prefix %q", got, wantPrefix)
	}
	if !strings.HasSuffix(got, "Low risk - All indicators aligned bullish") {
		t.Errorf("conflict narrative should retain the base context, got %q", got)
	}

	// agreeing monthly leaves the narrative untouched
	higher.State = b
	if got := a.RiskContext(b, b, b, higher); got != "Low risk - All indicators aligned bullish" {
		t.Errorf("agreeing monthly altered narrative: %q", got)
	}
}
