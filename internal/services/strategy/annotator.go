package strategy

import (
	"fmt"

	"btcwave/internal/domain/models"
)

// Annotator derives the risk narrative and confidence score from the
// classified trend states. Stateless; safe to share.
type Annotator struct{}

func NewAnnotator() *Annotator { return &Annotator{} }

const standardConditions = "Standard market conditions - monitor closely"

// RiskContext returns the narrative for the trend combination. When a
// higher-wave signal is present and disagrees with the wave signal, a
// conflict warning naming both states is prepended.
func (a *Annotator) RiskContext(daily, dominance, wave models.TrendState, higher *models.Signal) string {
	base := standardConditions
	switch {
	case daily == models.TrendBullish && dominance == models.TrendBullish && wave == models.TrendBullish:
		base = "Low risk - All indicators aligned bullish"
	case daily == models.TrendBullish && dominance == models.TrendBearish && wave == models.TrendBullish:
		base = "Requires HWC confirmation - monitor for weekly trend reversal"
	case daily == models.TrendBullish && dominance == models.TrendBearish && wave == models.TrendBearish:
		base = "High risk - Altcoin market weakness"
	case daily == models.TrendBearish && dominance == models.TrendBullish && wave == models.TrendBullish:
		base = "Medium risk - BTC weakness with dominance strength"
	case daily == models.TrendBearish && dominance == models.TrendBullish && wave == models.TrendBearish:
		base = "High risk - Strong bearish momentum"
	}

	if higher != nil && higher.State != wave {
		return fmt.Sprintf("Warning: monthly trend %s conflicts with weekly trend %s. %s", higher.State, wave, base)
	}
	return base
}

// Confidence scores trend alignment. Base 65; +20 when all three states
// agree, otherwise +10 when any pair agrees; -15 when any of the three
// is Neutral; a higher-wave signal adds +5 on agreement with the wave
// signal or -10 on conflict. Clamped to [50,95].
func (a *Annotator) Confidence(daily, dominance, wave models.TrendState, higher *models.Signal) int {
	confidence := 65

	if daily == dominance && dominance == wave {
		confidence += 20
	} else if daily == dominance || daily == wave || dominance == wave {
		confidence += 10
	}

	if daily == models.TrendNeutral || dominance == models.TrendNeutral || wave == models.TrendNeutral {
		confidence -= 15
	}

	if higher != nil {
		if higher.State == wave {
			confidence += 5
		} else {
			confidence -= 10
		}
	}

	if confidence < 50 {
		confidence = 50
	}
	if confidence > 95 {
		confidence = 95
	}
	return confidence
}
