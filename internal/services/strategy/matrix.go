package strategy

import "btcwave/internal/domain/models"

// DecisionKey indexes the recommendation table. The higher-wave signal
// never participates here; it only adjusts risk and confidence.
type DecisionKey struct {
	Daily     models.TrendState
	Dominance models.TrendState
	Wave      models.TrendState
}

// MarketIndecisive is the fallback recommendation for a key the table
// does not cover. With the full 27-entry table this is defensive only.
const MarketIndecisive = "MARKET_INDECISIVE"

// DecisionMatrix maps every (daily, dominance, wave) combination to a
// recommendation. Built once at startup and injected; never mutated.
type DecisionMatrix struct {
	table map[DecisionKey]string
}

// NewDecisionMatrix builds the full 27-combination table.
func NewDecisionMatrix() *DecisionMatrix {
	b := models.TrendBullish
	s := models.TrendBearish
	n := models.TrendNeutral

	return &DecisionMatrix{table: map[DecisionKey]string{
		// BTC Bullish, BTC.D Bullish
		{b, b, b}: "Strong BTC buy (Low risk)",
		{b, b, n}: "Moderate BTC buy (Medium risk)",
		{b, b, s}: "Avoid BTC (High risk)",

		// BTC Bullish, BTC.D Bearish
		{b, s, b}: "Risky altcoin buy (Requires confirmation)",
		{b, s, n}: "Altcoin accumulation (Medium risk)",
		{b, s, s}: "Altcoin sell (High risk)",

		// BTC Bullish, BTC.D Neutral
		{b, n, b}: "Strong BTC buy (Medium risk)",
		{b, n, n}: "BTC accumulation (Medium risk)",
		{b, n, s}: "BTC sell (High risk)",

		// BTC Bearish, BTC.D Bullish
		{s, b, b}: "BTC short (Medium risk)",
		{s, b, n}: "BTC short (Low risk)",
		{s, b, s}: "Strong BTC short (High risk)",

		// BTC Bearish, BTC.D Bearish
		{s, s, b}: "Altcoin buy (Low risk)",
		{s, s, n}: "Altcoin accumulation (Low risk)",
		{s, s, s}: "Strong altcoin buy (Medium risk)",

		// BTC Bearish, BTC.D Neutral
		{s, n, b}: "BTC short (High risk)",
		{s, n, n}: "Market neutral (Low risk)",
		{s, n, s}: "Altcoin buy (Medium risk)",

		// BTC Neutral, BTC.D Bullish
		{n, b, b}: "BTC accumulation (Low risk)",
		{n, b, n}: "Market watch (Low risk)",
		{n, b, s}: "Altcoin sell (Medium risk)",

		// BTC Neutral, BTC.D Bearish
		{n, s, b}: "Altcoin accumulation (Low risk)",
		{n, s, n}: "Market watch (Low risk)",
		{n, s, s}: "BTC buy (Medium risk)",

		// BTC Neutral, BTC.D Neutral
		{n, n, b}: "Market indecisive (Low risk)",
		{n, n, n}: MarketIndecisive,
		{n, n, s}: "Market indecisive (Low risk)",
	}}
}

// Lookup returns the recommendation for a key, or MarketIndecisive if
// the key is somehow unmapped. A miss never fails the pipeline.
func (m *DecisionMatrix) Lookup(key DecisionKey) string {
	if rec, ok := m.table[key]; ok {
		return rec
	}
	return MarketIndecisive
}

// Size returns the number of entries in the table.
func (m *DecisionMatrix) Size() int {
	return len(m.table)
}
