package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"btcwave/internal/domain/models"
	"btcwave/internal/domain/repository"
	"btcwave/internal/services/strategy"
)

func ohlcLines(start time.Time, step time.Duration, opens []float64, priceStep float64) string {
	var sb strings.Builder
	for i, open := range opens {
		ts := start.Add(time.Duration(i) * step)
		fmt.Fprintf(&sb, "%s | O: %.2f | H: %.2f | L: %.2f | C: %.2f\n",
			ts.UTC().Format("2006-01-02T15:04:05Z"), open, open+priceStep, open-10, open+priceStep)
	}
	return sb.String()
}

func dominanceLines(start time.Time, opens []float64, step float64) string {
	var sb strings.Builder
	for i, open := range opens {
		ts := start.Add(time.Duration(i) * time.Hour)
		fmt.Fprintf(&sb, "%s | Open: %.2f%%, High: %.2f%%, Low: %.2f%%, Close: %.2f%%\n",
			ts.UTC().Format("2006-01-02T15:04:05Z"), open, open+step, open, open+step)
	}
	return sb.String()
}

func rangeFloats(first, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = first + float64(i)*step
	}
	return out
}

var (
	hourStart = time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)
	dayStart  = time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC)
)

// hourly 50000 -> 50800: short window +1.40%, Bullish
func bullishDaily() string {
	return ohlcLines(hourStart, time.Hour, rangeFloats(50000, 100, 8), 100)
}

// hourly dominance 48.50 -> 50.50: short window +3.59%, Bullish
func bullishDominance() string {
	return dominanceLines(hourStart, rangeFloats(48.50, 0.25, 8), 0.25)
}

// daily 48000 -> 48800: full window +1.67%, Neutral under the +/-2 band
func neutralWeekly() string {
	return ohlcLines(dayStart, 24*time.Hour, rangeFloats(48000, 100, 8), 100)
}

// daily 47000 -> 51000: full window +8.5%, Bullish under the +/-5 band
func bullishMonthly() string {
	return ohlcLines(dayStart, 24*time.Hour, rangeFloats(47000, 500, 8), 500)
}

type fakePublisher struct {
	reports []*models.Report
	err     error
}

func (p *fakePublisher) Publish(_ context.Context, r *models.Report) error {
	p.reports = append(p.reports, r)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

func newTestAnalyzer(sources Sources, opts ...AnalyzerOption) *Analyzer {
	orch := NewFetchOrchestrator(WithRetryPolicy(RetryPolicy{MaxAttempts: 2, Timeout: time.Second}))
	return NewAnalyzer(orch, sources, strategy.NewDecisionMatrix(), strategy.NewAnnotator(), DefaultStrategyParams, opts...)
}

func threeSources() Sources {
	return Sources{
		Daily:     &fakeSource{name: "daily", kind: repository.KindOHLC, raw: bullishDaily()},
		Dominance: &fakeSource{name: "dominance", kind: repository.KindDominance, raw: bullishDominance()},
		MinorWave: &fakeSource{name: "weekly", kind: repository.KindOHLC, raw: neutralWeekly()},
	}
}

func TestRunEndToEnd(t *testing.T) {
	a := newTestAnalyzer(threeSources())

	report, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.Daily.State != models.TrendBullish {
		t.Errorf("daily = %s, want Bullish", report.Daily.State)
	}
	if report.Dominance.State != models.TrendBullish {
		t.Errorf("dominance = %s, want Bullish", report.Dominance.State)
	}
	if report.MinorWave.State != models.TrendNeutral {
		t.Errorf("minor wave = %s, want Neutral", report.MinorWave.State)
	}
	if report.HigherWave != nil {
		t.Errorf("higher wave = %+v, want nil with no monthly source", report.HigherWave)
	}
	if report.Recommendation.Text != "Moderate BTC buy (Medium risk)" {
		t.Errorf("recommendation = %q", report.Recommendation.Text)
	}
	if report.Recommendation.Confidence != 60 {
		t.Errorf("confidence = %d, want 60", report.Recommendation.Confidence)
	}
	if report.Recommendation.RiskContext != "Standard market conditions - monitor closely" {
		t.Errorf("risk context = %q", report.Recommendation.RiskContext)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", report.Warnings)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("generated_at not set")
	}
}

func TestRunWithHigherWaveConflict(t *testing.T) {
	sources := threeSources()
	sources.HigherWave = &fakeSource{name: "monthly", kind: repository.KindOHLC, raw: bullishMonthly()}
	a := newTestAnalyzer(sources)

	report, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.HigherWave == nil || report.HigherWave.State != models.TrendBullish {
		t.Fatalf("higher wave = %+v, want Bullish", report.HigherWave)
	}
	// monthly Bullish vs weekly Neutral: 60 - 10 -> 50
	if report.Recommendation.Confidence != 50 {
		t.Errorf("confidence = %d, want 50", report.Recommendation.Confidence)
	}
	wantPrefix := "Warning: monthly trend Bullish conflicts with weekly trend Neutral."
	if !strings.HasPrefix(report.Recommendation.RiskContext, wantPrefix) {
		t.Errorf("risk context = %q, want prefix %q", report.Recommendation.RiskContext, wantPrefix)
	}
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	sources := threeSources()
	failing := &fakeSource{name: "daily", kind: repository.KindOHLC, err: errors.New("boom")}
	sources.Daily = failing
	a := newTestAnalyzer(sources)

	_, err := a.Run(context.Background())
	if !errors.Is(err, models.ErrExecutionFailure) {
		t.Fatalf("err = %v, want ErrExecutionFailure", err)
	}
	if got := sources.Dominance.(*fakeSource).calls; got != 0 {
		t.Errorf("dominance fetched %d times after daily failed, want 0", got)
	}
}

func TestRunIncompleteData(t *testing.T) {
	sources := threeSources()
	sources.Daily = &fakeSource{
		name: "daily",
		kind: repository.KindOHLC,
		raw:  ohlcLines(hourStart, time.Hour, rangeFloats(50000, 100, 6), 100),
	}
	a := newTestAnalyzer(sources)

	if _, err := a.Run(context.Background()); !errors.Is(err, models.ErrIncompleteData) {
		t.Fatalf("err = %v, want ErrIncompleteData", err)
	}
}

func TestRunTimestampDiscontinuity(t *testing.T) {
	raw := bullishDaily() +
		// three hours after the series end
		ohlcLines(hourStart.Add(10*time.Hour), time.Hour, []float64{50900}, 100)
	sources := threeSources()
	sources.Daily = &fakeSource{name: "daily", kind: repository.KindOHLC, raw: raw}
	a := newTestAnalyzer(sources)

	if _, err := a.Run(context.Background()); !errors.Is(err, models.ErrTimestampDiscontinuity) {
		t.Fatalf("err = %v, want ErrTimestampDiscontinuity", err)
	}
}

func TestRunCountsMalformedLines(t *testing.T) {
	raw := neutralWeekly() +
		"2025-08-30T00:00:00Z | O: garbage | H: x | L: y | C: z\n"
	sources := threeSources()
	sources.MinorWave = &fakeSource{name: "weekly", kind: repository.KindOHLC, raw: raw}
	a := newTestAnalyzer(sources)

	report, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Warnings[models.TagMinorWave] != 1 {
		t.Errorf("warnings = %v, want 1 skipped minor wave line", report.Warnings)
	}
}

func TestRunPublisherFailureDoesNotAbort(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	a := newTestAnalyzer(threeSources(), WithReportPublisher(pub))

	report, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report == nil {
		t.Fatal("no report returned")
	}
	if len(pub.reports) != 1 {
		t.Errorf("publish calls = %d, want 1", len(pub.reports))
	}
}

func TestRunIdempotent(t *testing.T) {
	a := newTestAnalyzer(threeSources())

	first, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	second, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if first.Daily != second.Daily || first.Dominance != second.Dominance || first.MinorWave != second.MinorWave {
		t.Error("signals changed between runs with identical input")
	}
	if first.Recommendation != second.Recommendation {
		t.Errorf("recommendation changed: %+v vs %+v", first.Recommendation, second.Recommendation)
	}
}
