package usecase

import (
	"context"
	"fmt"
	"time"

	"btcwave/internal/domain/models"
	"btcwave/internal/domain/repository"
	"btcwave/internal/services/marketdata"
	"btcwave/internal/services/strategy"
	"btcwave/pkg/logger"
)

// Sources bundles the four upstream series feeding one analysis run.
// HigherWave may be nil, which disables the monthly adjustment.
type Sources struct {
	Daily      repository.SeriesSource
	Dominance  repository.SeriesSource
	MinorWave  repository.SeriesSource
	HigherWave repository.SeriesSource
}

// StrategyParams carries the classification thresholds and continuity
// ceilings for one run.
type StrategyParams struct {
	Daily      strategy.Thresholds
	Dominance  strategy.Thresholds
	MinorWave  strategy.Thresholds
	HigherWave strategy.Thresholds

	// MaxGapHours bounds gaps in the hourly series, WaveMaxGapHours in
	// the daily wave series.
	MaxGapHours     float64
	WaveMaxGapHours float64
}

// DefaultStrategyParams matches the stock strategy configuration.
var DefaultStrategyParams = StrategyParams{
	Daily:           strategy.DefaultShortWindow,
	Dominance:       strategy.DefaultShortWindow,
	MinorWave:       strategy.DefaultMinorWave,
	HigherWave:      strategy.DefaultHigherWave,
	MaxGapHours:     1,
	WaveMaxGapHours: 24,
}

// Analyzer runs the full pipeline: fetch every series in a fixed order,
// parse and validate each one, classify, resolve the recommendation and
// annotate it with risk and confidence. Each run is self-contained.
type Analyzer struct {
	orch      *FetchOrchestrator
	sources   Sources
	params    StrategyParams
	matrix    *strategy.DecisionMatrix
	annotator *strategy.Annotator

	log       *logger.Logger
	metrics   repository.Metrics
	publisher repository.Publisher
}

type AnalyzerOption func(*Analyzer)

func WithAnalyzerLogger(log *logger.Logger) AnalyzerOption {
	return func(a *Analyzer) { a.log = log }
}

func WithAnalyzerMetrics(m repository.Metrics) AnalyzerOption {
	return func(a *Analyzer) { a.metrics = m }
}

// WithReportPublisher forwards every finished report downstream. A
// publish failure is logged and never fails the run.
func WithReportPublisher(p repository.Publisher) AnalyzerOption {
	return func(a *Analyzer) { a.publisher = p }
}

func NewAnalyzer(orch *FetchOrchestrator, sources Sources, matrix *strategy.DecisionMatrix, annotator *strategy.Annotator, params StrategyParams, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		orch:      orch,
		sources:   sources,
		params:    params,
		matrix:    matrix,
		annotator: annotator,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes one analysis. Sources are fetched strictly in order
// (daily, dominance, minor wave, higher wave) and the first fatal error
// aborts the run.
func (a *Analyzer) Run(ctx context.Context) (*models.Report, error) {
	start := time.Now()
	warnings := make(map[models.SeriesTag]int)

	daily, err := a.analyzeShortWindow(ctx, a.sources.Daily, models.TagDaily, a.params.Daily, warnings)
	if err != nil {
		return nil, err
	}
	dominance, err := a.analyzeShortWindow(ctx, a.sources.Dominance, models.TagDominance, a.params.Dominance, warnings)
	if err != nil {
		return nil, err
	}
	minor, err := a.analyzeFullWindow(ctx, a.sources.MinorWave, models.TagMinorWave, a.params.MinorWave, warnings)
	if err != nil {
		return nil, err
	}

	var higher *models.Signal
	if a.sources.HigherWave != nil {
		sig, err := a.analyzeFullWindow(ctx, a.sources.HigherWave, models.TagHigherWave, a.params.HigherWave, warnings)
		if err != nil {
			return nil, err
		}
		higher = &sig
	}

	key := strategy.DecisionKey{Daily: daily.State, Dominance: dominance.State, Wave: minor.State}
	rec := models.Recommendation{
		Text:        a.matrix.Lookup(key),
		RiskContext: a.annotator.RiskContext(daily.State, dominance.State, minor.State, higher),
		Confidence:  a.annotator.Confidence(daily.State, dominance.State, minor.State, higher),
	}

	report := &models.Report{
		GeneratedAt:    time.Now().UTC(),
		Daily:          daily,
		Dominance:      dominance,
		MinorWave:      minor,
		HigherWave:     higher,
		Recommendation: rec,
	}
	if len(warnings) > 0 {
		report.Warnings = warnings
	}

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, report); err != nil {
			a.log.Warn("report publish failed", logger.Error(err))
		}
	}
	if a.metrics != nil {
		a.metrics.RecordAnalysisDuration(time.Since(start).Seconds())
	}
	a.log.Info("analysis complete",
		logger.String("recommendation", rec.Text),
		logger.Int("confidence", rec.Confidence),
		logger.Duration("elapsed", time.Since(start)))

	return report, nil
}

func (a *Analyzer) analyzeShortWindow(ctx context.Context, src repository.SeriesSource, tag models.SeriesTag, th strategy.Thresholds, warnings map[models.SeriesTag]int) (models.Signal, error) {
	points, err := a.loadSeries(ctx, src, tag, a.params.MaxGapHours, warnings)
	if err != nil {
		return models.Signal{}, err
	}
	return a.classify(strategy.ClassifyShortWindow, points, th, tag)
}

func (a *Analyzer) analyzeFullWindow(ctx context.Context, src repository.SeriesSource, tag models.SeriesTag, th strategy.Thresholds, warnings map[models.SeriesTag]int) (models.Signal, error) {
	points, err := a.loadSeries(ctx, src, tag, a.params.WaveMaxGapHours, warnings)
	if err != nil {
		return models.Signal{}, err
	}
	return a.classify(strategy.ClassifyFullWindow, points, th, tag)
}

func (a *Analyzer) loadSeries(ctx context.Context, src repository.SeriesSource, tag models.SeriesTag, maxGapHours float64, warnings map[models.SeriesTag]int) ([]models.DataPoint, error) {
	raw, err := a.orch.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	res, err := marketdata.ParseSeries(raw, src.Kind())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	if res.Skipped > 0 {
		warnings[tag] = res.Skipped
		a.log.Warn("malformed lines skipped",
			logger.String("series", string(tag)), logger.Int("skipped", res.Skipped))
	}
	if a.metrics != nil {
		a.metrics.RecordPointsParsed(string(tag), len(res.Points))
	}

	if err := marketdata.ValidateContinuity(res.Points, maxGapHours); err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	return res.Points, nil
}

func (a *Analyzer) classify(fn func([]models.DataPoint, strategy.Thresholds, models.SeriesTag) (models.Signal, error), points []models.DataPoint, th strategy.Thresholds, tag models.SeriesTag) (models.Signal, error) {
	sig, err := fn(points, th, tag)
	if err != nil {
		return models.Signal{}, err
	}
	if a.metrics != nil {
		a.metrics.RecordPercentChange(string(tag), sig.PercentChange)
	}
	a.log.Debug("series classified",
		logger.String("series", string(tag)),
		logger.String("state", string(sig.State)),
		logger.Float64("percent_change", sig.PercentChange))
	return sig, nil
}
