package di

import (
	"github.com/google/wire"

	"btcwave/internal/domain/repository"
	apihandler "btcwave/internal/handler/api"
	kafkarepo "btcwave/internal/repository"
	"btcwave/internal/services/binance"
	"btcwave/internal/services/coingecko"
	"btcwave/internal/services/coinstats"
	"btcwave/internal/services/strategy"
	"btcwave/internal/usecase"
	"btcwave/pkg/cache"
	"btcwave/pkg/config"
	"btcwave/pkg/http"
	"btcwave/pkg/kafka"
	"btcwave/pkg/logger"
	"btcwave/pkg/metrics"
	"btcwave/pkg/server"
)

// ProviderSet wires the whole application graph.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideHTTPClient,
	ProvideCache,
	ProvideSources,
	ProvideOrchestrator,
	strategy.NewDecisionMatrix,
	strategy.NewAnnotator,
	ProvideStrategyParams,
	ProvidePublisher,
	ProvideAnalyzer,
	ProvideHandler,
	ProvideApp,
)

func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

func ProvideHTTPClient(cfg *config.Config) *http.Client {
	return http.NewClient(http.WithTimeout(cfg.Fetch.Timeout))
}

// ProvideCache returns the configured payload cache, or nil when
// caching is disabled.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if cfg.Cache.Backend == "redis" {
		return cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
	}
	return cache.NewMemoryCache(), nil
}

// ProvideSources builds the four upstream series clients. The monthly
// higher-wave source is omitted when disabled in config.
func ProvideSources(cfg *config.Config, httpClient *http.Client) usecase.Sources {
	sources := usecase.Sources{
		Daily: coingecko.NewClient(httpClient, cfg.CoinGecko.BaseURL,
			coingecko.WithAPIKey(cfg.CoinGecko.APIKey),
			coingecko.WithCoinID(cfg.CoinGecko.CoinID),
			coingecko.WithDays(cfg.CoinGecko.Days),
		),
		Dominance: coinstats.NewDominanceClient(httpClient, cfg.CoinStats.BaseURL,
			coinstats.WithDominanceAPIKey(cfg.CoinStats.APIKey),
			coinstats.WithDominancePeriod(cfg.CoinStats.DominancePeriod),
		),
		MinorWave: binance.NewClient(httpClient, cfg.Binance.BaseURL,
			binance.WithSymbol(cfg.Binance.Symbol),
			binance.WithInterval(cfg.Binance.Interval),
			binance.WithLimit(cfg.Binance.Limit),
		),
	}
	if cfg.Strategy.EnableHigherWave {
		sources.HigherWave = coinstats.NewChartsClient(httpClient, cfg.CoinStats.BaseURL,
			coinstats.WithChartsAPIKey(cfg.CoinStats.APIKey),
			coinstats.WithChartsCoinID(cfg.CoinStats.CoinID),
			coinstats.WithChartsPeriod(cfg.CoinStats.ChartPeriod),
		)
	}
	return sources
}

func ProvideOrchestrator(cfg *config.Config, log *logger.Logger, rec *metrics.Recorder, c cache.Service) *usecase.FetchOrchestrator {
	opts := []usecase.OrchestratorOption{
		usecase.WithRetryPolicy(usecase.RetryPolicy{
			MaxAttempts: cfg.Fetch.MaxAttempts,
			Timeout:     cfg.Fetch.Timeout,
		}),
		usecase.WithOrchestratorLogger(log),
		usecase.WithOrchestratorMetrics(rec),
	}
	if c != nil {
		opts = append(opts, usecase.WithPayloadCache(c, cfg.Cache.TTL))
	}
	return usecase.NewFetchOrchestrator(opts...)
}

func ProvideStrategyParams(cfg *config.Config) usecase.StrategyParams {
	th := func(t config.Thresholds) strategy.Thresholds {
		return strategy.Thresholds{Bullish: t.Bullish, Bearish: t.Bearish}
	}
	return usecase.StrategyParams{
		Daily:           th(cfg.Strategy.Daily),
		Dominance:       th(cfg.Strategy.Dominance),
		MinorWave:       th(cfg.Strategy.MinorWave),
		HigherWave:      th(cfg.Strategy.HigherWave),
		MaxGapHours:     cfg.Strategy.MaxGapHours,
		WaveMaxGapHours: cfg.Strategy.WaveMaxGapHours,
	}
}

// ProvidePublisher returns the Kafka report publisher, or nil when no
// brokers are configured.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil, nil
	}
	producer, err := kafka.NewProducer(
		kafka.WithBrokers(cfg.Kafka.Brokers),
		kafka.WithCompression(cfg.Kafka.Compression),
		kafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		kafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		kafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
	)
	if err != nil {
		return nil, err
	}
	return kafkarepo.NewKafkaReportPublisher(producer, cfg.Kafka.Topic), nil
}

func ProvideAnalyzer(orch *usecase.FetchOrchestrator, sources usecase.Sources, matrix *strategy.DecisionMatrix, annotator *strategy.Annotator, params usecase.StrategyParams, log *logger.Logger, rec *metrics.Recorder, pub repository.Publisher) *usecase.Analyzer {
	opts := []usecase.AnalyzerOption{
		usecase.WithAnalyzerLogger(log),
		usecase.WithAnalyzerMetrics(rec),
	}
	if pub != nil {
		opts = append(opts, usecase.WithReportPublisher(pub))
	}
	return usecase.NewAnalyzer(orch, sources, matrix, annotator, params, opts...)
}

func ProvideHandler(analyzer *usecase.Analyzer, log *logger.Logger) http.Handler {
	return apihandler.NewAnalysisHandler(analyzer, log)
}

func ProvideApp(cfg *config.Config, log *logger.Logger, analyzer *usecase.Analyzer, handler http.Handler, c cache.Service, pub repository.Publisher) *server.App {
	var opts []server.AppOption
	if c != nil {
		opts = append(opts, server.WithCloser(c.Close))
	}
	if pub != nil {
		opts = append(opts, server.WithCloser(pub.Close))
	}
	return server.NewApp(cfg, log, analyzer, handler, opts...)
}
