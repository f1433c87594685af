package usecase

import (
	"context"
	"fmt"
	"time"

	"btcwave/internal/domain/models"
	"btcwave/internal/domain/repository"
	"btcwave/pkg/cache"
	"btcwave/pkg/logger"
)

// FetchOrchestrator pulls raw series text from upstream sources under a
// retry budget. A raw payload cache sits in front of the sources so
// repeated runs within the TTL skip the upstream entirely.
type FetchOrchestrator struct {
	policy   RetryPolicy
	log      *logger.Logger
	metrics  repository.Metrics
	cache    cache.Service
	cacheTTL time.Duration
}

type OrchestratorOption func(*FetchOrchestrator)

func WithRetryPolicy(p RetryPolicy) OrchestratorOption {
	return func(o *FetchOrchestrator) { o.policy = p }
}

func WithOrchestratorLogger(log *logger.Logger) OrchestratorOption {
	return func(o *FetchOrchestrator) { o.log = log }
}

func WithOrchestratorMetrics(m repository.Metrics) OrchestratorOption {
	return func(o *FetchOrchestrator) { o.metrics = m }
}

// WithPayloadCache caches raw payloads keyed by source name for ttl.
func WithPayloadCache(c cache.Service, ttl time.Duration) OrchestratorOption {
	return func(o *FetchOrchestrator) {
		o.cache = c
		o.cacheTTL = ttl
	}
}

func NewFetchOrchestrator(opts ...OrchestratorOption) *FetchOrchestrator {
	o := &FetchOrchestrator{
		policy: DefaultRetryPolicy,
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.policy = o.policy.normalized()
	return o
}

// Fetch returns the raw series text for one source, retrying up to the
// policy budget. When every attempt fails the last error is wrapped in
// ErrExecutionFailure.
func (o *FetchOrchestrator) Fetch(ctx context.Context, source repository.SeriesSource) (string, error) {
	key := "series:" + source.Name()
	if o.cache != nil {
		var cached string
		if err := o.cache.Get(ctx, key, &cached); err == nil {
			o.log.Debug("payload cache hit", logger.String("source", source.Name()))
			return cached, nil
		}
	}

	var lastErr error
	for attempt := 1; attempt <= o.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		if o.metrics != nil {
			o.metrics.RecordFetchAttempt(source.Name())
		}

		raw, err := o.fetchOnce(ctx, source)
		if err == nil {
			if o.cache != nil {
				if err := o.cache.Set(ctx, key, raw, o.cacheTTL); err != nil {
					o.log.Warn("payload cache write failed",
						logger.String("source", source.Name()), logger.Error(err))
				}
			}
			return raw, nil
		}

		lastErr = err
		if o.metrics != nil {
			o.metrics.RecordFetchError(source.Name())
		}
		o.log.Warn("fetch attempt failed",
			logger.String("source", source.Name()),
			logger.Int("attempt", attempt),
			logger.Int("max_attempts", o.policy.MaxAttempts),
			logger.Error(err))
	}

	return "", fmt.Errorf("%w: %s failed after %d attempts: %v",
		models.ErrExecutionFailure, source.Name(), o.policy.MaxAttempts, lastErr)
}

func (o *FetchOrchestrator) fetchOnce(ctx context.Context, source repository.SeriesSource) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, o.policy.Timeout)
	defer cancel()
	return source.Fetch(attemptCtx)
}
