package rates

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"petquote/internal/models"
)

// FallbackProvider substitutes the built-in rate whenever the wrapped
// provider fails. FetchRate never returns an error.
type FallbackProvider struct {
	inner   Provider
	logger  zerolog.Logger
	metrics MetricsCollector
	now     func() time.Time
}

func NewFallbackProvider(inner Provider, logger zerolog.Logger, metrics MetricsCollector) *FallbackProvider {
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &FallbackProvider{
		inner:   inner,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

func (p *FallbackProvider) Name() string { return p.inner.Name() }

func (p *FallbackProvider) FetchRate(ctx context.Context) (models.ExchangeRate, error) {
	start := p.now()
	rate, err := p.inner.FetchRate(ctx)
	p.metrics.RecordFetchDuration(p.inner.Name(), p.now().Sub(start))
	if err != nil {
		p.logger.Warn().Err(err).Str("source", p.inner.Name()).Msg("rate fetch failed, using default rate")
		p.metrics.RecordFetch(p.inner.Name(), ResultFallback)
		return DefaultRate(p.now()), nil
	}
	p.metrics.RecordFetch(p.inner.Name(), ResultSuccess)
	return rate, nil
}
