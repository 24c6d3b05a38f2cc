package rates

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"petquote/internal/models"
)

// sharedFetchTimeout bounds an upstream fetch once it is detached from the
// caller that started it.
const sharedFetchTimeout = 30 * time.Second

// Cache stores the last rate fetched per source. GetRate returns nil, nil on
// a miss.
type Cache interface {
	GetRate(ctx context.Context, source string) (*models.ExchangeRate, error)
	SetRate(ctx context.Context, rate models.ExchangeRate, ttl time.Duration) error
	InvalidateRate(ctx context.Context, source string) error
}

// SnapshotRecorder keeps a history of fetched rates.
type SnapshotRecorder interface {
	Record(ctx context.Context, snapshot *models.RateSnapshot) error
}

// CachedProvider serves rates from the cache and fetches from the wrapped
// provider on a miss. Concurrent misses share one upstream call. Cache and
// history failures are logged and never fail the fetch.
type CachedProvider struct {
	inner   Provider
	cache   Cache
	history SnapshotRecorder
	ttl     time.Duration
	metrics MetricsCollector
	logger  zerolog.Logger
	group   singleflight.Group
}

func NewCachedProvider(inner Provider, cache Cache, history SnapshotRecorder, ttl time.Duration, metrics MetricsCollector, logger zerolog.Logger) *CachedProvider {
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &CachedProvider{
		inner:   inner,
		cache:   cache,
		history: history,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

func (p *CachedProvider) Name() string { return p.inner.Name() }

func (p *CachedProvider) FetchRate(ctx context.Context) (models.ExchangeRate, error) {
	if p.cache != nil {
		cached, err := p.cache.GetRate(ctx, p.inner.Name())
		if err != nil {
			p.logger.Warn().Err(err).Str("source", p.inner.Name()).Msg("rate cache read failed")
		} else if cached != nil {
			p.metrics.RecordCacheHit(p.inner.Name())
			return *cached, nil
		}
		p.metrics.RecordCacheMiss(p.inner.Name())
	}

	ch := p.group.DoChan(p.inner.Name(), func() (interface{}, error) {
		// Callers share this fetch, so one caller leaving must not cancel it.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()

		rate, err := p.inner.FetchRate(fetchCtx)
		if err != nil {
			return models.ExchangeRate{}, err
		}
		p.store(fetchCtx, rate)
		return rate, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return models.ExchangeRate{}, res.Err
		}
		return res.Val.(models.ExchangeRate), nil
	case <-ctx.Done():
		return models.ExchangeRate{}, ctx.Err()
	}
}

// Invalidate drops the cached rate so the next fetch goes upstream.
func (p *CachedProvider) Invalidate(ctx context.Context) error {
	if p.cache == nil {
		return nil
	}
	return p.cache.InvalidateRate(ctx, p.inner.Name())
}

func (p *CachedProvider) store(ctx context.Context, rate models.ExchangeRate) {
	if p.cache != nil {
		if err := p.cache.SetRate(ctx, rate, p.ttl); err != nil {
			p.logger.Warn().Err(err).Str("source", rate.Source).Msg("rate cache write failed")
		}
	}
	if p.history != nil {
		if err := p.history.Record(ctx, models.NewRateSnapshot(rate)); err != nil {
			p.logger.Warn().Err(err).Str("source", rate.Source).Msg("rate snapshot not recorded")
		}
	}
}
