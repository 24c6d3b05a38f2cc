package rates

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Options selects and wires a rate source.
type Options struct {
	Provider    string
	APIURL      string
	BOTURL      string
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
	Cache       Cache
	History     SnapshotRecorder
	Metrics     MetricsCollector
	Logger      zerolog.Logger
}

// Source is the provider handed to the tracker, plus the cache layer when one
// was wired.
type Source struct {
	Provider Provider
	Cached   *CachedProvider
}

// NewSource builds the provider named by opts.Provider. Networked sources are
// cached and fall back to the built-in rate.
func NewSource(opts Options) (Source, error) {
	client := &http.Client{Timeout: opts.HTTPTimeout}

	var upstream Provider
	switch opts.Provider {
	case "", SourceFixed:
		return Source{Provider: NewFixedProvider()}, nil
	case SourceHTTP:
		if opts.APIURL == "" {
			return Source{}, ErrMissingAPIURL
		}
		upstream = NewHTTPProvider(opts.APIURL, client)
	case SourceBOT:
		upstream = NewBankOfTaiwanProvider(opts.BOTURL, client)
	default:
		return Source{}, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}

	cached := NewCachedProvider(upstream, opts.Cache, opts.History, opts.CacheTTL, opts.Metrics, opts.Logger)
	return Source{
		Provider: NewFallbackProvider(cached, opts.Logger, opts.Metrics),
		Cached:   cached,
	}, nil
}
