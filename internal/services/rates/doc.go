/*
Package rates supplies the USD to TWD exchange rate used by quotes.

Sources implement Provider and are selected by configuration:

	fixed  the constant bank rate 29.575
	http   GET {base}/api/exchange-rate from another rate service
	bot    the Bank of Taiwan spot-rate page

Networked sources are wrapped so that callers never see a fetch error:

	provider := rates.NewFallbackProvider(
	    rates.NewCachedProvider(rates.NewHTTPProvider(baseURL, client), cache, history, ttl, metrics, logger),
	    logger, metrics,
	)

Tracker keeps the current bank and working rate for the calculator and
exposes a busy flag while a refresh is in flight.
*/
package rates
