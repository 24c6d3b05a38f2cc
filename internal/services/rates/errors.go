package rates

import "errors"

var (
	ErrUpstreamUnsuccessful = errors.New("rate service reported failure")
	ErrUnexpectedStatus     = errors.New("unexpected response status")
	ErrMalformedResponse    = errors.New("malformed rate response")
	ErrRateNotFound         = errors.New("USD rate not found")
	ErrUnknownProvider      = errors.New("unknown rate provider")
	ErrMissingAPIURL        = errors.New("rate API URL not configured")
)
