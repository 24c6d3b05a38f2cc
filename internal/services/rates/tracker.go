package rates

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"petquote/internal/models"
)

// State is the calculator's view of the rate: the bank rate shown as a hint,
// the working rate used to pre-fill the exchange rate field, and whether a
// refresh is in flight.
type State struct {
	BankRate    *float64   `json:"bank_rate"`
	WorkingRate string     `json:"working_rate"`
	Source      string     `json:"source,omitempty"`
	Loading     bool       `json:"loading"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// Tracker holds the most recently fetched rate.
type Tracker struct {
	provider Provider
	now      func() time.Time
	inFlight atomic.Int32

	mu        sync.RWMutex
	rate      *models.ExchangeRate
	updatedAt time.Time
}

func NewTracker(provider Provider) *Tracker {
	return &Tracker{provider: provider, now: time.Now}
}

// Refresh fetches a new rate and stores it. Overlapping refreshes are allowed;
// the last one to finish wins. A failed fetch leaves the previous rate.
func (t *Tracker) Refresh(ctx context.Context) (State, error) {
	err := t.refresh(ctx)
	return t.State(), err
}

func (t *Tracker) refresh(ctx context.Context) error {
	t.inFlight.Add(1)
	defer t.inFlight.Add(-1)

	rate, err := t.provider.FetchRate(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.rate = &rate
	t.updatedAt = t.now()
	t.mu.Unlock()
	return nil
}

// Loading reports whether a refresh is in flight.
func (t *Tracker) Loading() bool { return t.inFlight.Load() > 0 }

func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := State{Loading: t.Loading()}
	if t.rate != nil {
		bank := t.rate.BaseRate
		updated := t.updatedAt
		s.BankRate = &bank
		s.WorkingRate = WorkingRateText(*t.rate)
		s.Source = t.rate.Source
		s.UpdatedAt = &updated
	}
	return s
}
