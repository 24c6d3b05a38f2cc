package repositories

import (
	"context"
	"sync"
	"time"

	"petquote/internal/models"
)

// RateSnapshotRepositoryMemory is an in-memory RateSnapshotRepository used
// when no database is configured. It keeps at most capacity snapshots.
type RateSnapshotRepositoryMemory struct {
	mu       sync.RWMutex
	data     []models.RateSnapshot
	capacity int
	now      func() time.Time
}

func NewRateSnapshotRepositoryMemory(capacity int) *RateSnapshotRepositoryMemory {
	if capacity <= 0 {
		capacity = 500
	}
	return &RateSnapshotRepositoryMemory{
		data:     []models.RateSnapshot{},
		capacity: capacity,
		now:      time.Now,
	}
}

func (r *RateSnapshotRepositoryMemory) Record(ctx context.Context, snapshot *models.RateSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = r.now()
	}
	r.data = append(r.data, *snapshot)
	if len(r.data) > r.capacity {
		r.data = r.data[len(r.data)-r.capacity:]
	}
	return nil
}

// ListRecent returns the newest snapshots first.
func (r *RateSnapshotRepositoryMemory) ListRecent(ctx context.Context, limit int) ([]models.RateSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit = normalizeLimit(limit)
	out := make([]models.RateSnapshot, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}
