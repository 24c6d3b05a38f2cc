package repositories

import (
	"context"

	"petquote/internal/models"
)

const DefaultSnapshotLimit = 50

// RateSnapshotRepository records fetched exchange rates.
type RateSnapshotRepository interface {
	Record(ctx context.Context, snapshot *models.RateSnapshot) error
	ListRecent(ctx context.Context, limit int) ([]models.RateSnapshot, error)
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return DefaultSnapshotLimit
	}
	return limit
}
