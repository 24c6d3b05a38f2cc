package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"petquote/internal/models"
)

type rateSnapshotRepository struct {
	db *gorm.DB
}

// NewRateSnapshotRepository creates a PostgreSQL-backed RateSnapshotRepository
func NewRateSnapshotRepository(db *gorm.DB) RateSnapshotRepository {
	return &rateSnapshotRepository{db: db}
}

func (r *rateSnapshotRepository) Record(ctx context.Context, snapshot *models.RateSnapshot) error {
	if err := r.db.WithContext(ctx).Create(snapshot).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *rateSnapshotRepository) ListRecent(ctx context.Context, limit int) ([]models.RateSnapshot, error) {
	var snapshots []models.RateSnapshot
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(normalizeLimit(limit)).
		Find(&snapshots).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return snapshots, nil
}
