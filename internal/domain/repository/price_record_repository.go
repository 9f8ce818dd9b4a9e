package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// PriceRecordRepository defines the interface for observation history
type PriceRecordRepository interface {
	Save(ctx context.Context, record *entity.PriceRecord) error
	FindByTrackerID(ctx context.Context, trackerID string, limit int) ([]*entity.PriceRecord, error)
}
