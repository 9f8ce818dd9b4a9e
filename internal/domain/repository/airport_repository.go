package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport reference data
type AirportRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airport, error)
}
