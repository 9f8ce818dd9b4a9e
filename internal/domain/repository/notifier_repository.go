package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// NotifierRepository defines the interface for the message delivery channel
type NotifierRepository interface {
	// SendAlert delivers one alert message to the channel the tracker was
	// created in. A failure means the channel or recipient was unreachable.
	SendAlert(ctx context.Context, msg *entity.AlertMessage) error
}
