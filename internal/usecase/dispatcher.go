package usecase

import (
	"context"
	"fmt"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/templates"
)

// NotificationDispatcher turns a notification decision into one delivered
// alert. Delivery failure is logged and swallowed: it never mutates tracker
// state and is not retried within the cycle.
type NotificationDispatcher struct {
	notifier repository.NotifierRepository
	airports repository.AirportRepository
	store    repository.TrackerStore
	logger   logger.Logger
	// removeAfterAlert disarms a tracker after a successful alert. Off by
	// default: the tracker stays active and alerts again next cycle while
	// the price remains at or below its threshold.
	removeAfterAlert bool
}

// NewNotificationDispatcher creates a new notification dispatcher
func NewNotificationDispatcher(
	notifier repository.NotifierRepository,
	airports repository.AirportRepository,
	store repository.TrackerStore,
	logger logger.Logger,
	removeAfterAlert bool,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		notifier:         notifier,
		airports:         airports,
		store:            store,
		logger:           logger,
		removeAfterAlert: removeAfterAlert,
	}
}

// Dispatch delivers one alert and reports whether delivery succeeded
func (d *NotificationDispatcher) Dispatch(ctx context.Context, alert *entity.PriceAlert) bool {
	tracker := alert.Tracker

	msg := &entity.AlertMessage{
		ChannelID:   tracker.NotifyChannelID,
		UserMention: fmt.Sprintf("<@%s>", tracker.OwnerUserID),
		Text: templates.BuildAlertMessage(alert,
			d.routeLabel(ctx, tracker.Origin),
			d.routeLabel(ctx, tracker.Destination)),
	}

	if err := d.notifier.SendAlert(ctx, msg); err != nil {
		d.logger.Error("Failed to deliver price alert",
			"trackerId", tracker.ShortID(),
			"channelId", tracker.NotifyChannelID,
			"error", err)
		return false
	}

	d.logger.Info("Price alert sent",
		"trackerId", tracker.ShortID(),
		"route", tracker.Origin+"-"+tracker.Destination,
		"bestPrice", alert.BestPrice,
		"threshold", tracker.MaxPrice)

	if d.removeAfterAlert {
		d.store.RemoveByID(tracker.ID)
		d.logger.Info("Tracker removed after alert", "trackerId", tracker.ShortID())
	}

	return true
}

// routeLabel renders an airport code with directory names when available.
// Directory misses are expected and fall back to the bare code.
func (d *NotificationDispatcher) routeLabel(ctx context.Context, code string) string {
	if d.airports == nil {
		return code
	}

	airport, err := d.airports.GetByCode(ctx, code)
	if err != nil {
		d.logger.Debug("Airport lookup missed", "code", code, "error", err)
		return code
	}
	return fmt.Sprintf("%s (%s | %s)", code, airport.Name, airport.CityName)
}
