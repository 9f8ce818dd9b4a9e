package usecase

import (
	"fmt"
	"strings"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/utils"

	"github.com/google/uuid"
)

// StartDateThisMonth is the literal start date resolving to the current
// calendar month
const StartDateThisMonth = "this_month"

const defaultTrackingDays = 30

// ValidationError reports bad input to create/remove operations
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// CreateTrackerInput carries the parameters of a tracker creation request
type CreateTrackerInput struct {
	OwnerUserID     string
	NotifyChannelID string
	Origin          string
	Destination     string
	// StartDate is "YYYY-MM-DD" or the literal "this_month"
	StartDate string
	// EndDate is optional; when empty the window runs Days from StartDate
	EndDate string
	// Days sizes the window when EndDate is empty (default 30)
	Days      int
	MaxPrice  float64
	Adults    int
	SeatClass string
	MaxStops  *int
}

// TrackerService exposes the tracker operations to the command layer
type TrackerService struct {
	store  repository.TrackerStore
	logger logger.Logger
	now    func() time.Time
}

// NewTrackerService creates a new tracker service
func NewTrackerService(store repository.TrackerStore, logger logger.Logger) *TrackerService {
	return &TrackerService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// CreateTracker validates the request, assigns an identifier and registers
// the tracker. Nothing is stored when validation fails.
func (s *TrackerService) CreateTracker(input CreateTrackerInput) (*entity.Tracker, error) {
	if input.OwnerUserID == "" {
		return nil, &ValidationError{Field: "ownerUserId", Message: "required"}
	}
	if input.NotifyChannelID == "" {
		return nil, &ValidationError{Field: "notifyChannelId", Message: "required"}
	}
	if input.Origin == "" {
		return nil, &ValidationError{Field: "origin", Message: "required"}
	}
	if input.Destination == "" {
		return nil, &ValidationError{Field: "destination", Message: "required"}
	}
	if input.MaxPrice <= 0 {
		return nil, &ValidationError{Field: "maxPrice", Message: "must be positive"}
	}

	adults := input.Adults
	if adults == 0 {
		adults = 1
	}
	if adults < 1 {
		return nil, &ValidationError{Field: "adults", Message: "must be at least 1"}
	}

	seatClassInput := input.SeatClass
	if seatClassInput == "" {
		seatClassInput = string(entity.SeatEconomy)
	}
	seatClass, err := entity.ParseSeatClass(seatClassInput)
	if err != nil {
		return nil, &ValidationError{Field: "seatClass", Message: err.Error()}
	}

	if input.MaxStops != nil && (*input.MaxStops < 0 || *input.MaxStops > 2) {
		return nil, &ValidationError{Field: "maxStops", Message: "must be 0, 1, or 2"}
	}

	start, end, err := s.resolveDateWindow(input.StartDate, input.EndDate, input.Days)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tracker := &entity.Tracker{
		ID:              uuid.NewString(),
		OwnerUserID:     input.OwnerUserID,
		NotifyChannelID: input.NotifyChannelID,
		Origin:          strings.ToUpper(input.Origin),
		Destination:     strings.ToUpper(input.Destination),
		StartDate:       start,
		EndDate:         end,
		MaxPrice:        input.MaxPrice,
		Adults:          adults,
		SeatClass:       seatClass,
		MaxStops:        input.MaxStops,
		CreatedAt:       now,
		LastCheckedAt:   now,
	}

	if err := s.store.Add(tracker); err != nil {
		return nil, fmt.Errorf("failed to register tracker: %w", err)
	}

	s.logger.Info("Tracker created",
		"trackerId", tracker.ShortID(),
		"owner", tracker.OwnerUserID,
		"route", tracker.Origin+"-"+tracker.Destination,
		"window", start.Format(utils.DateLayout)+".."+end.Format(utils.DateLayout),
		"maxPrice", tracker.MaxPrice)

	return tracker, nil
}

// ListTrackers returns the owner's active trackers in creation order
func (s *TrackerService) ListTrackers(ownerID string) []*entity.Tracker {
	return s.store.ListByOwner(ownerID)
}

// RemoveTracker resolves idPrefix among the owner's trackers and removes
// the single match
func (s *TrackerService) RemoveTracker(ownerID, idPrefix string) (*entity.Tracker, error) {
	if ownerID == "" {
		return nil, &ValidationError{Field: "ownerUserId", Message: "required"}
	}
	if idPrefix == "" {
		return nil, &ValidationError{Field: "trackerId", Message: "required"}
	}

	removed, err := s.store.Remove(ownerID, idPrefix)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Tracker removed",
		"trackerId", removed.ShortID(),
		"owner", ownerID,
		"route", removed.Origin+"-"+removed.Destination)

	return removed, nil
}

// resolveDateWindow turns the request's date parameters into a concrete
// inclusive start/end pair
func (s *TrackerService) resolveDateWindow(startDate, endDate string, days int) (time.Time, time.Time, error) {
	if strings.EqualFold(startDate, StartDateThisMonth) || startDate == "" {
		today := s.now()
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return start, end, nil
	}

	start, err := time.Parse(utils.DateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Field: "startDate", Message: "use YYYY-MM-DD or 'this_month'"}
	}

	if endDate != "" {
		end, err := time.Parse(utils.DateLayout, endDate)
		if err != nil {
			return time.Time{}, time.Time{}, &ValidationError{Field: "endDate", Message: "use YYYY-MM-DD"}
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, &ValidationError{Field: "endDate", Message: "must not be before startDate"}
		}
		return start, end, nil
	}

	if days <= 0 {
		days = defaultTrackingDays
	}
	return start, start.AddDate(0, 0, days-1), nil
}
