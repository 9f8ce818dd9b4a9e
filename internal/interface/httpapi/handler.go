package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/utils"
	"flightwatch-service/templates"

	"github.com/go-chi/chi/v5"
)

// Handler provides the HTTP command surface for tracker operations
type Handler struct {
	service *usecase.TrackerService
	logger  logger.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service *usecase.TrackerService, logger logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Routes mounts the tracker endpoints
func (h *Handler) Routes(r chi.Router) {
	r.Post("/trackers", h.CreateTracker)
	r.Get("/trackers", h.ListTrackers)
	r.Delete("/trackers/{prefix}", h.RemoveTracker)
}

type createTrackerRequest struct {
	OwnerUserID     string  `json:"ownerUserId"`
	NotifyChannelID string  `json:"notifyChannelId"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	Days            int     `json:"days"`
	MaxPrice        float64 `json:"maxPrice"`
	Adults          int     `json:"adults"`
	SeatClass       string  `json:"seatClass"`
	MaxStops        *int    `json:"maxStops"`
}

type trackerResponse struct {
	ID                string   `json:"id"`
	ShortID           string   `json:"shortId"`
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	StartDate         string   `json:"startDate"`
	EndDate           string   `json:"endDate"`
	MaxPrice          float64  `json:"maxPrice"`
	Adults            int      `json:"adults"`
	SeatClass         string   `json:"seatClass"`
	MaxStops          *int     `json:"maxStops,omitempty"`
	LastCheckedAt     string   `json:"lastCheckedAt"`
	LastObservedPrice *float64 `json:"lastObservedPrice,omitempty"`
	Summary           string   `json:"summary,omitempty"`
}

// CreateTracker handles POST /trackers
func (h *Handler) CreateTracker(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req createTrackerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err == io.EOF {
			h.respondError(w, http.StatusBadRequest, "request body is required")
			return
		}
		h.respondError(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}

	tracker, err := h.service.CreateTracker(usecase.CreateTrackerInput{
		OwnerUserID:     req.OwnerUserID,
		NotifyChannelID: req.NotifyChannelID,
		Origin:          req.Origin,
		Destination:     req.Destination,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Days:            req.Days,
		MaxPrice:        req.MaxPrice,
		Adults:          req.Adults,
		SeatClass:       req.SeatClass,
		MaxStops:        req.MaxStops,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	resp := toTrackerResponse(tracker)
	resp.Summary = templates.BuildTrackerSummary(tracker)
	h.respondJSON(w, http.StatusCreated, resp)
}

// ListTrackers handles GET /trackers?userId=
func (h *Handler) ListTrackers(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.respondError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	trackers := h.service.ListTrackers(userID)
	resp := make([]trackerResponse, 0, len(trackers))
	for _, tracker := range trackers {
		resp = append(resp, toTrackerResponse(tracker))
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// RemoveTracker handles DELETE /trackers/{prefix}?userId=
func (h *Handler) RemoveTracker(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.respondError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	removed, err := h.service.RemoveTracker(userID, chi.URLParam(r, "prefix"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toTrackerResponse(removed))
}

func toTrackerResponse(t *entity.Tracker) trackerResponse {
	return trackerResponse{
		ID:                t.ID,
		ShortID:           t.ShortID(),
		Origin:            t.Origin,
		Destination:       t.Destination,
		StartDate:         t.StartDate.Format(utils.DateLayout),
		EndDate:           t.EndDate.Format(utils.DateLayout),
		MaxPrice:          t.MaxPrice,
		Adults:            t.Adults,
		SeatClass:         string(t.SeatClass),
		MaxStops:          t.MaxStops,
		LastCheckedAt:     t.LastCheckedAt.Format(time.RFC3339),
		LastObservedPrice: t.LastObservedPrice,
	}
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrTrackerNotFound):
		h.respondError(w, http.StatusNotFound, "no tracker found with that id")
	case errors.Is(err, repository.ErrAmbiguousTrackerID):
		h.respondError(w, http.StatusConflict, "multiple trackers match that id, use a longer prefix")
	default:
		h.logger.Error("Tracker operation failed", "error", err)
		h.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
