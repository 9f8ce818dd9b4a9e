package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/interface/repository"
	"flightwatch-service/internal/usecase"
	"flightwatch-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() chi.Router {
	store := repository.NewInMemoryTrackerStore()
	service := usecase.NewTrackerService(store, logger.NewNopLogger())
	handler := NewHandler(service, logger.NewNopLogger())

	r := chi.NewRouter()
	handler.Routes(r)
	return r
}

func createBody() string {
	return `{
		"ownerUserId": "user-1",
		"notifyChannelId": "chan-1",
		"origin": "jfk",
		"destination": "mia",
		"startDate": "2026-09-01",
		"days": 30,
		"maxPrice": 500
	}`
}

func doRequest(router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateTracker_HTTP(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(router, http.MethodPost, "/trackers", createBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, "JFK", resp["origin"])
	assert.Equal(t, "MIA", resp["destination"])
	assert.Equal(t, "economy", resp["seatClass"])
	assert.Equal(t, float64(1), resp["adults"])
	assert.Contains(t, resp["summary"], "Tracking flights from JFK to MIA")
}

func TestCreateTracker_HTTP_BadRequests(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(router, http.MethodPost, "/trackers", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(router, http.MethodPost, "/trackers", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(router, http.MethodPost, "/trackers",
		`{"ownerUserId": "user-1", "notifyChannelId": "chan-1", "origin": "JFK", "destination": "MIA", "maxPrice": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "maxPrice")
}

func TestListTrackers_HTTP(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(router, http.MethodPost, "/trackers", createBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, http.MethodGet, "/trackers?userId=user-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var trackers []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trackers))
	require.Len(t, trackers, 1)
	assert.Equal(t, "2026-09-01", trackers[0]["startDate"])
	assert.Equal(t, "2026-09-30", trackers[0]["endDate"])

	// Another user sees an empty list, not an error
	rec = doRequest(router, http.MethodGet, "/trackers?userId=user-2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	rec = doRequest(router, http.MethodGet, "/trackers", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveTracker_HTTP(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(router, http.MethodPost, "/trackers", createBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	shortID := created["shortId"].(string)

	rec = doRequest(router, http.MethodDelete, "/trackers/"+shortID+"?userId=user-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Gone now
	rec = doRequest(router, http.MethodDelete, "/trackers/"+shortID+"?userId=user-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodDelete, "/trackers/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveTracker_HTTP_Ambiguous(t *testing.T) {
	store := repository.NewInMemoryTrackerStore()
	service := usecase.NewTrackerService(store, logger.NewNopLogger())
	handler := NewHandler(service, logger.NewNopLogger())

	router := chi.NewRouter()
	handler.Routes(router)

	// Seed two trackers whose ids share a prefix
	for _, id := range []string{"shared-prefix-1", "shared-prefix-2"} {
		tracker := &entity.Tracker{
			ID: id, OwnerUserID: "user-1", NotifyChannelID: "chan-1",
			Origin: "JFK", Destination: "MIA",
			StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
			MaxPrice:  500, Adults: 1, SeatClass: entity.SeatEconomy,
		}
		require.NoError(t, store.Add(tracker))
	}

	rec := doRequest(router, http.MethodDelete, "/trackers/shared?userId=user-1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(router, http.MethodDelete, "/trackers/shared-prefix-1?userId=user-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
