package flights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/utils"
)

// HTTPFlightSearchClient performs price lookups against the flight-search
// service over HTTP
type HTTPFlightSearchClient struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewHTTPFlightSearchClient creates a new flight search client
func NewHTTPFlightSearchClient(baseURL, bearerToken string, logger logger.Logger) repository.FlightSearchRepository {
	return &HTTPFlightSearchClient{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type searchRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Trip        string `json:"trip"`
	Adults      int    `json:"adults"`
	SeatClass   string `json:"seatClass"`
	MaxStops    *int   `json:"maxStops,omitempty"`
}

type searchResponse struct {
	Success bool `json:"success"`
	Data    struct {
		CurrentPrice string             `json:"currentPrice"`
		Flights      []entity.Itinerary `json:"flights"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Search performs one external price query for a single route and date
func (c *HTTPFlightSearchClient) Search(ctx context.Context, query repository.FlightQuery) ([]entity.Itinerary, error) {
	body := searchRequest{
		Origin:      query.Origin,
		Destination: query.Destination,
		Date:        query.Date.Format(utils.DateLayout),
		Trip:        "one-way",
		Adults:      query.Adults,
		SeatClass:   string(query.SeatClass),
		MaxStops:    query.MaxStops,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/flights/search", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return nil, fmt.Errorf("flight search service returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		return nil, fmt.Errorf("flight search failed: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	c.logger.Debug("Flight search completed",
		"origin", query.Origin,
		"destination", query.Destination,
		"date", body.Date,
		"flights", len(response.Data.Flights),
		"priceStatus", utils.FormatPriceStatus(response.Data.CurrentPrice))

	return response.Data.Flights, nil
}
