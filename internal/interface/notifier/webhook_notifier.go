package notifier

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
)

// WebhookNotifier delivers alert messages to the notification service
type WebhookNotifier struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewWebhookNotifier creates a new webhook notifier
func NewWebhookNotifier(baseURL, bearerToken string, logger logger.Logger) repository.NotifierRepository {
	return &WebhookNotifier{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// SendAlert delivers one alert message to its channel
func (n *WebhookNotifier) SendAlert(ctx context.Context, msg *entity.AlertMessage) error {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/channels/%s/messages", n.baseURL, msg.ChannelID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+n.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("notification service returned status %d: %v", resp.StatusCode, errorBody)
	}

	n.logger.Info("Alert delivered",
		"channelId", msg.ChannelID,
		"userMention", msg.UserMention)

	return nil
}
