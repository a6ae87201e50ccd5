package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Gurn0or/golden-haven-navigator/internal/core/ports"

	"github.com/rs/zerolog"
)

// notifyRetryIntervals spaces the webhook delivery retries.
var notifyRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookNotifier implements ports.Notifier by POSTing the notification as
// JSON to the configured notification gateway. Delivery runs async with
// retries; Notify itself never blocks on the network.
type WebhookNotifier struct {
	url        string
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewWebhookNotifier creates a webhook-backed notifier.
func NewWebhookNotifier(url string, httpClient HTTPClient, log zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		httpClient: httpClient,
		log:        log,
	}
}

// Notify enqueues the notification for delivery.
func (n *WebhookNotifier) Notify(ctx context.Context, notif ports.Notification) error {
	if n.url == "" {
		n.log.Debug().Str("resource_id", notif.ResourceID).Msg("notify: no webhook URL configured, skipping")
		return nil
	}

	payload, err := json.Marshal(notif)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	go n.deliverWithRetries(payload, notif.ResourceID)
	return nil
}

// deliverWithRetries attempts delivery until a 2xx response or exhaustion.
func (n *WebhookNotifier) deliverWithRetries(payload []byte, resourceID string) {
	for attempt := 0; attempt <= len(notifyRetryIntervals); attempt++ {
		if attempt > 0 {
			time.Sleep(notifyRetryIntervals[attempt-1])
		}

		req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(payload))
		if err != nil {
			n.log.Error().Err(err).Str("resource_id", resourceID).Msg("notify: failed to create request")
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.httpClient.Do(req)
		if err != nil {
			n.log.Warn().Err(err).Str("resource_id", resourceID).Int("attempt", attempt+1).Msg("notify: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			n.log.Info().Str("resource_id", resourceID).Int("attempt", attempt+1).Msg("notify: delivered")
			return
		}

		n.log.Warn().Str("resource_id", resourceID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: non-2xx response, retrying")
	}

	n.log.Error().Str("resource_id", resourceID).Msg("notify: all retry attempts exhausted")
}

// LogNotifier implements ports.Notifier by writing to the log only. Used in
// development and tests where no notification gateway exists.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify writes the notification to the log.
func (n *LogNotifier) Notify(ctx context.Context, notif ports.Notification) error {
	n.log.Info().
		Str("target", string(notif.Target)).
		Str("recipient", notif.Recipient).
		Str("resource_id", notif.ResourceID).
		Str("message", notif.Message).
		Msg("notification")
	return nil
}
