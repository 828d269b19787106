package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"mirror/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// localHTTPRelay forwards notifications to a local worker endpoint,
// simulating Pub/Sub push behavior for development
type localHTTPRelay struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// PubSubPushMessage represents the structure of a Pub/Sub push message
// This mimics the format Google Pub/Sub uses when pushing to HTTP endpoints
type PubSubPushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// newLocalHTTPRelay creates a relay posting to endpoint
func newLocalHTTPRelay(endpoint string, logger *slog.Logger) *localHTTPRelay {
	return &localHTTPRelay{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Forward sends the notification as a Pub/Sub push message
func (r *localHTTPRelay) Forward(ctx context.Context, notification *entity.ChangeNotification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return errors.WithStack(err)
	}

	pushMsg := PubSubPushMessage{
		Subscription: "projects/local/subscriptions/sync-changes-worker",
	}
	pushMsg.Message.Data = base64.StdEncoding.EncodeToString(data)
	pushMsg.Message.MessageID = uuid.New().String()
	pushMsg.Message.PublishTime = time.Now().UTC().Format(time.RFC3339)
	pushMsg.Message.Attributes = notificationAttributes(notification)

	body, err := json.Marshal(pushMsg)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Add X-Request-Id header for tracing
	if notification.RequestID != "" {
		req.Header.Set("X-Request-Id", notification.RequestID)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("worker returned non-success status: %d", resp.StatusCode)
	}

	r.logger.Debug("[LocalPubSub] Change relayed",
		slog.String("endpoint", r.endpoint),
		slog.String("channel", notification.Channel().String()),
	)

	return nil
}

// notificationAttributes builds message attributes for filtering and tracing
func notificationAttributes(notification *entity.ChangeNotification) map[string]string {
	attributes := map[string]string{
		"group_id":  notification.GroupID,
		"data_type": string(notification.DataType),
		"kind":      string(notification.Kind),
	}
	if notification.RequestID != "" {
		attributes["request_id"] = notification.RequestID
	}

	return attributes
}
