package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"mirror/config"
	deliverycontext "mirror/internal/delivery/context"
	"mirror/internal/domain/constants"
	"mirror/internal/domain/entity"
	"mirror/internal/domain/repository"
	"mirror/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// newRetryableError wraps an error as retryable
func newRetryableError(err error) error {
	return &retryableError{err: err}
}

// isRetryableError checks if an error is retryable
func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// tokenVerifier validates the bearer token of a push request
type tokenVerifier func(req *http.Request) error

// PushHandler turns change notifications into wake pushes for offline devices
type PushHandler struct {
	verifyPushAuth bool
	verifyToken    tokenVerifier
	logger         *slog.Logger
	notifier       service.WakeNotifier
	groupRepo      repository.GroupRepository
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Notifier  service.WakeNotifier
	GroupRepo repository.GroupRepository
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Determine if we need to verify push auth based on config
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		verifyToken:    verifyPubSubToken,
		logger:         params.Logger,
		notifier:       params.Notifier,
		groupRepo:      params.GroupRepo,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	// Verify Pub/Sub token in production for Google provider
	if h.verifyPushAuth {
		if err := h.verifyToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	// Parse Pub/Sub message
	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Decode base64 message data
	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Parse change notification
	var notification entity.ChangeNotification
	if err := json.Unmarshal(data, &notification); err != nil {
		h.logger.Error("[Worker] Failed to parse change notification", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Extract request_id for distributed tracing
	// Priority: message attributes > notification field > existing context
	requestID := h.extractRequestID(ctx, &pushMsg, &notification)

	// Create request-scoped logger with request_id
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	// Update context with request_id and logger
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing change notification",
		slog.String("group_id", notification.GroupID),
		slog.String("data_type", string(notification.DataType)),
		slog.String("kind", string(notification.Kind)),
	)

	if err := h.processNotification(ctx, &notification); err != nil {
		reqLogger.Error("[Worker] Failed to process change notification",
			slog.String("group_id", notification.GroupID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		// Return 503 for retryable errors to trigger Pub/Sub retry
		// Return 200 for non-retryable errors to prevent infinite retries
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, notification, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, notification *entity.ChangeNotification) string {
	// 1. Try message attributes (from Pub/Sub)
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	// 2. Try notification field (from JSON payload)
	if notification.RequestID != "" {
		return notification.RequestID
	}

	// 3. Try existing context (from RequestIDMiddleware via X-Request-Id header)
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	// 4. Generate new UUID as fallback
	return uuid.New().String()
}

// processNotification wakes every member of the group except the device that made the change
func (h *PushHandler) processNotification(ctx context.Context, notification *entity.ChangeNotification) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	// Removals only matter to live bus connections.
	if notification.IsDeviceRemoval() {
		logger.Debug("[Worker] Skipping membership notification", slog.String("group_id", notification.GroupID))

		return nil
	}

	if notification.GroupID == "" || !notification.DataType.IsValid() {
		return errors.Errorf("malformed notification for group %q and data type %q", notification.GroupID, notification.DataType)
	}

	targets, err := h.groupRepo.FindPushTargets(ctx, notification.GroupID, notification.SourceDeviceID)
	if err != nil {
		return newRetryableError(errors.Wrap(err, "failed to find push targets"))
	}

	if len(targets) == 0 {
		logger.Debug("[Worker] No devices to wake", slog.String("group_id", notification.GroupID))

		return nil
	}

	tokens := make([]string, 0, len(targets))
	for _, target := range targets {
		tokens = append(tokens, target.PushToken)
	}

	data := map[string]string{
		"type":      "sync",
		"group_id":  notification.GroupID,
		"data_type": string(notification.DataType),
	}

	sent, failed, invalidTokens := h.sendBatchedWakes(ctx, tokens, data)

	if len(invalidTokens) > 0 {
		if err := h.groupRepo.ClearPushTokens(ctx, invalidTokens); err != nil {
			logger.Warn("[Worker] Failed to clear invalid push tokens",
				slog.Int("count", len(invalidTokens)),
				slog.Any("error", err),
			)
		}
	}

	logger.Info("[Worker] Wake pushes sent",
		slog.String("group_id", notification.GroupID),
		slog.Int("total_sent", sent),
		slog.Int("total_failed", failed),
		slog.Int("invalid_tokens", len(invalidTokens)),
	)

	return nil
}

// sendBatchedWakes sends wake pushes in batches and collects results
func (h *PushHandler) sendBatchedWakes(ctx context.Context, tokens []string, data map[string]string) (sent, failed int, invalidTokens []string) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	for idx := 0; idx < len(tokens); idx += service.MaxWakeBatchSize {
		end := min(idx+service.MaxWakeBatchSize, len(tokens))
		batch := tokens[idx:end]

		successCount, failureCount, batchInvalidTokens, sendErr := h.notifier.SendWake(ctx, batch, data)
		if sendErr != nil {
			logger.Error("[Worker] Failed to send batch",
				slog.Int("batch_start", idx),
				slog.Int("batch_size", len(batch)),
				slog.Any("error", sendErr),
			)
			failed += len(batch)

			continue
		}

		sent += successCount
		failed += failureCount
		invalidTokens = append(invalidTokens, batchInvalidTokens...)
	}

	return sent, failed, invalidTokens
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	// Get the Authorization header
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	// Extract Bearer token
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http" // For local development
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	// The issuer should be accounts.google.com
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
