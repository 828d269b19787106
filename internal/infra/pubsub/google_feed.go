package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"mirror/internal/domain/entity"
	"mirror/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
)

const (
	// Instance subscriptions left behind by crashed instances expire after this long idle.
	subscriptionTTL     = 24 * time.Hour
	maxSubscriptionID   = 255
	receiveRetryInitial = time.Second
	receiveRetryMax     = time.Minute
)

// googleFeed implements ChangeFeed using Google Cloud Pub/Sub.
// Every server instance reads its own subscription so each hub sees every change.
type googleFeed struct {
	client         *pubsub.Client
	publisher      *pubsub.Publisher
	projectID      string
	topicID        string
	subscriptionID string
	logger         *slog.Logger
}

// NewGoogleFeed creates a new Google Pub/Sub change feed. When subscriptionPrefix is
// set, the instance subscription is derived from it and instanceID and created on Subscribe.
func NewGoogleFeed(ctx context.Context, projectID, topicID, subscriptionPrefix, instanceID string, logger *slog.Logger) (service.ChangeFeed, error) {
	subscriptionID := ""
	if subscriptionPrefix != "" {
		if instanceID == "" {
			instanceID = defaultInstanceID()
		}

		var err error
		subscriptionID, err = instanceSubscriptionID(subscriptionPrefix, instanceID)
		if err != nil {
			return nil, err
		}
	}

	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Check if topic exists using TopicAdminClient
	_, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{
		Topic: topicPath(projectID, topicID),
	})
	if err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	logger.Info("Google Pub/Sub change feed initialized",
		slog.String("project_id", projectID),
		slog.String("topic_id", topicID),
		slog.String("subscription_id", subscriptionID),
	)

	return &googleFeed{
		client:         client,
		publisher:      client.Publisher(topicID),
		projectID:      projectID,
		topicID:        topicID,
		subscriptionID: subscriptionID,
		logger:         logger,
	}, nil
}

func topicPath(projectID, topicID string) string {
	return fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
}

func subscriptionPath(projectID, subscriptionID string) string {
	return fmt.Sprintf("projects/%s/subscriptions/%s", projectID, subscriptionID)
}

// defaultInstanceID names this process. The random suffix keeps two instances
// sharing a hostname from splitting one subscription.
func defaultInstanceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "instance"
	}

	return host + "-" + uuid.NewString()[:8]
}

// instanceSubscriptionID joins prefix and instanceID into a valid Pub/Sub subscription ID.
// Characters Pub/Sub rejects are replaced with '-'.
func instanceSubscriptionID(prefix, instanceID string) (string, error) {
	if prefix == "" || !isASCIILetter(prefix[0]) {
		return "", errors.Errorf("subscription prefix %q must start with a letter", prefix)
	}
	if instanceID == "" {
		return "", errors.New("instance ID is required for a per-instance subscription")
	}

	id := strings.Map(func(r rune) rune {
		if r < 0x80 && isASCIILetter(byte(r)) || r >= '0' && r <= '9' || strings.ContainsRune("-_.~+%", r) {
			return r
		}

		return '-'
	}, prefix+"-"+instanceID)

	if len(id) > maxSubscriptionID {
		id = id[:maxSubscriptionID]
	}
	if strings.HasPrefix(id, "goog") {
		return "", errors.Errorf("subscription ID %q must not start with goog", id)
	}

	return id, nil
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// ensureSubscription creates this instance's subscription on the topic. An existing one is reused.
func (f *googleFeed) ensureSubscription(ctx context.Context) error {
	_, err := f.client.SubscriptionAdminClient.CreateSubscription(ctx, &pubsubpb.Subscription{
		Name:             subscriptionPath(f.projectID, f.subscriptionID),
		Topic:            topicPath(f.projectID, f.topicID),
		ExpirationPolicy: &pubsubpb.ExpirationPolicy{Ttl: durationpb.New(subscriptionTTL)},
	})
	if err != nil && status.Code(err) != codes.AlreadyExists {
		return errors.Wrapf(err, "failed to create subscription %s", f.subscriptionID)
	}

	return nil
}

// Publish publishes a change notification to the topic and waits for the server ack
func (f *googleFeed) Publish(ctx context.Context, notification *entity.ChangeNotification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return errors.WithStack(err)
	}

	msg := &pubsub.Message{
		Data:       data,
		Attributes: notificationAttributes(notification),
	}

	result := f.publisher.Publish(ctx, msg)

	serverID, err := result.Get(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	f.logger.Debug("[GooglePubSub] Change published",
		slog.String("channel", notification.Channel().String()),
		slog.String("server_id", serverID),
	)

	return nil
}

// Subscribe starts receiving from this instance's subscription in the background.
// Receive is restarted with backoff until ctx is done.
func (f *googleFeed) Subscribe(ctx context.Context, handler service.ChangeHandler) error {
	if f.subscriptionID == "" {
		return errors.New("subscription ID is required to subscribe to the google feed")
	}
	if err := f.ensureSubscription(ctx); err != nil {
		return err
	}

	subscriber := f.client.Subscriber(f.subscriptionID)

	go receiveUntilDone(ctx, func(ctx context.Context) error {
		return subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
			var notification entity.ChangeNotification
			if err := json.Unmarshal(msg.Data, &notification); err != nil {
				f.logger.Warn("[GooglePubSub] Dropping malformed change",
					slog.String("message_id", msg.ID),
					slog.Any("error", err),
				)
				msg.Ack()

				return
			}

			handler(ctx, &notification)
			msg.Ack()
		})
	}, newReceiveBackOff(), f.logger)

	return nil
}

func newReceiveBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = receiveRetryInitial
	b.MaxInterval = receiveRetryMax
	b.Reset()

	return b
}

// receiveUntilDone runs receive until ctx is done, waiting retry's next interval
// after each stop. A run that lasted longer than the max interval resets retry.
func receiveUntilDone(ctx context.Context, receive func(context.Context) error, retry *backoff.ExponentialBackOff, logger *slog.Logger) {
	for {
		started := time.Now()
		err := receive(ctx)
		if ctx.Err() != nil {
			return
		}

		if time.Since(started) > retry.MaxInterval {
			retry.Reset()
		}
		delay := retry.NextBackOff()
		logger.Error("[GooglePubSub] Receive stopped, restarting",
			slog.Duration("delay", delay),
			slog.Any("error", err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()

			return
		case <-timer.C:
		}
	}
}

// Close releases Pub/Sub client resources
func (f *googleFeed) Close() error {
	if f.publisher != nil {
		f.publisher.Stop()
	}
	if f.client != nil {
		return errors.WithStack(f.client.Close())
	}

	return nil
}
