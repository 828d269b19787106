package pubsub

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceSubscriptionID(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		instanceID string
		want       string
		wantErr    bool
	}{
		{name: "joins prefix and instance", prefix: "mirror-hub", instanceID: "api-7f9c", want: "mirror-hub-api-7f9c"},
		{name: "replaces rejected characters", prefix: "mirror-hub", instanceID: "host/1 é:2", want: "mirror-hub-host-1---2"},
		{name: "keeps allowed punctuation", prefix: "hub", instanceID: "a_b.c~d+e%f", want: "hub-a_b.c~d+e%f"},
		{name: "prefix must start with a letter", prefix: "1hub", instanceID: "a", wantErr: true},
		{name: "empty prefix", prefix: "", instanceID: "a", wantErr: true},
		{name: "empty instance", prefix: "hub", instanceID: "", wantErr: true},
		{name: "reserved prefix", prefix: "google-hub", instanceID: "a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := instanceSubscriptionID(tt.prefix, tt.instanceID)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInstanceSubscriptionID_TruncatesLongNames(t *testing.T) {
	got, err := instanceSubscriptionID("hub", strings.Repeat("x", 400))
	require.NoError(t, err)
	assert.Len(t, got, maxSubscriptionID)
}

func TestDefaultInstanceID_DiffersPerProcess(t *testing.T) {
	assert.NotEqual(t, defaultInstanceID(), defaultInstanceID())
}

func fastBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Millisecond
	b.MaxInterval = 5 * time.Millisecond
	b.Reset()

	return b
}

func TestReceiveUntilDone_RestartsAfterFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		receiveUntilDone(ctx, func(ctx context.Context) error {
			if calls.Add(1) < 3 {
				return errors.New("stream reset")
			}
			<-ctx.Done()

			return nil
		}, fastBackOff(), newDiscardLogger())
	}()

	assert.Eventually(t, func() bool { return calls.Load() == 3 }, 5*time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("receive loop did not stop after cancel")
	}
	assert.Equal(t, int64(3), calls.Load())
}

func TestReceiveUntilDone_StopsWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	slow := backoff.NewExponentialBackOff()
	slow.InitialInterval = time.Hour
	slow.MaxInterval = time.Hour
	slow.RandomizationFactor = 0
	slow.Reset()

	var calls atomic.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		receiveUntilDone(ctx, func(context.Context) error {
			calls.Add(1)

			return errors.New("permission denied")
		}, slow, newDiscardLogger())
	}()

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("receive loop kept waiting after cancel")
	}
	assert.Equal(t, int64(1), calls.Load())
}
