package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mirror/config"
	"mirror/internal/domain/entity"
	"mirror/internal/domain/service"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(sendBuffer int) *Hub {
	cfg := &config.Config{Bus: &config.BusConfig{
		SendBuffer:   sendBuffer,
		WriteTimeout: time.Second,
	}}

	return NewHub(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newHubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeConn(w, r, r.URL.Query().Get("group"), r.URL.Query().Get("device"))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func dial(t *testing.T, srv *httptest.Server, groupID, deviceID string) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?group=" + groupID + "&device=" + deviceID
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.CloseNow() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, frame entity.BusFrame) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, wsjson.Write(ctx, conn, frame))
}

func receive(t *testing.T, conn *websocket.Conn) entity.BusFrame {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var frame entity.BusFrame
	require.NoError(t, wsjson.Read(ctx, conn, &frame))

	return frame
}

func subscribe(t *testing.T, conn *websocket.Conn, dataType entity.DataType) {
	t.Helper()

	send(t, conn, entity.BusFrame{Type: entity.FrameSubscribe, Channel: dataType})
	ack := receive(t, conn)
	require.Equal(t, entity.FrameSubscribed, ack.Type)
	require.Equal(t, dataType, ack.Channel)
}

func messageNotification(groupID, sourceDeviceID, recordID string) *entity.ChangeNotification {
	payload, _ := json.Marshal(entity.Message{ThreadID: "t1", Address: "+15550100", Direction: "inbound"})

	return &entity.ChangeNotification{
		GroupID:        groupID,
		DataType:       entity.DataTypeMessages,
		Kind:           entity.DeltaAdded,
		Record:         &entity.RawRecord{ID: recordID, Date: 1000, Payload: payload},
		RecordID:       recordID,
		SourceDeviceID: sourceDeviceID,
	}
}

func TestHub_BroadcastSkipsSourceDevice(t *testing.T) {
	hub := newTestHub(16)
	srv := newHubServer(t, hub)

	a := dial(t, srv, "g1", "a")
	b := dial(t, srv, "g1", "b")
	subscribe(t, a, entity.DataTypeMessages)
	subscribe(t, b, entity.DataTypeMessages)

	hub.Broadcast(messageNotification("g1", "a", "m1"))

	frame := receive(t, b)
	assert.Equal(t, entity.FrameDelta, frame.Type)
	assert.Equal(t, entity.DataTypeMessages, frame.Channel)
	if assert.NotNil(t, frame.Delta) {
		assert.Equal(t, entity.DeltaAdded, frame.Delta.Kind)
		assert.Equal(t, "m1", frame.Delta.Record.ID)
	}

	// The source device sees its pong next, not its own delta.
	send(t, a, entity.BusFrame{Type: entity.FramePing})
	assert.Equal(t, entity.FramePong, receive(t, a).Type)
}

func TestHub_BroadcastIsScopedToGroupAndChannel(t *testing.T) {
	hub := newTestHub(16)
	srv := newHubServer(t, hub)

	other := dial(t, srv, "g2", "x")
	calls := dial(t, srv, "g1", "c")
	subscribe(t, other, entity.DataTypeMessages)
	subscribe(t, calls, entity.DataTypeCalls)

	hub.Broadcast(messageNotification("g1", "a", "m1"))

	for _, conn := range []*websocket.Conn{other, calls} {
		send(t, conn, entity.BusFrame{Type: entity.FramePing})
		assert.Equal(t, entity.FramePong, receive(t, conn).Type)
	}
}

func TestHub_SubscribeIsIdempotent(t *testing.T) {
	hub := newTestHub(16)
	srv := newHubServer(t, hub)

	conn := dial(t, srv, "g1", "a")
	subscribe(t, conn, entity.DataTypeMessages)
	subscribe(t, conn, entity.DataTypeMessages)

	channel := entity.Channel{GroupID: "g1", DataType: entity.DataTypeMessages}
	assert.Equal(t, 1, hub.SubscriberCount(channel))

	send(t, conn, entity.BusFrame{Type: entity.FrameUnsubscribe, Channel: entity.DataTypeMessages})
	assert.Equal(t, entity.FrameUnsubscribed, receive(t, conn).Type)
	send(t, conn, entity.BusFrame{Type: entity.FrameUnsubscribe, Channel: entity.DataTypeMessages})
	assert.Equal(t, entity.FrameUnsubscribed, receive(t, conn).Type)
	assert.Equal(t, 0, hub.SubscriberCount(channel))
}

func TestHub_RejectsUnknownChannel(t *testing.T) {
	hub := newTestHub(16)
	srv := newHubServer(t, hub)

	conn := dial(t, srv, "g1", "a")
	send(t, conn, entity.BusFrame{Type: entity.FrameSubscribe, Channel: "photos"})

	frame := receive(t, conn)
	assert.Equal(t, entity.FrameError, frame.Type)
	assert.Equal(t, entity.DataType("photos"), frame.Channel)
	assert.Equal(t, "unknown channel", frame.Error)
}

func TestHub_DisconnectDestroysSubscriptions(t *testing.T) {
	hub := newTestHub(16)
	srv := newHubServer(t, hub)

	conn := dial(t, srv, "g1", "a")
	subscribe(t, conn, entity.DataTypeContacts)
	require.Equal(t, 1, hub.ConnectionCount())

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, "bye"))

	channel := entity.Channel{GroupID: "g1", DataType: entity.DataTypeContacts}
	assert.Eventually(t, func() bool {
		return hub.ConnectionCount() == 0 && hub.SubscriberCount(channel) == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestHub_SlowConsumerIsKicked(t *testing.T) {
	hub := newTestHub(1)

	slow := newClient("g1", "slow", 1)
	fast := newClient("g1", "fast", 4)
	require.True(t, hub.register(slow))
	require.True(t, hub.register(fast))
	hub.subscribe(slow, entity.DataTypeMessages)
	hub.subscribe(fast, entity.DataTypeMessages)

	hub.Broadcast(messageNotification("g1", "a", "m1"))
	hub.Broadcast(messageNotification("g1", "a", "m2"))

	select {
	case <-slow.kicked:
		assert.Equal(t, reasonSlowConsumer, slow.kickReason)
	default:
		t.Fatal("slow consumer was not kicked")
	}

	select {
	case <-fast.kicked:
		t.Fatal("fast consumer was kicked")
	default:
	}
	assert.Len(t, fast.send, 2)
}

func TestHub_RunFeedsFromChangeFeed(t *testing.T) {
	hub := newTestHub(4)
	feed := &stubFeed{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.Run(ctx, feed))

	c := newClient("g1", "b", 4)
	require.True(t, hub.register(c))
	hub.subscribe(c, entity.DataTypeMessages)

	feed.handler(ctx, messageNotification("g1", "a", "m1"))

	frame := <-c.send
	assert.Equal(t, entity.FrameDelta, frame.Type)
}

func TestHub_RemovalNotificationKicksOnlyThatDevice(t *testing.T) {
	hub := newTestHub(4)
	feed := &stubFeed{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.Run(ctx, feed))

	removedA := newClient("g1", "tablet", 4)
	removedB := newClient("g1", "tablet", 4)
	sameIDOtherGroup := newClient("g2", "tablet", 4)
	stays := newClient("g1", "phone", 4)
	for _, c := range []*client{removedA, removedB, sameIDOtherGroup, stays} {
		require.True(t, hub.register(c))
		hub.subscribe(c, entity.DataTypeMessages)
	}

	feed.handler(ctx, entity.NewDeviceRemovedNotification("g1", "tablet"))

	for _, c := range []*client{removedA, removedB} {
		select {
		case <-c.kicked:
			assert.Equal(t, reasonRemoved, c.kickReason)
		default:
			t.Fatal("removed device kept its connection")
		}
	}
	for _, c := range []*client{sameIDOtherGroup, stays} {
		select {
		case <-c.kicked:
			t.Fatalf("device %s in %s was kicked", c.deviceID, c.groupID)
		default:
		}
		assert.Empty(t, c.send)
	}
}

func TestHub_KickClosesLiveConnection(t *testing.T) {
	hub := newTestHub(16)
	srv := newHubServer(t, hub)

	conn := dial(t, srv, "g1", "tablet")
	subscribe(t, conn, entity.DataTypeMessages)

	assert.Equal(t, 1, hub.Kick("g1", "tablet"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _, err := conn.Read(ctx)
	require.Error(t, err)
	assert.Equal(t, websocket.StatusPolicyViolation, websocket.CloseStatus(err))

	channel := entity.Channel{GroupID: "g1", DataType: entity.DataTypeMessages}
	assert.Eventually(t, func() bool {
		return hub.ConnectionCount() == 0 && hub.SubscriberCount(channel) == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestHub_CloseRefusesNewClients(t *testing.T) {
	hub := newTestHub(4)
	c := newClient("g1", "a", 4)
	require.True(t, hub.register(c))

	hub.Close()

	<-c.kicked
	assert.Equal(t, reasonShutdown, c.kickReason)
	assert.False(t, hub.register(newClient("g1", "b", 4)))
}

type stubFeed struct {
	handler func(ctx context.Context, notification *entity.ChangeNotification)
}

func (f *stubFeed) Publish(ctx context.Context, notification *entity.ChangeNotification) error {
	f.handler(ctx, notification)

	return nil
}

func (f *stubFeed) Subscribe(_ context.Context, handler service.ChangeHandler) error {
	f.handler = handler

	return nil
}

func (f *stubFeed) Close() error {
	return nil
}
