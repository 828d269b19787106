// Package realtime implements the server side of the change bus over websockets.
package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"mirror/config"
	"mirror/internal/domain/entity"
	"mirror/internal/domain/service"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/pkg/errors"
)

// Close reasons sent to peers
const (
	reasonSlowConsumer = "slow consumer"
	reasonShutdown     = "server shutting down"
	reasonRemoved      = "device removed from group"
)

// Hub fans committed changes out to connected devices, scoped by (group, data type).
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	channels map[entity.Channel]map[*client]struct{}
	closed   bool

	sendBuffer   int
	writeTimeout time.Duration
	pingInterval time.Duration
	logger       *slog.Logger
}

// client is one authenticated websocket connection.
type client struct {
	groupID  string
	deviceID string
	send     chan entity.BusFrame
	// subscribed data types, guarded by Hub.mu
	subscribed map[entity.DataType]struct{}

	kickOnce   sync.Once
	kicked     chan struct{}
	kickReason string
}

func newClient(groupID, deviceID string, buffer int) *client {
	return &client{
		groupID:    groupID,
		deviceID:   deviceID,
		send:       make(chan entity.BusFrame, buffer),
		subscribed: make(map[entity.DataType]struct{}),
		kicked:     make(chan struct{}),
	}
}

// kick asks the connection's writer to close it with reason.
func (c *client) kick(reason string) {
	c.kickOnce.Do(func() {
		c.kickReason = reason
		close(c.kicked)
	})
}

// NewHub creates a hub using the bus section of cfg.
func NewHub(cfg *config.Config, logger *slog.Logger) *Hub {
	bus := config.BusConfig{SendBuffer: 64, WriteTimeout: 5 * time.Second, PingInterval: 30 * time.Second}
	if cfg != nil && cfg.Bus != nil {
		bus = *cfg.Bus
	}

	return &Hub{
		clients:      make(map[*client]struct{}),
		channels:     make(map[entity.Channel]map[*client]struct{}),
		sendBuffer:   max(bus.SendBuffer, 1),
		writeTimeout: bus.WriteTimeout,
		pingInterval: bus.PingInterval,
		logger:       logger,
	}
}

// Run feeds the hub from the change feed until ctx is done.
func (h *Hub) Run(ctx context.Context, feed service.ChangeFeed) error {
	if err := feed.Subscribe(ctx, func(_ context.Context, notification *entity.ChangeNotification) {
		if notification.IsDeviceRemoval() {
			h.Kick(notification.GroupID, notification.RemovedDeviceID)

			return
		}
		h.Broadcast(notification)
	}); err != nil {
		return errors.Wrap(err, "failed to subscribe hub to change feed")
	}

	h.logger.Info("[Hub] Listening for change notifications")

	return nil
}

// ServeConn upgrades the request and serves the connection until it closes.
// The connection is bound to groupID; deviceID identifies it as a change source.
func (h *Hub) ServeConn(w http.ResponseWriter, r *http.Request, groupID, deviceID string) error {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Devices authenticate with a bearer token, not cookies.
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		return errors.Wrap(err, "failed to accept websocket")
	}

	c := newClient(groupID, deviceID, h.sendBuffer)
	if !h.register(c) {
		_ = conn.Close(websocket.StatusGoingAway, reasonShutdown)

		return nil
	}
	defer h.unregister(c)

	logger := h.logger.With(slog.String("group_id", groupID), slog.String("device_id", deviceID))
	logger.Info("[Hub] Device connected", slog.Int("connections", h.ConnectionCount()))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	reasonCh := make(chan string, 1)
	go func() {
		reasonCh <- h.writeLoop(ctx, conn, c, logger)
		cancel()
	}()

	readErr := h.readLoop(ctx, conn, c)
	cancel()
	reason := <-reasonCh
	_ = conn.CloseNow()

	logger.Info("[Hub] Device disconnected",
		slog.Int("status", int(websocket.CloseStatus(readErr))),
		slog.String("reason", reason),
	)

	return nil
}

func (h *Hub) readLoop(ctx context.Context, conn *websocket.Conn, c *client) error {
	for {
		var frame entity.BusFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			return err
		}

		h.handleFrame(c, frame)
	}
}

// writeLoop drains the send queue until the connection ends and returns the close reason.
func (h *Hub) writeLoop(ctx context.Context, conn *websocket.Conn, c *client, logger *slog.Logger) string {
	var pings <-chan time.Time
	if h.pingInterval > 0 {
		ticker := time.NewTicker(h.pingInterval)
		defer ticker.Stop()
		pings = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusGoingAway, reasonShutdown)

			return "connection closed"
		case <-c.kicked:
			status := websocket.StatusGoingAway
			if c.kickReason == reasonSlowConsumer || c.kickReason == reasonRemoved {
				status = websocket.StatusPolicyViolation
			}
			logger.Warn("[Hub] Closing connection", slog.String("reason", c.kickReason))
			_ = conn.Close(status, c.kickReason)

			return c.kickReason
		case frame := <-c.send:
			if err := h.write(ctx, conn, frame); err != nil {
				logger.Debug("[Hub] Write failed", slog.Any("error", err))

				return "write failed"
			}
		case <-pings:
			pingCtx, pingCancel := context.WithTimeout(ctx, h.writeTimeout)
			err := conn.Ping(pingCtx)
			pingCancel()
			if err != nil {
				logger.Debug("[Hub] Ping failed", slog.Any("error", err))

				return "ping failed"
			}
		}
	}
}

func (h *Hub) write(ctx context.Context, conn *websocket.Conn, frame entity.BusFrame) error {
	writeCtx, cancel := context.WithTimeout(ctx, h.writeTimeout)
	defer cancel()

	return wsjson.Write(writeCtx, conn, frame)
}

func (h *Hub) handleFrame(c *client, frame entity.BusFrame) {
	switch frame.Type {
	case entity.FramePing:
		h.enqueue(c, entity.BusFrame{Type: entity.FramePong})

	case entity.FrameSubscribe:
		if !frame.Channel.IsValid() {
			h.enqueue(c, entity.BusFrame{Type: entity.FrameError, Channel: frame.Channel, Error: "unknown channel"})

			return
		}
		h.subscribe(c, frame.Channel)
		h.enqueue(c, entity.BusFrame{Type: entity.FrameSubscribed, Channel: frame.Channel})

	case entity.FrameUnsubscribe:
		if !frame.Channel.IsValid() {
			h.enqueue(c, entity.BusFrame{Type: entity.FrameError, Channel: frame.Channel, Error: "unknown channel"})

			return
		}
		h.unsubscribe(c, frame.Channel)
		h.enqueue(c, entity.BusFrame{Type: entity.FrameUnsubscribed, Channel: frame.Channel})

	default:
		h.enqueue(c, entity.BusFrame{Type: entity.FrameError, Error: "unknown frame type"})
	}
}

// Broadcast delivers the notification to every subscriber of its channel except the source device.
// It never blocks: a subscriber whose queue is full is disconnected.
func (h *Hub) Broadcast(notification *entity.ChangeNotification) {
	channel := notification.Channel()
	delta := notification.Delta()
	frame := entity.BusFrame{Type: entity.FrameDelta, Channel: channel.DataType, Delta: &delta}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.channels[channel]))
	for c := range h.channels[channel] {
		if c.deviceID == notification.SourceDeviceID {
			continue
		}
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		h.enqueue(c, frame)
	}

	h.logger.Debug("[Hub] Broadcast change",
		slog.String("channel", channel.String()),
		slog.String("kind", string(notification.Kind)),
		slog.Int("recipients", len(targets)),
	)
}

// Kick closes every connection deviceID holds in groupID and returns how many were closed.
func (h *Hub) Kick(groupID, deviceID string) int {
	h.mu.RLock()
	var targets []*client
	for c := range h.clients {
		if c.groupID == groupID && c.deviceID == deviceID {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.kick(reasonRemoved)
	}

	h.logger.Info("[Hub] Disconnected removed device",
		slog.String("group_id", groupID),
		slog.String("device_id", deviceID),
		slog.Int("connections", len(targets)),
	)

	return len(targets)
}

func (h *Hub) enqueue(c *client, frame entity.BusFrame) {
	select {
	case c.send <- frame:
	default:
		c.kick(reasonSlowConsumer)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}

	return true
}

// unregister destroys every subscription held by c.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for dataType := range c.subscribed {
		h.removeSubscriber(entity.Channel{GroupID: c.groupID, DataType: dataType}, c)
	}
	clear(c.subscribed)
	delete(h.clients, c)
}

func (h *Hub) subscribe(c *client, dataType entity.DataType) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := entity.Channel{GroupID: c.groupID, DataType: dataType}
	subs, ok := h.channels[channel]
	if !ok {
		subs = make(map[*client]struct{})
		h.channels[channel] = subs
	}
	subs[c] = struct{}{}
	c.subscribed[dataType] = struct{}{}
}

func (h *Hub) unsubscribe(c *client, dataType entity.DataType) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeSubscriber(entity.Channel{GroupID: c.groupID, DataType: dataType}, c)
	delete(c.subscribed, dataType)
}

// removeSubscriber must be called with h.mu held.
func (h *Hub) removeSubscriber(channel entity.Channel, c *client) {
	subs := h.channels[channel]
	delete(subs, c)
	if len(subs) == 0 {
		delete(h.channels, channel)
	}
}

// ConnectionCount returns the number of open connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// SubscriberCount returns the number of connections subscribed to channel.
func (h *Hub) SubscriberCount(channel entity.Channel) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.channels[channel])
}

// Close disconnects every client and refuses new connections.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.kick(reasonShutdown)
	}

	h.logger.Info("[Hub] Closed", slog.Int("connections", len(clients)))
}
