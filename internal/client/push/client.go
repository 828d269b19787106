// Package push is the device side of the real-time change bus. It keeps one
// websocket open, replays subscriptions after every reconnect, and feeds
// inbound deltas into the same merge path the poller uses.
package push

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"mirror/config"
	"mirror/internal/domain/entity"
	"mirror/internal/errors"

	"github.com/cenkalti/backoff/v5"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// State is the connection state of the push client.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// Event names what a handler registered with On is told about.
type Event string

const (
	EventDelta Event = "delta"
	EventState Event = "state"
	EventError Event = "error"
)

// Notice is passed to event handlers. Only the fields of its Event are set.
type Notice struct {
	Event   Event
	State   State
	Channel entity.DataType
	Delta   *entity.RawDelta
	Err     error
}

// Handler receives notices on the connection goroutine and must not block.
type Handler func(Notice)

// EndpointFunc returns the bus URL and the headers authenticating the upgrade.
type EndpointFunc func() (string, http.Header)

var (
	ErrClosed         = errors.New("push client closed")
	ErrAlreadyStarted = errors.New("push client already started")
)

// Client owns the change bus connection of one device.
type Client struct {
	endpoint EndpointFunc
	router   *Router
	cfg      config.BusConfig
	logger   *slog.Logger
	wait     func(ctx context.Context, d time.Duration) bool

	mu       sync.Mutex
	state    State
	conn     *websocket.Conn
	subs     map[entity.DataType]struct{}
	handlers map[Event][]Handler
	started  bool
	closed   bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewClient creates a disconnected client. Deltas are dispatched to router.
func NewClient(endpoint EndpointFunc, router *Router, cfg *config.BusConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		router:   router,
		cfg:      *cfg,
		logger:   logger,
		wait:     sleepContext,
		state:    StateDisconnected,
		subs:     make(map[entity.DataType]struct{}),
		handlers: make(map[Event][]Handler),
	}
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// On registers handler for event.
func (c *Client) On(event Event, handler Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handlers[event] = append(c.handlers[event], handler)
}

func (c *Client) emit(n Notice) {
	c.mu.Lock()
	handlers := slices.Clone(c.handlers[n.Event])
	c.mu.Unlock()

	for _, h := range handlers {
		h(n)
	}
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Client) setState(state State) {
	c.mu.Lock()
	if c.state == state {
		c.mu.Unlock()

		return
	}
	c.state = state
	c.mu.Unlock()

	c.logger.Debug("[PushClient] State changed", slog.String("state", string(state)))
	c.emit(Notice{Event: EventState, State: state})
}

// Subscriptions returns the channels currently held, sorted.
func (c *Client) Subscriptions() []entity.DataType {
	c.mu.Lock()
	defer c.mu.Unlock()

	subs := make([]entity.DataType, 0, len(c.subs))
	for dataType := range c.subs {
		subs = append(subs, dataType)
	}
	slices.Sort(subs)

	return subs
}

// Subscribe adds channel to the subscription set and tells the server when
// connected. Subscribing twice is a no-op.
func (c *Client) Subscribe(ctx context.Context, channel entity.DataType) error {
	if !channel.IsValid() {
		return errors.Wrapf(entity.ErrUnknownDataType, "%q", channel)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return ErrClosed
	}
	if _, ok := c.subs[channel]; ok {
		c.mu.Unlock()

		return nil
	}
	c.subs[channel] = struct{}{}
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		// Sent on the next Connected transition.
		return nil
	}

	return c.send(ctx, conn, entity.BusFrame{Type: entity.FrameSubscribe, Channel: channel})
}

// Unsubscribe removes channel from the subscription set. Unknown channels are a no-op.
func (c *Client) Unsubscribe(ctx context.Context, channel entity.DataType) error {
	c.mu.Lock()
	if _, ok := c.subs[channel]; !ok {
		c.mu.Unlock()

		return nil
	}
	delete(c.subs, channel)
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return nil
	}

	return c.send(ctx, conn, entity.BusFrame{Type: entity.FrameUnsubscribe, Channel: channel})
}

func (c *Client) send(ctx context.Context, conn *websocket.Conn, frame entity.BusFrame) error {
	writeCtx, cancel := context.WithTimeout(ctx, c.cfg.WriteTimeout)
	defer cancel()

	// A failed write surfaces as a read error and triggers a reconnect.
	return errors.WithStack(wsjson.Write(writeCtx, conn, frame))
}

// Start runs the connection loop until Close or ctx cancellation.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.run(runCtx)

	return nil
}

func (c *Client) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.ReconnectBase
	b.MaxInterval = c.cfg.ReconnectMax
	b.RandomizationFactor = c.cfg.ReconnectJitter
	b.Multiplier = 2
	b.Reset()

	return b
}

func (c *Client) run(ctx context.Context) {
	defer close(c.done)
	defer c.setState(StateDisconnected)

	retry := c.newBackOff()
	for ctx.Err() == nil {
		if c.connectAndServe(ctx) {
			retry.Reset()
		}
		if ctx.Err() != nil {
			return
		}

		delay := retry.NextBackOff()
		c.logger.Info("[PushClient] Reconnecting", slog.Duration("delay", delay))
		if !c.wait(ctx, delay) {
			return
		}
	}
}

// connectAndServe dials, replays subscriptions, and reads until the connection
// drops. It reports whether the connection was established.
func (c *Client) connectAndServe(ctx context.Context) bool {
	c.setState(StateConnecting)

	url, header := c.endpoint()
	conn, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		c.setState(StateDisconnected)
		if ctx.Err() == nil {
			c.logger.Warn("[PushClient] Dial failed", slog.Any("error", err))
			c.emit(Notice{Event: EventError, Err: errors.Wrap(err, "dial change bus")})
		}

		return false
	}
	defer conn.CloseNow()

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.setState(StateConnected)
	c.replay(ctx, conn)

	err = c.readLoop(ctx, conn)

	c.mu.Lock()
	c.conn = nil
	c.mu.Unlock()
	c.setState(StateDisconnected)

	if ctx.Err() == nil {
		c.logger.Warn("[PushClient] Connection lost",
			slog.Int("status", int(websocket.CloseStatus(err))),
			slog.Any("error", err),
		)
	}

	return true
}

// replay re-sends every held subscription on a fresh connection.
func (c *Client) replay(ctx context.Context, conn *websocket.Conn) {
	for _, channel := range c.Subscriptions() {
		if err := c.send(ctx, conn, entity.BusFrame{Type: entity.FrameSubscribe, Channel: channel}); err != nil {
			c.logger.Warn("[PushClient] Subscription replay failed", slog.String("channel", channel.String()), slog.Any("error", err))

			return
		}
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	for {
		var frame entity.BusFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			return errors.WithStack(err)
		}

		switch frame.Type {
		case entity.FrameDelta:
			c.handleDelta(ctx, frame)
		case entity.FrameError:
			c.emit(Notice{Event: EventError, Channel: frame.Channel, Err: errors.Errorf("change bus: %s", frame.Error)})
		case entity.FrameSubscribed, entity.FrameUnsubscribed, entity.FramePong:
		default:
			c.logger.Debug("[PushClient] Ignoring frame", slog.String("type", string(frame.Type)))
		}
	}
}

func (c *Client) handleDelta(ctx context.Context, frame entity.BusFrame) {
	if frame.Delta == nil {
		c.emit(Notice{Event: EventError, Channel: frame.Channel, Err: errors.Wrap(entity.ErrInvalidDelta, "delta frame without delta")})

		return
	}

	if c.router != nil {
		if err := c.router.Dispatch(ctx, frame.Channel, *frame.Delta); err != nil {
			c.logger.Warn("[PushClient] Rejected delta", slog.String("channel", frame.Channel.String()), slog.Any("error", err))
			c.emit(Notice{Event: EventError, Channel: frame.Channel, Err: err})

			return
		}
	}

	c.emit(Notice{Event: EventDelta, Channel: frame.Channel, Delta: frame.Delta})
}

// Close cancels any pending reconnect, clears the subscription set and closes
// the socket. It does not touch server-side membership.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return nil
	}
	c.closed = true
	clear(c.subs)
	conn := c.conn
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "client closed")
	}
	if cancel != nil {
		cancel()
		<-done
	}

	return nil
}
