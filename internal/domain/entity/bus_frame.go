package entity

// FrameType identifies a message on the change bus connection.
type FrameType string

const (
	// Client to server
	FrameSubscribe   FrameType = "subscribe"
	FrameUnsubscribe FrameType = "unsubscribe"
	FramePing        FrameType = "ping"

	// Server to client
	FrameSubscribed   FrameType = "subscribed"
	FrameUnsubscribed FrameType = "unsubscribed"
	FramePong         FrameType = "pong"
	FrameDelta        FrameType = "delta"
	FrameError        FrameType = "error"
)

// BusFrame is the JSON envelope exchanged over the change bus.
// Channel carries only the data type; the group comes from the authenticated connection.
type BusFrame struct {
	Type    FrameType `json:"type"`
	Channel DataType  `json:"channel,omitempty"`
	Delta   *RawDelta `json:"delta,omitempty"`
	Error   string    `json:"error,omitempty"`
}
