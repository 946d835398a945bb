package live

// Event is the interface for all session events.
type Event interface {
	// EventType returns the event type string for serialization.
	EventType() string
}

// ConnectedEvent is emitted once the transport acknowledged the session setup.
type ConnectedEvent struct {
	SessionID string `json:"session_id"`
	Model     string `json:"model,omitempty"`
}

func (e *ConnectedEvent) EventType() string { return "session.connected" }

// DisconnectedEvent is the terminal event; the event channel closes after it.
type DisconnectedEvent struct {
	Reason string `json:"reason,omitempty"`
}

func (e *DisconnectedEvent) EventType() string { return "session.disconnected" }

// TextTurnEvent carries the full text of one completed turn, the deltas
// concatenated in arrival order.
type TextTurnEvent struct {
	Text string `json:"text"`
}

func (e *TextTurnEvent) EventType() string { return "turn.text" }

// AudioTurnEvent carries one completed turn's audio as a playable WAV buffer.
type AudioTurnEvent struct {
	WAV []byte `json:"wav"`
}

func (e *AudioTurnEvent) EventType() string { return "turn.audio" }

// ErrorKind categorizes session errors.
type ErrorKind string

const (
	// KindTransport marks connection-level failures; the session is closed.
	KindTransport ErrorKind = "transport"

	// KindDecode marks malformed inbound fragments; the pending turn is
	// dropped and the session stays open.
	KindDecode ErrorKind = "decode"

	// KindOverflow marks a pending turn that exceeded MaxTurnBytes; the turn
	// is dropped and the session stays open.
	KindOverflow ErrorKind = "overflow"
)

// ErrorEvent reports a session error. Transport errors are followed by a
// DisconnectedEvent; decode and overflow errors are per-turn and non-fatal.
type ErrorEvent struct {
	Kind ErrorKind `json:"kind"`
	Err  error     `json:"-"`
}

func (e *ErrorEvent) EventType() string { return "error" }
