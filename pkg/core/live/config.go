package live

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// DefaultKeepAliveInterval is the cadence of the idle keep-alive signal.
	DefaultKeepAliveInterval = 30 * time.Second

	// DefaultMaxTurnBytes caps how much a single pending turn may buffer
	// before it is dropped. Turns that never complete would otherwise grow
	// without bound.
	DefaultMaxTurnBytes = 8 << 20

	// DefaultEventBuffer is the event channel capacity.
	DefaultEventBuffer = 32

	// DefaultAudioMimeType is the descriptor used when SendAudio is called
	// without one.
	DefaultAudioMimeType = "audio/L16;rate=24000"
)

// Conn is the transport surface the session drives. *websocket.Conn
// satisfies it; tests inject fakes.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Dialer opens the transport connection.
type Dialer func(ctx context.Context, endpoint string, header http.Header) (Conn, error)

// DefaultDialer dials the endpoint over websocket.
func DefaultDialer(ctx context.Context, endpoint string, header http.Header) (Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// SessionConfig configures a realtime session.
type SessionConfig struct {
	// Endpoint is the websocket URL of the realtime service.
	Endpoint string

	// APIKey authenticates the connection. Attached as a query parameter,
	// matching the remote contract.
	APIKey string

	// Model selects the conversational model for the setup frame.
	Model string

	// KeepAliveInterval overrides the idle keep-alive cadence.
	KeepAliveInterval time.Duration

	// MaxTurnBytes overrides the pending-turn buffer cap.
	MaxTurnBytes int

	// EventBuffer overrides the event channel capacity.
	EventBuffer int

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Dialer defaults to DefaultDialer.
	Dialer Dialer
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.KeepAliveInterval <= 0 {
		c.KeepAliveInterval = DefaultKeepAliveInterval
	}
	if c.MaxTurnBytes <= 0 {
		c.MaxTurnBytes = DefaultMaxTurnBytes
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = DefaultEventBuffer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Dialer == nil {
		c.Dialer = DefaultDialer
	}
	return c
}
