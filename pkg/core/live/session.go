package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/arogo-health/arogo-go/pkg/core/audio"
)

// ErrNotConnected is returned by outbound operations outside the Open state.
// Recoverable by dialing a new session.
var ErrNotConnected = errors.New("live: session is not open")

// TransportError wraps connection-level failures. A transport error always
// terminates the session; reconnection is an explicit caller action.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("live: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// State is the session lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Session is one logical connection to the realtime endpoint. It owns exactly
// one pending turn accumulator at a time.
type Session struct {
	cfg    SessionConfig
	conn   Conn
	logger *slog.Logger
	id     string

	events chan Event
	state  atomic.Int32

	writeMu sync.Mutex

	closeOnce  sync.Once
	done       chan struct{}
	userClosed atomic.Bool

	// Pending turn, owned by the read loop.
	textBuf   strings.Builder
	audioBuf  [][]byte
	turnBytes int
	dropTurn  bool
}

// Dial opens a session: it connects the transport, sends the setup frame and
// waits for the remote acknowledgment before returning. The returned session
// is Open; callers must drain Events() and call Disconnect when done.
func Dial(ctx context.Context, cfg SessionConfig) (*Session, error) {
	cfg = cfg.withDefaults()
	if cfg.Endpoint == "" {
		return nil, errors.New("live: endpoint is required")
	}

	s := &Session{
		cfg:    cfg,
		logger: cfg.Logger,
		id:     uuid.NewString(),
		events: make(chan Event, cfg.EventBuffer),
		done:   make(chan struct{}),
	}
	s.state.Store(int32(StateConnecting))

	endpoint, err := s.endpointURL()
	if err != nil {
		s.state.Store(int32(StateClosed))
		return nil, err
	}

	conn, err := cfg.Dialer(ctx, endpoint, nil)
	if err != nil {
		s.state.Store(int32(StateClosed))
		return nil, &TransportError{Op: "dial", Err: err}
	}
	s.conn = conn

	if err := s.handshake(); err != nil {
		s.state.Store(int32(StateClosed))
		conn.Close()
		return nil, err
	}

	s.state.Store(int32(StateOpen))
	s.events <- &ConnectedEvent{SessionID: s.id, Model: cfg.Model}

	go s.readLoop()
	go s.keepAlive()

	s.logger.Debug("live session open", "session_id", s.id, "model", cfg.Model)
	return s, nil
}

func (s *Session) endpointURL() (string, error) {
	if s.cfg.APIKey == "" {
		return s.cfg.Endpoint, nil
	}
	u, err := url.Parse(s.cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("live: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", s.cfg.APIKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// handshake sends the setup frame and waits for the setup-complete ack.
func (s *Session) handshake() error {
	if err := s.writeJSON(clientMessage{Setup: &setupPayload{Model: s.cfg.Model}}); err != nil {
		return &TransportError{Op: "send setup", Err: err}
	}
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return &TransportError{Op: "await setup ack", Err: err}
		}
		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("unparseable frame during setup", "error", err)
			continue
		}
		if msg.SetupComplete != nil {
			return nil
		}
	}
}

// ID returns the locally assigned session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return State(s.state.Load()) }

// Events returns the session event stream. The channel closes after the
// DisconnectedEvent.
func (s *Session) Events() <-chan Event { return s.events }

// SendText sends one complete user text turn. There is no outbound streaming;
// the turn is marked complete immediately.
func (s *Session) SendText(text string) error {
	if s.State() != StateOpen {
		return ErrNotConnected
	}
	msg := clientMessage{ClientContent: &clientContent{
		Turns: []contentTurn{{
			Role:  "user",
			Parts: []contentPart{{Text: text}},
		}},
		TurnComplete: true,
	}}
	if err := s.writeJSON(msg); err != nil {
		s.teardown()
		return &TransportError{Op: "send text", Err: err}
	}
	return nil
}

// SendAudio sends one PCM fragment as a complete user turn. An empty
// descriptor defaults to DefaultAudioMimeType.
func (s *Session) SendAudio(fragment []byte, descriptor string) error {
	if s.State() != StateOpen {
		return ErrNotConnected
	}
	if descriptor == "" {
		descriptor = DefaultAudioMimeType
	}
	msg := clientMessage{ClientContent: &clientContent{
		Turns: []contentTurn{{
			Role: "user",
			Parts: []contentPart{{InlineData: &inlineData{
				MimeType: descriptor,
				Data:     audio.EncodeBase64(fragment),
			}}},
		}},
		TurnComplete: true,
	}}
	if err := s.writeJSON(msg); err != nil {
		s.teardown()
		return &TransportError{Op: "send audio", Err: err}
	}
	return nil
}

// Disconnect closes the session. Idempotent: the second call is a no-op. Any
// buffered partial turn is discarded without being delivered.
func (s *Session) Disconnect() {
	s.userClosed.Store(true)
	s.teardown()
}

// teardown drives the state to Closed, stops the keep-alive timer and closes
// the transport. The read loop observes the closed transport and finishes the
// event stream.
func (s *Session) teardown() {
	s.closeOnce.Do(func() {
		s.state.Store(int32(StateClosed))
		close(s.done)

		s.writeMu.Lock()
		deadline := time.Now().Add(time.Second)
		closeFrame := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if wc, ok := s.conn.(interface {
			WriteControl(messageType int, data []byte, deadline time.Time) error
		}); ok {
			_ = wc.WriteControl(websocket.CloseMessage, closeFrame, deadline)
		}
		s.writeMu.Unlock()

		_ = s.conn.Close()
	})
}

func (s *Session) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// keepAlive holds the transport open during silence by sending an empty
// client-content frame at a fixed cadence. Best effort: failures are logged
// and do not change connection state.
func (s *Session) keepAlive() {
	ticker := time.NewTicker(s.cfg.KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.writeJSON(clientMessage{ClientContent: &clientContent{}}); err != nil {
				s.logger.Warn("keep-alive send failed", "session_id", s.id, "error", err)
			}
		}
	}
}

// readLoop is the single consumer of inbound frames; it owns the pending-turn
// buffers and is the sole closer of the event channel.
func (s *Session) readLoop() {
	defer close(s.events)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.finish(err)
			return
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("unparseable inbound frame", "session_id", s.id, "error", err)
			continue
		}
		if msg.ServerContent == nil {
			continue
		}

		if turn := msg.ServerContent.ModelTurn; turn != nil {
			s.accumulate(turn.Parts)
		}
		if msg.ServerContent.TurnComplete {
			s.completeTurn()
		}
	}
}

// accumulate appends inbound fragments to the pending turn in strict arrival
// order. No reordering or deduplication.
func (s *Session) accumulate(parts []contentPart) {
	for _, part := range parts {
		if s.dropTurn {
			return
		}
		if part.Text != "" {
			s.textBuf.WriteString(part.Text)
			s.turnBytes += len(part.Text)
		}
		if part.InlineData != nil {
			raw, err := audio.DecodeBase64(part.InlineData.Data)
			if err != nil {
				s.poisonTurn(&ErrorEvent{Kind: KindDecode, Err: err})
				return
			}
			s.audioBuf = append(s.audioBuf, raw)
			s.turnBytes += len(raw)
		}
		if s.turnBytes > s.cfg.MaxTurnBytes {
			s.poisonTurn(&ErrorEvent{
				Kind: KindOverflow,
				Err:  fmt.Errorf("live: pending turn exceeded %d bytes", s.cfg.MaxTurnBytes),
			})
			return
		}
	}
}

// poisonTurn discards the pending turn and ignores the rest of its fragments
// until the next turn-complete signal. The connection stays open.
func (s *Session) poisonTurn(ev *ErrorEvent) {
	s.resetTurn()
	s.dropTurn = true
	s.logger.Warn("turn dropped", "session_id", s.id, "kind", string(ev.Kind), "error", ev.Err)
	s.emit(ev)
}

// completeTurn delivers the accumulated turn. Both callbacks are guarded by
// non-empty buffers, so a turn-complete with nothing pending emits no events.
func (s *Session) completeTurn() {
	if s.dropTurn {
		s.dropTurn = false
		s.resetTurn()
		return
	}

	if s.textBuf.Len() > 0 {
		s.emit(&TextTurnEvent{Text: s.textBuf.String()})
	}
	if len(s.audioBuf) > 0 {
		s.emit(&AudioTurnEvent{WAV: audio.AssembleWAV(s.audioBuf, audio.DefaultFormat())})
	}
	s.resetTurn()
}

func (s *Session) resetTurn() {
	s.textBuf.Reset()
	s.audioBuf = nil
	s.turnBytes = 0
}

// finish runs once the transport is gone: it completes the lifecycle and
// emits the terminal events. Buffered partial turns are discarded.
func (s *Session) finish(err error) {
	s.teardown()
	s.resetTurn()

	if s.userClosed.Load() {
		s.emit(&DisconnectedEvent{Reason: "disconnect requested"})
		return
	}

	s.logger.Warn("live session lost", "session_id", s.id, "error", err)
	s.emit(&ErrorEvent{Kind: KindTransport, Err: &TransportError{Op: "read", Err: err}})
	s.emit(&DisconnectedEvent{Reason: err.Error()})
}

func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	case <-time.After(5 * time.Second):
		// A consumer that stopped draining would otherwise wedge the read
		// loop; drop the event instead.
		s.logger.Warn("event dropped, consumer not draining", "session_id", s.id, "event", ev.EventType())
	}
}
