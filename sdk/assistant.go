package arogo

import (
	"context"
	"time"

	"github.com/arogo-health/arogo-go/pkg/core/live"
)

// AssistantService opens realtime voice-assistant sessions.
type AssistantService struct {
	client *Client
}

// AssistantConfig configures a realtime session. Zero values fall back to the
// live package defaults.
type AssistantConfig struct {
	// Endpoint is the realtime websocket URL (required).
	Endpoint string

	// APIKey authenticates against the realtime service. Independent from
	// the platform bearer token.
	APIKey string

	// Model selects the conversational model.
	Model string

	// KeepAliveInterval overrides the idle keep-alive cadence.
	KeepAliveInterval int // seconds
}

// Connect dials the realtime endpoint and returns an open session. The caller
// owns its lifecycle: drain Events() and call Disconnect when done.
func (s *AssistantService) Connect(ctx context.Context, cfg AssistantConfig) (*live.Session, error) {
	if cfg.Endpoint == "" {
		return nil, NewInvalidRequestError("endpoint is required")
	}

	sessCfg := live.SessionConfig{
		Endpoint: cfg.Endpoint,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		Logger:   s.client.logger,
	}
	if cfg.KeepAliveInterval > 0 {
		sessCfg.KeepAliveInterval = time.Duration(cfg.KeepAliveInterval) * time.Second
	}
	return live.Dial(ctx, sessCfg)
}
