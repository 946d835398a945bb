// Package arogo provides the Go client for the Arogo healthcare booking
// platform.
//
// The client talks to the platform's REST backend (appointments, doctor
// directory, diet charts, report export) and opens realtime voice-assistant
// sessions. It does not implement any of those services itself; persistence,
// authentication and payment all live behind the backend.
package arogo

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const defaultBaseURL = "https://api.arogo.health"

// Client is the main entry point for the SDK.
type Client struct {
	Auth         *AuthService
	Appointments *AppointmentsService
	Doctors      *DoctorsService
	DietCharts   *DietChartsService
	Reports      *ReportsService
	Assistant    *AssistantService

	// Internal
	baseURL      string
	token        string
	tenant       string
	httpClient   *http.Client
	logger       *slog.Logger
	tracer       trace.Tracer
	maxRetries   int
	retryBackoff time.Duration
}

// NewClient creates a new client. The bearer token comes from the platform's
// auth service; the SDK only attaches it.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      defaultBaseURL,
		logger:       slog.Default(),
		maxRetries:   2,
		retryBackoff: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = newDefaultHTTPClient()
	}

	c.Auth = &AuthService{client: c}
	c.Appointments = &AppointmentsService{client: c}
	c.Doctors = &DoctorsService{client: c}
	c.DietCharts = &DietChartsService{client: c}
	c.Reports = &ReportsService{client: c}
	c.Assistant = &AssistantService{client: c}
	return c
}
