package arogo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/arogo-health/arogo-go/pkg/core"
)

const (
	requestIDHeader = "X-Request-ID"
	tenantHeader    = "X-Arogo-Tenant"
)

func (c *Client) apiURL(path string) string {
	return strings.TrimRight(c.baseURL, "/") + path
}

func (c *Client) addHeaders(req *http.Request) {
	req.Header.Set(requestIDHeader, uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.tenant != "" {
		req.Header.Set(tenantHeader, c.tenant)
	}
}

// doJSON performs one JSON request/response exchange with bounded retries.
// Transport failures and retryable API errors back off exponentially.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	ctx, end := c.startSpan(ctx, method, path)
	defer end()

	attempt := 0
	backoff := c.retryBackoff

	for {
		var reader io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("encode request: %w", err)
			}
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.apiURL(path), reader)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		c.addHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if shouldRetry(ctx, attempt, c.maxRetries) {
				time.Sleep(backoff)
				backoff = nextBackoff(backoff)
				attempt++
				continue
			}
			return &TransportError{Op: method, URL: c.apiURL(path), Err: err}
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return &TransportError{Op: method, URL: c.apiURL(path), Err: err}
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			apiErr := parseAPIError(resp.StatusCode, respBody)
			if shouldRetryAPIError(ctx, attempt, c.maxRetries, apiErr) {
				time.Sleep(backoff)
				backoff = nextBackoff(backoff)
				attempt++
				continue
			}
			return apiErr
		}

		if out != nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	}
}

// doRaw performs a GET and returns the response bytes, for non-JSON payloads
// such as PDF exports.
func (c *Client) doRaw(ctx context.Context, path string) ([]byte, string, error) {
	ctx, end := c.startSpan(ctx, http.MethodGet, path)
	defer end()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL(path), nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	c.addHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &TransportError{Op: http.MethodGet, URL: c.apiURL(path), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &TransportError{Op: http.MethodGet, URL: c.apiURL(path), Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, "", parseAPIError(resp.StatusCode, respBody)
	}
	return respBody, resp.Header.Get("Content-Type"), nil
}

func (c *Client) startSpan(ctx context.Context, method, path string) (context.Context, func()) {
	if c.tracer == nil {
		return ctx, func() {}
	}
	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	return ctx, func() { span.End() }
}

type apiErrorResponse struct {
	Error core.Error `json:"error"`
}

func parseAPIError(status int, body []byte) error {
	var resp apiErrorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error.Type != "" {
		return &resp.Error
	}

	message := strings.TrimSpace(string(body))
	if message == "" {
		message = fmt.Sprintf("backend error (%d)", status)
	}

	switch status {
	case http.StatusBadRequest:
		return core.NewInvalidRequestError(message)
	case http.StatusUnauthorized:
		return core.NewAuthenticationError(message)
	case http.StatusForbidden:
		return core.NewPermissionError(message)
	case http.StatusNotFound:
		return core.NewNotFoundError(message)
	case http.StatusTooManyRequests:
		return core.NewRateLimitError(message, 1)
	case http.StatusServiceUnavailable:
		return core.NewOverloadedError(message)
	default:
		return core.NewAPIError(message)
	}
}

func shouldRetryAPIError(ctx context.Context, attempt, maxRetries int, err error) bool {
	if !shouldRetry(ctx, attempt, maxRetries) {
		return false
	}
	if apiErr, ok := err.(*core.Error); ok {
		return apiErr.IsRetryable()
	}
	return false
}

func shouldRetry(ctx context.Context, attempt, maxRetries int) bool {
	if ctx.Err() != nil {
		return false
	}
	return attempt < maxRetries
}

func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next == 0 {
		return time.Second
	}
	return next
}
