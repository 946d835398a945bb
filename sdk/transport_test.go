package arogo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryOnOverload(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":{"type":"overloaded_error","message":"busy"}}`))
			return
		}
		w.Write([]byte(`{"doctors":[]}`))
	}))
	defer srv.Close()

	client := NewClient(
		WithBaseURL(srv.URL),
		WithRetries(3),
		WithRetryBackoff(time.Millisecond),
	)

	_, err := client.Doctors.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestNoRetryOnInvalidRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`bad payload`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRetries(3), WithRetryBackoff(time.Millisecond))

	_, err := client.Doctors.List(context.Background(), nil)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrInvalidRequest, apiErr.Type)
	assert.Equal(t, int32(1), calls.Load())
}

func TestStatusMapping(t *testing.T) {
	cases := map[int]string{
		http.StatusUnauthorized:        string(ErrAuthentication),
		http.StatusForbidden:           string(ErrPermission),
		http.StatusNotFound:            string(ErrNotFound),
		http.StatusTooManyRequests:     string(ErrRateLimit),
		http.StatusInternalServerError: string(ErrAPI),
	}

	for status, wantType := range cases {
		err := parseAPIError(status, []byte("nope"))
		apiErr, ok := err.(*Error)
		require.True(t, ok, "status %d", status)
		assert.Equal(t, wantType, string(apiErr.Type), "status %d", status)
	}
}

func TestTransportErrorWrapping(t *testing.T) {
	client := NewClient(
		WithBaseURL("http://127.0.0.1:1"), // nothing listens here
		WithRetries(0),
	)

	_, err := client.Doctors.List(context.Background(), nil)
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.MethodGet, terr.Op)
}
