package arogo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthLoginInstallsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/login":
			var req LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "pat@example.com", req.Email)
			json.NewEncoder(w).Encode(Token{AccessToken: "tok-1", ExpiresIn: 3600, Role: "patient"})
		case "/v1/appointments":
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			w.Write([]byte(`{"appointments":[]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	tok, err := client.Auth.Login(context.Background(), &LoginRequest{
		Email:    "pat@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "patient", tok.Role)

	// Follow-up calls carry the issued token.
	_, err = client.Appointments.List(context.Background())
	require.NoError(t, err)
}

func TestAuthRefreshWithoutToken(t *testing.T) {
	client := NewClient(WithBaseURL("http://unused"))
	_, err := client.Auth.Refresh(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrAuthentication, apiErr.Type)
}
