package arogo

import (
	"context"
	"net/http"
)

// AuthService exchanges credentials for bearer tokens with the platform's
// auth backend. Token issuance and verification live entirely server-side;
// this client only consumes them.
type AuthService struct {
	client *Client
}

// LoginRequest carries patient or staff portal credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is a bearer token with its expiry.
type Token struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	Role        string `json:"role,omitempty"` // "patient", "doctor", "admin"
}

// Login exchanges credentials for a token and installs it on the client, so
// subsequent requests authenticate without reconstruction.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*Token, error) {
	if req == nil {
		return nil, NewInvalidRequestError("req must not be nil")
	}
	if req.Email == "" || req.Password == "" {
		return nil, NewInvalidRequestError("email and password are required")
	}

	var tok Token
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/auth/login", req, &tok); err != nil {
		return nil, err
	}
	s.client.token = tok.AccessToken
	return &tok, nil
}

// Refresh renews the current token before it expires.
func (s *AuthService) Refresh(ctx context.Context) (*Token, error) {
	if s.client.token == "" {
		return nil, NewAuthenticationError("no token to refresh")
	}

	var tok Token
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/auth/refresh", nil, &tok); err != nil {
		return nil, err
	}
	s.client.token = tok.AccessToken
	return &tok, nil
}
