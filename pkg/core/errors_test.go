package core

import (
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without code",
			err:  &Error{Type: ErrInvalidRequest, Message: "doctor_id is required"},
			want: "invalid_request_error: doctor_id is required",
		},
		{
			name: "with code",
			err:  &Error{Type: ErrNotFound, Message: "appointment not found", Code: "appointment_missing"},
			want: "not_found_error: appointment not found (code: appointment_missing)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	retryable := []*Error{
		NewRateLimitError("slow down", 2),
		NewOverloadedError("backend busy"),
		NewAPIError("internal error"),
	}
	for _, e := range retryable {
		if !e.IsRetryable() {
			t.Errorf("expected %s to be retryable", e.Type)
		}
	}

	terminal := []*Error{
		NewInvalidRequestError("bad payload"),
		NewAuthenticationError("token expired"),
		NewPermissionError("wrong tenant"),
		NewNotFoundError("no such doctor"),
	}
	for _, e := range terminal {
		if e.IsRetryable() {
			t.Errorf("expected %s to be terminal", e.Type)
		}
	}
}

func TestNewRateLimitErrorRetryAfter(t *testing.T) {
	e := NewRateLimitError("slow down", 30)
	if e.RetryAfter == nil || *e.RetryAfter != 30 {
		t.Fatalf("RetryAfter = %v, want 30", e.RetryAfter)
	}
}
