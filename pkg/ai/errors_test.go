package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestErrorKind(t *testing.T) {
	var decodeErr error
	if err := json.Unmarshal([]byte("{not json"), &struct{}{}); err != nil {
		decodeErr = err
	}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			want: "timeout",
		},
		{
			name: "wrapped timeout sentinel",
			err:  fmt.Errorf("calling model: %w", ErrTimeout),
			want: "timeout",
		},
		{
			name: "canceled",
			err:  context.Canceled,
			want: "canceled",
		},
		{
			name: "connection refused",
			err:  &net.OpError{Op: "dial", Err: errors.New("connection refused")},
			want: "unavailable",
		},
		{
			name: "unavailable sentinel",
			err:  ErrUnavailable,
			want: "unavailable",
		},
		{
			name: "json syntax error",
			err:  fmt.Errorf("decoding: %w", decodeErr),
			want: "malformed",
		},
		{
			name: "malformed sentinel",
			err:  fmt.Errorf("%w: missing response field", ErrMalformedResponse),
			want: "malformed",
		},
		{
			name: "anything else",
			err:  errors.New("boom"),
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKind(tt.err); got != tt.want {
				t.Fatalf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
