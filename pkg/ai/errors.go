package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"syscall"
)

var (
	// ErrUnavailable indicates the generation endpoint could not be reached.
	ErrUnavailable = errors.New("generation endpoint unreachable")

	// ErrTimeout indicates a generation request exceeded its deadline.
	ErrTimeout = errors.New("generation request timed out")

	// ErrMalformedResponse indicates the endpoint answered with a body
	// that could not be decoded.
	ErrMalformedResponse = errors.New("malformed generation response")
)

// ErrorKind classifies a generation failure for logging. All kinds are
// handled identically by callers (template fallback); the distinction
// exists only for diagnosability.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrUnavailable) || isConnectionError(err):
		return "unavailable"
	case errors.Is(err, ErrMalformedResponse) || isDecodeError(err):
		return "malformed"
	default:
		return "unknown"
	}
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
