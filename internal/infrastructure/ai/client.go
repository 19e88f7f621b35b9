// Package ai provides abstractions for AI provider integrations.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"
)

// DefaultTimeout bounds one provider round trip.
const DefaultTimeout = 20 * time.Second

// Client is an abstraction over concrete AI providers.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Kind classifies provider failures.
type Kind string

const (
	KindNetwork   Kind = "network"
	KindHTTP      Kind = "http"
	KindMalformed Kind = "malformed"
)

// Error is returned by every provider client. Status is set for KindHTTP.
type Error struct {
	Provider string
	Kind     Kind
	Status   int
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("%s: http status %d: %v", e.Provider, e.Status, e.Err)
	case KindMalformed:
		return fmt.Sprintf("%s: malformed response: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: request failed: %v", e.Provider, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NetworkError wraps a transport failure.
func NetworkError(provider string, err error) *Error {
	return &Error{Provider: provider, Kind: KindNetwork, Err: err}
}

// HTTPError wraps a non-2xx response.
func HTTPError(provider string, status int, err error) *Error {
	return &Error{Provider: provider, Kind: KindHTTP, Status: status, Err: err}
}

// MalformedError wraps an unexpected response shape.
func MalformedError(provider string, err error) *Error {
	return &Error{Provider: provider, Kind: KindMalformed, Err: err}
}

// IsKind reports whether err is a provider Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Kind == kind
}

// IsTransport reports whether err originates below HTTP: dial, timeout or cancellation.
func IsTransport(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
