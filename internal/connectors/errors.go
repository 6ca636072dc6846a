package connectors

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by provider adapters.
var (
	// ErrRateLimited indicates the provider refused the call (HTTP 429 or
	// local limiter exhaustion under a closed deadline).
	ErrRateLimited = errors.New("provider rate limited")

	// ErrUnavailable indicates the provider's circuit breaker is open.
	ErrUnavailable = errors.New("provider unavailable")
)

// ConnectorError wraps a network, timeout, or HTTP failure from a provider.
// The orchestrator recovers it at the step level.
type ConnectorError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ConnectorError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ConnectorError) Unwrap() error { return e.Err }

// MalformedResponseError indicates the provider answered with an unexpected
// payload shape. Treated as missing data, same as ConnectorError.
type MalformedResponseError struct {
	Provider string
	Op       string
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s %s: malformed response: %s", e.Provider, e.Op, e.Reason)
}

// connErr builds a ConnectorError.
func connErr(provider, op string, err error) error {
	return &ConnectorError{Provider: provider, Op: op, Err: err}
}

// malformed builds a MalformedResponseError.
func malformed(provider, op, reason string) error {
	return &MalformedResponseError{Provider: provider, Op: op, Reason: reason}
}
