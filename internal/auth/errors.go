package auth

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned by Authenticate when the Config lacks a
// client ID or secret. Callers that treat authentication as best-effort may
// check for this and proceed without a session instead of failing.
var ErrMissingCredentials = errors.New("missing client_id or client_secret")

// ErrAuthTimeout is returned when the user did not complete consent before
// the flow's deadline elapsed. The attempt can be retried by calling
// Authenticate again.
var ErrAuthTimeout = errors.New("timed out waiting for user authorization")

// ProtocolError indicates a malformed or unexpected response shape from an
// authorization endpoint. It is fatal to the current attempt.
type ProtocolError struct {
	Endpoint string
	Reason   string
	Err      error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error from %s: %s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("protocol error from %s: %s", e.Endpoint, e.Reason)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// RelaySetupError indicates that registering a session with the relay
// service failed. The whole authentication attempt is aborted.
type RelaySetupError struct {
	RelayHost string
	Reason    string
	Err       error
}

func (e *RelaySetupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("relay session setup failed against %s: %s: %v", e.RelayHost, e.Reason, e.Err)
	}
	return fmt.Sprintf("relay session setup failed against %s: %s", e.RelayHost, e.Reason)
}

func (e *RelaySetupError) Unwrap() error {
	return e.Err
}
