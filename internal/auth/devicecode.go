package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// codeResponse is the device-code grant returned by the code endpoint.
type codeResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURL string `json:"verification_url"`
	Interval        int64  `json:"interval"`
	ExpiresIn       int64  `json:"expires_in"`
}

// validate checks that every field the polling phase depends on is present.
func (r *codeResponse) validate() error {
	switch {
	case r.DeviceCode == "":
		return fmt.Errorf("missing device_code")
	case r.UserCode == "":
		return fmt.Errorf("missing user_code")
	case r.VerificationURL == "":
		return fmt.Errorf("missing verification_url")
	case r.Interval <= 0:
		return fmt.Errorf("missing interval")
	case r.ExpiresIn <= 0:
		return fmt.Errorf("missing expires_in")
	}
	return nil
}

// deviceCodeFlow obtains a token via the OAuth2 device-code flow: request a
// short code, show it to the user, poll the token endpoint until the user
// approves or the code expires.
type deviceCodeFlow struct {
	cfg        Config
	httpClient *http.Client
	prompt     PromptFunc
}

// Run drives the flow to completion. It returns ErrAuthTimeout if the user
// does not approve within the server-announced expiry window.
func (f *deviceCodeFlow) Run(ctx context.Context) (*Token, error) {
	code, err := f.requestCode(ctx)
	if err != nil {
		return nil, err
	}

	f.prompt(fmt.Sprintf("Open %s in a browser and enter the code %s to authorize this device.",
		code.VerificationURL, code.UserCode))

	slog.Debug("Waiting for user approval of device code",
		"verification_url", code.VerificationURL,
		"interval_seconds", code.Interval,
		"expires_in_seconds", code.ExpiresIn,
	)

	interval := time.Duration(code.Interval) * time.Second
	deadline := time.Duration(code.ExpiresIn) * time.Second

	token, err := Poll(ctx, interval, deadline, func(ctx context.Context) (*Token, error) {
		return f.pollToken(ctx, code.DeviceCode)
	})
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrAuthTimeout
	}

	slog.Debug("Device code approved, token issued",
		"expires_at", token.ExpiresAt.Format(time.RFC3339),
	)
	return token, nil
}

// requestCode asks the code endpoint for a fresh device code. A non-success
// status is only warned about: the body is decoded regardless, so a server
// that pairs an error status with a usable grant still works, and one that
// does not fails with a ProtocolError naming what was missing.
func (f *deviceCodeFlow) requestCode(ctx context.Context) (*codeResponse, error) {
	body, status, err := postJSON(ctx, f.httpClient, f.cfg.CodeEndpoint, map[string]string{
		"client_id": f.cfg.ClientID,
	})
	if err != nil {
		return nil, &ProtocolError{Endpoint: f.cfg.CodeEndpoint, Reason: "code request failed", Err: err}
	}
	if !statusSuccess(status) {
		slog.Warn("Device code request returned a non-success status, continuing anyway",
			"endpoint", f.cfg.CodeEndpoint,
			"status", status,
		)
	}

	var code codeResponse
	if err := json.Unmarshal(body, &code); err != nil {
		return nil, &ProtocolError{Endpoint: f.cfg.CodeEndpoint, Reason: "undecodable code response", Err: err}
	}
	if err := code.validate(); err != nil {
		return nil, &ProtocolError{Endpoint: f.cfg.CodeEndpoint, Reason: "incomplete code response", Err: err}
	}
	return &code, nil
}

// pollToken performs one poll attempt against the code token endpoint.
// Any transport failure or non-success status means "user has not approved
// yet" and maps to no result; the server does not distinguish pending from
// denied, so neither can we.
func (f *deviceCodeFlow) pollToken(ctx context.Context, deviceCode string) (*Token, error) {
	body, status, err := postJSON(ctx, f.httpClient, f.cfg.CodeTokenEndpoint, map[string]string{
		"code":          deviceCode,
		"client_id":     f.cfg.ClientID,
		"client_secret": f.cfg.ClientSecret,
	})
	if err != nil {
		slog.Debug("Token poll attempt failed, treating as pending", "error", err.Error())
		return nil, nil
	}
	if !statusSuccess(status) {
		return nil, nil
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ProtocolError{Endpoint: f.cfg.CodeTokenEndpoint, Reason: "undecodable token response", Err: err}
	}
	if resp.AccessToken == "" {
		return nil, nil
	}
	return resp.token(time.Now()), nil
}

// statusSuccess reports whether an HTTP status counts as success for the
// auth endpoints (2xx and 3xx, per the pending-detection contract).
func statusSuccess(status int) bool {
	return status >= 200 && status < 400
}

// postJSON sends a JSON-encoded body and returns the raw response body and
// status. The caller classifies the status; only transport-level failures
// surface as errors.
func postJSON(ctx context.Context, client *http.Client, endpoint string, payload any) ([]byte, int, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
