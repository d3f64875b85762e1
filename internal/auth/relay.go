package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	// relayPollInterval is the fixed wait between polls of the relay's
	// code endpoint.
	relayPollInterval = 1 * time.Second

	// relayPollDeadline bounds how long we wait for the user to complete
	// the browser redirect at the relay.
	relayPollDeadline = 600 * time.Second
)

// relayCodeResponse is the relay's answer once the user completed the
// redirect: the authorization code captured at the callback URL.
type relayCodeResponse struct {
	Code string `json:"code"`
}

// relayBrowserFlow obtains a token via a relay service that hosts the
// OAuth2 redirect URI on our behalf: register a session, send the user
// through the standard authorization URL, poll the relay for the code the
// callback captured, then exchange it at the token endpoint.
type relayBrowserFlow struct {
	cfg        Config
	httpClient *http.Client
	prompt     PromptFunc
}

// Run drives the flow to completion. Any failure that is not "code not
// there yet" aborts the whole attempt; there is no retry across steps.
func (f *relayBrowserFlow) Run(ctx context.Context) (*Token, error) {
	sessionID, err := f.registerSession(ctx)
	if err != nil {
		return nil, err
	}

	oc := &oauth2.Config{
		ClientID:     f.cfg.ClientID,
		ClientSecret: f.cfg.ClientSecret,
		RedirectURL:  f.relayURL("/callback/" + sessionID),
		Endpoint: oauth2.Endpoint{
			AuthURL:  f.cfg.AuthorizationEndpoint,
			TokenURL: f.cfg.TokenEndpoint,
		},
	}

	state := uuid.NewString()
	f.prompt(fmt.Sprintf("Open %s in a browser and approve access.", oc.AuthCodeURL(state)))

	slog.Debug("Waiting for authorization code at relay",
		"relay_host", f.cfg.RelayHost,
		"session_id", sessionID,
	)

	code, err := Poll(ctx, relayPollInterval, relayPollDeadline, func(ctx context.Context) (*relayCodeResponse, error) {
		return f.pollCode(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, ErrAuthTimeout
	}

	return f.exchange(ctx, oc, code.Code)
}

// registerSession creates a relay session and returns its id. The relay
// answers with the id as a bare numeric body; anything else is fatal.
func (f *relayBrowserFlow) registerSession(ctx context.Context) (string, error) {
	body, status, err := postJSON(ctx, f.httpClient, f.relayURL("/new"), map[string]string{
		"email":   f.cfg.Email,
		"service": f.cfg.Service,
	})
	if err != nil {
		return "", &RelaySetupError{RelayHost: f.cfg.RelayHost, Reason: "session registration failed", Err: err}
	}
	if !statusSuccess(status) {
		return "", &RelaySetupError{
			RelayHost: f.cfg.RelayHost,
			Reason:    fmt.Sprintf("session registration returned status %d", status),
		}
	}

	id := strings.TrimSpace(string(body))
	if _, err := strconv.Atoi(id); err != nil {
		return "", &RelaySetupError{RelayHost: f.cfg.RelayHost, Reason: fmt.Sprintf("non-numeric session id %q", id)}
	}
	return id, nil
}

// pollCode performs one poll of the relay's code endpoint. A non-success
// status means the user has not finished the redirect yet.
func (f *relayBrowserFlow) pollCode(ctx context.Context, sessionID string) (*relayCodeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.relayURL("/get/"+sessionID), nil)
	if err != nil {
		return nil, &RelaySetupError{RelayHost: f.cfg.RelayHost, Reason: "failed to build poll request", Err: err}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		slog.Debug("Relay poll attempt failed, treating as pending", "error", err.Error())
		return nil, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if !statusSuccess(resp.StatusCode) {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil
	}

	var code relayCodeResponse
	if err := json.Unmarshal(body, &code); err != nil {
		return nil, &ProtocolError{Endpoint: f.relayURL("/get/" + sessionID), Reason: "undecodable relay response", Err: err}
	}
	if code.Code == "" {
		return nil, nil
	}
	return &code, nil
}

// exchange trades the authorization code for tokens at the token endpoint
// using the standard authorization-code grant.
func (f *relayBrowserFlow) exchange(ctx context.Context, oc *oauth2.Config, code string) (*Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, f.httpClient)

	tok, err := oc.Exchange(ctx, code)
	if err != nil {
		return nil, &ProtocolError{Endpoint: f.cfg.TokenEndpoint, Reason: "code exchange failed", Err: err}
	}

	slog.Debug("Authorization code exchanged",
		"expires_at", tok.Expiry.Format(time.RFC3339),
		"has_refresh_token", tok.RefreshToken != "",
	)
	return tokenFromOAuth2(tok, time.Now()), nil
}

// relayURL resolves a path against the relay host.
func (f *relayBrowserFlow) relayURL(path string) string {
	return strings.TrimSuffix(f.cfg.RelayHost, "/") + path
}
