package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultHTTPTimeout is the default timeout for auth endpoint requests.
const DefaultHTTPTimeout = 30 * time.Second

// PromptFunc delivers a human-actionable instruction to the user. It is
// display-only; the engine never interprets anything about its outcome.
type PromptFunc func(message string)

// SaveFunc persists a newly issued token in serialized form. It is invoked
// once per token; loading the value back is the caller's job via
// Config.SerializedToken.
type SaveFunc func(serialized string) error

// Session is the runtime association of a Config with its current Token.
// One Session belongs to one logical user; concurrent use from multiple
// callers must be serialized by the caller.
type Session struct {
	token *Token
}

// Token returns the session's access credential.
func (s *Session) Token() *Token {
	return s.token
}

// BearerToken returns the token formatted as an Authorization header value.
func (s *Session) BearerToken() string {
	return "Bearer " + s.token.AccessToken
}

// ManagerConfig configures a session manager.
type ManagerConfig struct {
	// Config is the resolved auth configuration. It is never mutated.
	Config Config

	// Prompt delivers flow instructions to the user. Optional; a nil
	// prompt drops instructions, which only makes sense in tests.
	Prompt PromptFunc

	// Save persists newly issued tokens. Optional.
	Save SaveFunc

	// HTTPClient overrides the transport used against auth endpoints.
	HTTPClient *http.Client
}

// Manager is the top-level authentication entry point. It reuses a
// still-valid token when one exists, and otherwise dispatches to the flow
// the Config selects. Concurrent Authenticate calls are coalesced into a
// single flow so two callers can never race different tokens into the same
// persistence target.
type Manager struct {
	mu         sync.RWMutex
	cfg        Config
	prompt     PromptFunc
	save       SaveFunc
	httpClient *http.Client
	session    *Session
	group      singleflight.Group
}

// NewManager creates a session manager for the given configuration.
func NewManager(cfg ManagerConfig) *Manager {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	prompt := cfg.Prompt
	if prompt == nil {
		prompt = func(string) {}
	}
	return &Manager{
		cfg:        cfg.Config,
		prompt:     prompt,
		save:       cfg.Save,
		httpClient: httpClient,
	}
}

// Authenticate returns a Session holding a valid token, running an auth
// flow only when no valid token is already at hand. Within one process it
// is idempotent: while the token remains valid, repeated calls return the
// same Session without any network traffic.
//
// Missing client credentials fail with ErrMissingCredentials before any
// request is made; best-effort call sites may tolerate that and proceed
// unauthenticated.
func (m *Manager) Authenticate(ctx context.Context) (*Session, error) {
	if !m.cfg.HasCredentials() {
		return nil, ErrMissingCredentials
	}

	now := time.Now()
	m.mu.RLock()
	if m.session != nil && m.session.token.Valid(now) {
		session := m.session
		m.mu.RUnlock()
		return session, nil
	}
	m.mu.RUnlock()

	// Coalesce concurrent attempts: the second caller waits for the
	// first flow instead of starting its own. The flow runs under the
	// winning caller's ctx.
	result, err, _ := m.group.Do("authenticate", func() (any, error) {
		return m.establishSession(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Session), nil
}

// establishSession produces a Session from, in order of preference: the
// session cached by a flow that won the singleflight race, the caller's
// previously serialized token, or a fresh flow run.
func (m *Manager) establishSession(ctx context.Context) (*Session, error) {
	now := time.Now()

	m.mu.RLock()
	if m.session != nil && m.session.token.Valid(now) {
		session := m.session
		m.mu.RUnlock()
		return session, nil
	}
	m.mu.RUnlock()

	if m.cfg.SerializedToken != "" {
		if token, err := ParseToken(m.cfg.SerializedToken); err == nil && token.Valid(now) {
			slog.Debug("Reusing persisted token",
				"expires_at", token.ExpiresAt.Format(time.RFC3339),
			)
			return m.adopt(token), nil
		}
	}

	token, err := m.runFlow(ctx)
	if err != nil {
		return nil, err
	}

	if m.save != nil {
		serialized, err := token.Serialize()
		if err != nil {
			return nil, err
		}
		if err := m.save(serialized); err != nil {
			return nil, fmt.Errorf("failed to persist token: %w", err)
		}
	}

	return m.adopt(token), nil
}

// runFlow dispatches to the flow the Config selects. The branch is decided
// once, by FlowKind; the engine never falls back to the other flow.
func (m *Manager) runFlow(ctx context.Context) (*Token, error) {
	kind := m.cfg.FlowKind()
	slog.Debug("Starting authentication flow", "flow", kind.String())

	switch kind {
	case FlowDeviceCode:
		flow := &deviceCodeFlow{cfg: m.cfg, httpClient: m.httpClient, prompt: m.prompt}
		return flow.Run(ctx)
	default:
		flow := &relayBrowserFlow{cfg: m.cfg, httpClient: m.httpClient, prompt: m.prompt}
		return flow.Run(ctx)
	}
}

// adopt installs a token as the manager's current session. The new Token
// replaces, never extends, the previous one.
func (m *Manager) adopt(token *Token) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &Session{token: token}
	return m.session
}
