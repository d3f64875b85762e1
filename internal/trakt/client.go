package trakt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"traktsync/internal/auth"
)

// DefaultBaseURL is the API base all resource paths resolve against.
const DefaultBaseURL = "https://api.trakt.tv"

// apiVersion is the value of the trakt-api-version header.
const apiVersion = "2"

// DefaultRetryMax bounds how often a 502 is retried before it is given up
// on. Anything beyond the cap surfaces as a RequestFailedError.
const DefaultRetryMax = 3

// retryWait is the pause between 502 retries.
const retryWait = 1 * time.Second

// Method is the closed set of HTTP methods the client issues.
type Method int

const (
	MethodGet Method = iota
	MethodPost
)

// String returns the HTTP verb.
func (m Method) String() string {
	if m == MethodPost {
		return http.MethodPost
	}
	return http.MethodGet
}

// Authenticator supplies a valid session before each request. It is
// expected to be cheap when a valid token is already at hand.
type Authenticator interface {
	Authenticate(ctx context.Context) (*auth.Session, error)
}

// ClientConfig configures an API client.
type ClientConfig struct {
	// BaseURL overrides the API base. Defaults to DefaultBaseURL.
	BaseURL string

	// APIKey is the value of the trakt-api-key header (the client id).
	APIKey string

	// Auth supplies the session for the Authorization header.
	Auth Authenticator

	// HTTPClient overrides the underlying transport.
	HTTPClient *http.Client

	// RetryMax overrides the 502 retry cap. Defaults to DefaultRetryMax.
	RetryMax int
}

// Client is the outbound request envelope every API call rides on: it
// authenticates before each call, injects the fixed headers, retries
// transient upstream failures, and classifies everything else into typed
// errors.
type Client struct {
	baseURL string
	apiKey  string
	authn   Authenticator
	retry   *retryablehttp.Client
}

// NewClient creates an API client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	retryMax := cfg.RetryMax
	if retryMax <= 0 {
		retryMax = DefaultRetryMax
	}

	retry := retryablehttp.NewClient()
	retry.RetryMax = retryMax
	retry.Logger = nil
	retry.CheckRetry = checkRetry
	retry.Backoff = constantBackoff
	// Hand the final response back once retries run out so a persistent
	// 502 is classified like any other terminal status.
	retry.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if cfg.HTTPClient != nil {
		retry.HTTPClient = cfg.HTTPClient
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  cfg.APIKey,
		authn:   cfg.Auth,
		retry:   retry,
	}
}

// checkRetry retries only upstream 502s; every other status and every
// transport error is classified by the caller instead.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return false, err
	}
	return resp != nil && resp.StatusCode == http.StatusBadGateway, nil
}

// constantBackoff waits the fixed transient-retry pause regardless of the
// attempt number.
func constantBackoff(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return retryWait
}

// Get issues an authenticated GET and returns the decoded JSON body.
// A 404 yields an empty JSON object: for this API, absence is a valid
// "no data" answer, not an error.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	body, status, err := c.do(ctx, MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		return json.RawMessage("{}"), nil
	}
	if !isSuccess(status) {
		return nil, &RequestFailedError{Method: MethodGet.String(), Path: path, Status: status, Body: string(body)}
	}
	if !json.Valid(body) {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("response is not valid JSON")}
	}
	return json.RawMessage(body), nil
}

// GetInto issues an authenticated GET and unmarshals the result into out.
// On 404, out is left at its zero value and no error is returned.
func (c *Client) GetInto(ctx context.Context, path string, out any) error {
	raw, err := c.Get(ctx, path)
	if err != nil {
		return err
	}
	if string(raw) == "{}" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

// Post issues an authenticated POST with a JSON-encoded body and reports
// success rather than returning a payload. A 404 reports false without an
// error, matching the GET no-data semantics.
func (c *Client) Post(ctx context.Context, path string, payload any) (bool, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("failed to encode request body: %w", err)
	}

	body, status, err := c.do(ctx, MethodPost, path, encoded)
	if err != nil {
		return false, err
	}

	if status == http.StatusNotFound {
		return false, nil
	}
	if !isSuccess(status) {
		return false, &RequestFailedError{Method: MethodPost.String(), Path: path, Status: status, Body: string(body)}
	}
	return true, nil
}

// do authenticates, builds the request with the fixed header set, and
// dispatches it through the retrying transport. It returns the raw body
// and status; classification is the caller's job.
func (c *Client) do(ctx context.Context, method Method, path string, payload []byte) ([]byte, int, error) {
	session, err := c.authn.Authenticate(ctx)
	if err != nil {
		return nil, 0, err
	}

	url := c.baseURL + path

	var req *retryablehttp.Request
	switch method {
	case MethodPost:
		req, err = retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	default:
		req, err = retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("trakt-api-version", apiVersion)
	req.Header.Set("trakt-api-key", c.apiKey)
	req.Header.Set("Authorization", session.BearerToken())

	resp, err := c.retry.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// isSuccess reports whether a status is in the 2xx range.
func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
