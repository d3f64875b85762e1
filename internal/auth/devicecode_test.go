package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deviceCodeServer fakes the code and token-poll endpoints. pendingPolls
// is how many poll attempts answer 400 before the token is issued.
func deviceCodeServer(t *testing.T, code codeResponse, pendingPolls int32, token tokenResponse) (*httptest.Server, *int32) {
	t.Helper()

	var polls int32
	mux := http.NewServeMux()

	mux.HandleFunc("/oauth/device/code", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "client-1", body["client_id"])

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(code))
	})

	mux.HandleFunc("/oauth/device/token", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, code.DeviceCode, body["code"])
		assert.Equal(t, "client-1", body["client_id"])
		assert.Equal(t, "secret-1", body["client_secret"])

		if atomic.AddInt32(&polls, 1) <= pendingPolls {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(token))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &polls
}

func TestDeviceCodeFlow_EndToEnd(t *testing.T) {
	server, polls := deviceCodeServer(t, codeResponse{
		DeviceCode:      "d1",
		UserCode:        "ABCD",
		VerificationURL: "https://x/verify",
		Interval:        1,
		ExpiresIn:       5,
	}, 2, tokenResponse{
		AccessToken: "tok123",
		ExpiresIn:   3600,
	})

	var prompts []string
	flow := &deviceCodeFlow{
		cfg: Config{
			ClientID:          "client-1",
			ClientSecret:      "secret-1",
			CodeEndpoint:      server.URL + "/oauth/device/code",
			CodeTokenEndpoint: server.URL + "/oauth/device/token",
		},
		httpClient: server.Client(),
		prompt:     func(message string) { prompts = append(prompts, message) },
	}

	token, err := flow.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok123", token.AccessToken)
	assert.True(t, token.Valid(time.Now()))

	require.Len(t, prompts, 1, "prompt must be delivered exactly once")
	assert.Contains(t, prompts[0], "ABCD")
	assert.Contains(t, prompts[0], "https://x/verify")

	assert.Equal(t, int32(3), atomic.LoadInt32(polls), "token issued on the third poll")
}

func TestDeviceCodeFlow_Timeout(t *testing.T) {
	// The code expires after 2 seconds while every poll stays pending.
	server, _ := deviceCodeServer(t, codeResponse{
		DeviceCode:      "d1",
		UserCode:        "ABCD",
		VerificationURL: "https://x/verify",
		Interval:        1,
		ExpiresIn:       2,
	}, 1000, tokenResponse{})

	flow := &deviceCodeFlow{
		cfg: Config{
			ClientID:          "client-1",
			ClientSecret:      "secret-1",
			CodeEndpoint:      server.URL + "/oauth/device/code",
			CodeTokenEndpoint: server.URL + "/oauth/device/token",
		},
		httpClient: server.Client(),
		prompt:     func(string) {},
	}

	_, err := flow.Run(context.Background())
	assert.ErrorIs(t, err, ErrAuthTimeout)
}

func TestDeviceCodeFlow_MissingFieldIsProtocolError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/device/code", func(w http.ResponseWriter, r *http.Request) {
		// user_code is absent.
		_, _ = w.Write([]byte(`{"device_code":"d1","verification_url":"https://x/verify","interval":1,"expires_in":5}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	flow := &deviceCodeFlow{
		cfg: Config{
			ClientID:          "client-1",
			ClientSecret:      "secret-1",
			CodeEndpoint:      server.URL + "/oauth/device/code",
			CodeTokenEndpoint: server.URL + "/oauth/device/token",
		},
		httpClient: server.Client(),
		prompt:     func(string) {},
	}

	_, err := flow.Run(context.Background())

	var protocolErr *ProtocolError
	require.True(t, errors.As(err, &protocolErr), "expected ProtocolError, got %v", err)
	assert.Contains(t, protocolErr.Error(), "user_code")
}

func TestDeviceCodeFlow_NonSuccessCodeRequestContinues(t *testing.T) {
	// A server that pairs an error status with a complete grant still
	// authenticates: the error status is only warned about.
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/device/code", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"device_code":"d1","user_code":"ABCD","verification_url":"https://x/verify","interval":1,"expires_in":5}`))
	})
	mux.HandleFunc("/oauth/device/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":3600}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	flow := &deviceCodeFlow{
		cfg: Config{
			ClientID:          "client-1",
			ClientSecret:      "secret-1",
			CodeEndpoint:      server.URL + "/oauth/device/code",
			CodeTokenEndpoint: server.URL + "/oauth/device/token",
		},
		httpClient: server.Client(),
		prompt:     func(string) {},
	}

	token, err := flow.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", token.AccessToken)
}

func TestDeviceCodeFlow_PromptNeverStripsCode(t *testing.T) {
	server, _ := deviceCodeServer(t, codeResponse{
		DeviceCode:      "d1",
		UserCode:        "WXYZ-1234",
		VerificationURL: "https://x/verify",
		Interval:        1,
		ExpiresIn:       5,
	}, 0, tokenResponse{AccessToken: "tok", ExpiresIn: 60})

	var prompt string
	flow := &deviceCodeFlow{
		cfg: Config{
			ClientID:          "client-1",
			ClientSecret:      "secret-1",
			CodeEndpoint:      server.URL + "/oauth/device/code",
			CodeTokenEndpoint: server.URL + "/oauth/device/token",
		},
		httpClient: server.Client(),
		prompt:     func(message string) { prompt = message },
	}

	_, err := flow.Run(context.Background())
	require.NoError(t, err)

	if !strings.Contains(prompt, "WXYZ-1234") {
		t.Errorf("Prompt %q does not contain the user code", prompt)
	}
}
