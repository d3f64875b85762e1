package cmd

import (
	"errors"
	"fmt"
	"testing"

	"traktsync/internal/auth"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "missing credentials",
			err:  auth.ErrMissingCredentials,
			want: ExitCodeAuthRequired,
		},
		{
			name: "wrapped missing credentials",
			err:  fmt.Errorf("startup: %w", auth.ErrMissingCredentials),
			want: ExitCodeAuthRequired,
		},
		{
			name: "auth timeout",
			err:  auth.ErrAuthTimeout,
			want: ExitCodeAuthFailed,
		},
		{
			name: "protocol error",
			err:  &auth.ProtocolError{Endpoint: "https://x", Reason: "bad shape"},
			want: ExitCodeAuthFailed,
		},
		{
			name: "relay setup error",
			err:  &auth.RelaySetupError{RelayHost: "https://relay", Reason: "down"},
			want: ExitCodeAuthFailed,
		},
		{
			name: "anything else",
			err:  errors.New("boom"),
			want: ExitCodeError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := getExitCode(tc.err); got != tc.want {
				t.Errorf("getExitCode() = %d, want %d", got, tc.want)
			}
		})
	}
}
