package auth

import "testing"

func TestConfig_FlowKind(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want FlowKind
	}{
		{
			name: "code endpoint selects device flow",
			cfg:  Config{CodeEndpoint: "https://api.example.com/oauth/device/code"},
			want: FlowDeviceCode,
		},
		{
			name: "no code endpoint selects relay flow",
			cfg:  Config{AuthorizationEndpoint: "https://example.com/auth", TokenEndpoint: "https://example.com/token"},
			want: FlowRelayBrowser,
		},
		{
			name: "code endpoint wins even with relay fields present",
			cfg: Config{
				CodeEndpoint:          "https://api.example.com/oauth/device/code",
				AuthorizationEndpoint: "https://example.com/auth",
				TokenEndpoint:         "https://example.com/token",
				RelayHost:             "https://relay.example.com",
			},
			want: FlowDeviceCode,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.FlowKind(); got != tc.want {
				t.Errorf("FlowKind() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestConfig_HasCredentials(t *testing.T) {
	if (Config{ClientID: "id"}).HasCredentials() {
		t.Error("Expected missing secret to fail the credentials check")
	}
	if (Config{ClientSecret: "secret"}).HasCredentials() {
		t.Error("Expected missing id to fail the credentials check")
	}
	if !(Config{ClientID: "id", ClientSecret: "secret"}).HasCredentials() {
		t.Error("Expected complete credentials to pass the check")
	}
}
