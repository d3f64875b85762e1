package auth

// FlowKind identifies which authentication flow a Config selects.
type FlowKind int

const (
	// FlowDeviceCode is the OAuth2 device-code flow: the user enters a short
	// code at a verification URL while we poll for consent.
	FlowDeviceCode FlowKind = iota

	// FlowRelayBrowser is the relay-mediated authorization-code flow: a
	// third-party relay service hosts the redirect URI we cannot.
	FlowRelayBrowser
)

// String returns the flow name for logging.
func (k FlowKind) String() string {
	switch k {
	case FlowDeviceCode:
		return "device_code"
	case FlowRelayBrowser:
		return "relay_browser"
	default:
		return "unknown"
	}
}

// Config is the resolved set of endpoints and credentials for one
// authentication attempt. It is supplied by the caller and is read-only to
// this package: a new token is handed out through the saver callback and
// return values, never written back into the Config.
type Config struct {
	// ClientID and ClientSecret identify the registered application.
	ClientID     string `yaml:"clientID"`
	ClientSecret string `yaml:"clientSecret"`

	// AuthorizationEndpoint and TokenEndpoint drive the relay browser flow.
	AuthorizationEndpoint string `yaml:"authorizationEndpoint,omitempty"`
	TokenEndpoint         string `yaml:"tokenEndpoint,omitempty"`

	// CodeEndpoint and CodeTokenEndpoint drive the device-code flow.
	// Presence of CodeEndpoint alone decides the flow.
	CodeEndpoint      string `yaml:"codeEndpoint,omitempty"`
	CodeTokenEndpoint string `yaml:"codeTokenEndpoint,omitempty"`

	// RelayHost is the base URL of the relay service for the browser flow.
	RelayHost string `yaml:"relayHost,omitempty"`

	// Email and Service identify the relay session registration.
	Email   string `yaml:"email,omitempty"`
	Service string `yaml:"service,omitempty"`

	// SerializedToken is a previously persisted token, if the caller loaded
	// one. A still-valid token here short-circuits the network flows.
	SerializedToken string `yaml:"-"`
}

// FlowKind selects the authentication flow. The branch is decided solely by
// the presence of CodeEndpoint; the engine never attempts both flows.
func (c Config) FlowKind() FlowKind {
	if c.CodeEndpoint != "" {
		return FlowDeviceCode
	}
	return FlowRelayBrowser
}

// HasCredentials reports whether the client credentials required by every
// flow are present.
func (c Config) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
