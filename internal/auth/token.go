package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// ExpiryMargin is the safety margin applied when checking token validity.
// A token within this margin of its expiry is treated as already expired so
// that a request started now does not ride a credential that dies mid-flight.
const ExpiryMargin = 20 * time.Second

// Token is an access credential issued by the authorization server.
// A Token is never mutated after issue; a refresh or a new flow produces a
// new Token that replaces the previous one.
type Token struct {
	// AccessToken is the opaque bearer credential.
	AccessToken string `json:"access_token"`

	// RefreshToken is the refresh credential, if the server issued one.
	RefreshToken string `json:"refresh_token,omitempty"`

	// TokenType is typically "Bearer".
	TokenType string `json:"token_type,omitempty"`

	// ExpiresAt is the absolute expiry of the access token.
	ExpiresAt time.Time `json:"expires_at"`

	// CreatedAt is when the token was issued to us.
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the token can still be used at the given instant.
// The ExpiryMargin is subtracted from the expiry, so a token is invalid
// from margin seconds before it actually expires.
func (t *Token) Valid(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	if t.ExpiresAt.IsZero() {
		return false
	}
	return now.Add(ExpiryMargin).Before(t.ExpiresAt)
}

// Serialize encodes the token as JSON for the persistence extension point.
func (t *Token) Serialize() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to serialize token: %w", err)
	}
	return string(data), nil
}

// ParseToken decodes a token previously produced by Serialize.
func ParseToken(serialized string) (*Token, error) {
	var t Token
	if err := json.Unmarshal([]byte(serialized), &t); err != nil {
		return nil, fmt.Errorf("failed to parse serialized token: %w", err)
	}
	return &t, nil
}

// tokenFromOAuth2 converts an oauth2.Token obtained from a code exchange
// into our Token representation.
func tokenFromOAuth2(tok *oauth2.Token, now time.Time) *Token {
	return &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresAt:    tok.Expiry,
		CreatedAt:    now,
	}
}

// tokenResponse is the wire shape of a successful token grant.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}

// token converts the wire response into a Token, anchoring the relative
// expires_in at the given issue time.
func (r *tokenResponse) token(now time.Time) *Token {
	return &Token{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TokenType:    r.TokenType,
		ExpiresAt:    now.Add(time.Duration(r.ExpiresIn) * time.Second),
		CreatedAt:    now,
	}
}
