package auth

import (
	"testing"
	"time"
)

func TestToken_Valid(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token *Token
		want  bool
	}{
		{
			name:  "well before expiry",
			token: &Token{AccessToken: "tok", ExpiresAt: now.Add(1 * time.Hour)},
			want:  true,
		},
		{
			name:  "exactly at expiry minus margin",
			token: &Token{AccessToken: "tok", ExpiresAt: now.Add(ExpiryMargin)},
			want:  false,
		},
		{
			name:  "just inside the margin",
			token: &Token{AccessToken: "tok", ExpiresAt: now.Add(ExpiryMargin + time.Second)},
			want:  true,
		},
		{
			name:  "already expired",
			token: &Token{AccessToken: "tok", ExpiresAt: now.Add(-1 * time.Minute)},
			want:  false,
		},
		{
			name:  "zero expiry",
			token: &Token{AccessToken: "tok"},
			want:  false,
		},
		{
			name:  "nil token",
			token: nil,
			want:  false,
		},
		{
			name:  "no access value",
			token: &Token{ExpiresAt: now.Add(1 * time.Hour)},
			want:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.token.Valid(now); got != tc.want {
				t.Errorf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestToken_SerializeRoundTrip(t *testing.T) {
	original := &Token{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(1 * time.Hour).Truncate(time.Second),
		CreatedAt:    time.Now().Truncate(time.Second),
	}

	serialized, err := original.Serialize()
	if err != nil {
		t.Fatalf("Serialize() failed: %v", err)
	}

	parsed, err := ParseToken(serialized)
	if err != nil {
		t.Fatalf("ParseToken() failed: %v", err)
	}

	if parsed.AccessToken != original.AccessToken {
		t.Errorf("Expected access token %q, got %q", original.AccessToken, parsed.AccessToken)
	}
	if parsed.RefreshToken != original.RefreshToken {
		t.Errorf("Expected refresh token %q, got %q", original.RefreshToken, parsed.RefreshToken)
	}
	if !parsed.ExpiresAt.Equal(original.ExpiresAt) {
		t.Errorf("Expected expiry %v, got %v", original.ExpiresAt, parsed.ExpiresAt)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("not json"); err == nil {
		t.Error("Expected error for garbage input")
	}
}

func TestTokenResponse_AnchorsRelativeExpiry(t *testing.T) {
	now := time.Now()
	resp := &tokenResponse{
		AccessToken: "tok",
		ExpiresIn:   3600,
	}

	token := resp.token(now)
	want := now.Add(3600 * time.Second)
	if !token.ExpiresAt.Equal(want) {
		t.Errorf("Expected expiry %v, got %v", want, token.ExpiresAt)
	}
	if !token.Valid(now) {
		t.Error("Expected freshly issued token to be valid")
	}
}
