package auth

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator("test-secret-key-32-chars-min!!!", time.Hour)

	token, err := a.GenerateToken("client-42")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == "" {
		t.Fatal("token should not be empty")
	}

	claims, err := a.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.ClientID != "client-42" {
		t.Errorf("ClientID = %q; want %q", claims.ClientID, "client-42")
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Error("expiry should be within the configured window")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewAuthenticator("secret-a", time.Hour)
	verifier := NewAuthenticator("secret-b", time.Hour)

	token, err := issuer.GenerateToken("client")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator("secret", -time.Hour)
	// Negative expiry falls back to the default, so build a short-lived
	// authenticator explicitly.
	short := &Authenticator{secret: a.secret, expiry: time.Millisecond}
	token, err := short.GenerateToken("client")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := a.ParseToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseToken_Empty(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator("secret", time.Hour)
	if _, err := a.ParseToken(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator("secret", time.Hour)
	if _, err := a.ParseToken("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestNewAuthenticator_DefaultExpiry(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator("secret", 0)
	if a.expiry != DefaultTokenExpiry {
		t.Errorf("expiry = %v; want %v", a.expiry, DefaultTokenExpiry)
	}
}

func TestHashAndVerifyAPIKey(t *testing.T) {
	t.Parallel()

	hash, err := HashAPIKey("super-secret-key")
	if err != nil {
		t.Fatalf("HashAPIKey returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("hash = %q; want bcrypt format", hash)
	}
	if !VerifyAPIKey(hash, "super-secret-key") {
		t.Error("VerifyAPIKey should accept the original key")
	}
	if VerifyAPIKey(hash, "wrong-key") {
		t.Error("VerifyAPIKey should reject a different key")
	}
	if VerifyAPIKey("not-a-hash", "super-secret-key") {
		t.Error("VerifyAPIKey should reject a malformed hash")
	}
}
