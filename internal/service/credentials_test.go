package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeToken(t *testing.T, st storedToken) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token.json")
	raw, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenMissingFile(t *testing.T) {
	p := NewFileCredentialProvider(filepath.Join(t.TempDir(), "token.json"))

	_, err := p.Token(context.Background())
	if !errors.Is(err, ErrTokenMissing) {
		t.Errorf("err = %v, want ErrTokenMissing", err)
	}
	if _, err := p.HTTPClient(context.Background()); !errors.Is(err, ErrTokenMissing) {
		t.Errorf("client err = %v, want ErrTokenMissing", err)
	}
}

func TestTokenExpiredWithoutRefresh(t *testing.T) {
	path := writeToken(t, storedToken{
		Token:    "stale-access-token",
		ClientID: "client",
		Expiry:   time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	p := NewFileCredentialProvider(path)

	_, err := p.Token(context.Background())
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestTokenStillValid(t *testing.T) {
	path := writeToken(t, storedToken{
		Token:        "live-access-token",
		RefreshToken: "refresh",
		ClientID:     "client",
		Expiry:       time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	p := NewFileCredentialProvider(path)

	tok, err := p.Token(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if tok.AccessToken != "live-access-token" {
		t.Errorf("access token = %q", tok.AccessToken)
	}
}

func TestInvalidate(t *testing.T) {
	path := writeToken(t, storedToken{
		Token:  "live",
		Expiry: time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	p := NewFileCredentialProvider(path)

	if err := p.Invalidate(); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Token(context.Background()); !errors.Is(err, ErrTokenMissing) {
		t.Errorf("err after invalidate = %v, want ErrTokenMissing", err)
	}
	// Invalidating twice is fine.
	if err := p.Invalidate(); err != nil {
		t.Errorf("second invalidate: %v", err)
	}
}

func TestTokenFileUnparseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	p := NewFileCredentialProvider(path)

	_, err := p.Token(context.Background())
	if err == nil || errors.Is(err, ErrTokenMissing) {
		t.Errorf("err = %v, want parse failure", err)
	}
}
