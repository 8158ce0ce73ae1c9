package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Credential failures are typed so callers can tell a missing token file from
// one that needs the user to reconnect.
var (
	ErrTokenMissing = errors.New("oauth token file missing")
	ErrTokenExpired = errors.New("oauth token expired and no refresh token available")
	ErrTokenRevoked = errors.New("oauth token revoked")
)

type storedToken struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	TokenURI     string   `json:"token_uri"`
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	Scopes       []string `json:"scopes"`
	Expiry       string   `json:"expiry"`
}

// FileCredentialProvider loads an OAuth token from a JSON file, hands out
// auto-refreshing HTTP clients, and persists refreshed tokens back to disk.
type FileCredentialProvider struct {
	path string

	mu sync.Mutex
}

func NewFileCredentialProvider(path string) *FileCredentialProvider {
	return &FileCredentialProvider{path: path}
}

func (p *FileCredentialProvider) load() (*oauth2.Config, *oauth2.Token, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrTokenMissing
		}
		return nil, nil, fmt.Errorf("read token file: %w", err)
	}

	var st storedToken
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, nil, fmt.Errorf("parse token file: %w", err)
	}

	conf := &oauth2.Config{
		ClientID:     st.ClientID,
		ClientSecret: st.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       st.Scopes,
	}
	tok := &oauth2.Token{
		AccessToken:  st.Token,
		RefreshToken: st.RefreshToken,
	}
	if st.Expiry != "" {
		if exp, err := time.Parse(time.RFC3339, st.Expiry); err == nil {
			tok.Expiry = exp
		}
	}

	if !tok.Valid() && tok.RefreshToken == "" {
		return nil, nil, ErrTokenExpired
	}
	return conf, tok, nil
}

// HTTPClient returns an authenticated client. Refresh happens lazily inside
// the returned client; a rejected refresh surfaces as ErrTokenRevoked from
// Token.
func (p *FileCredentialProvider) HTTPClient(ctx context.Context) (*http.Client, error) {
	conf, tok, err := p.load()
	if err != nil {
		return nil, err
	}
	src := oauth2.ReuseTokenSource(tok, &persistingSource{
		provider: p,
		inner:    conf.TokenSource(ctx, tok),
	})
	return oauth2.NewClient(ctx, src), nil
}

// Token forces a load-and-refresh cycle and reports typed failures.
func (p *FileCredentialProvider) Token(ctx context.Context) (*oauth2.Token, error) {
	conf, tok, err := p.load()
	if err != nil {
		return nil, err
	}
	if tok.Valid() {
		return tok, nil
	}

	fresh, err := conf.TokenSource(ctx, tok).Token()
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil &&
			(re.Response.StatusCode == http.StatusBadRequest || re.Response.StatusCode == http.StatusUnauthorized) {
			return nil, ErrTokenRevoked
		}
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	p.persist(conf, fresh)
	return fresh, nil
}

// Invalidate removes the stored token, forcing the user through the consent
// flow again. Used when Drive reports the grant revoked.
func (p *FileCredentialProvider) Invalidate() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

func (p *FileCredentialProvider) persist(conf *oauth2.Config, tok *oauth2.Token) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := storedToken{
		Token:        tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenURI:     conf.Endpoint.TokenURL,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		Scopes:       conf.Scopes,
	}
	if !tok.Expiry.IsZero() {
		st.Expiry = tok.Expiry.Format(time.RFC3339)
	}
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(p.path, raw, 0o600)
}

// persistingSource writes refreshed tokens back to the token file so the next
// process start does not need a fresh consent.
type persistingSource struct {
	provider *FileCredentialProvider
	inner    oauth2.TokenSource
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.inner.Token()
	if err != nil {
		return nil, err
	}
	conf, _, loadErr := s.provider.load()
	if loadErr == nil {
		s.provider.persist(conf, tok)
	}
	return tok, nil
}
