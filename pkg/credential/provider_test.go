package credential_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"schedule-planner/pkg/credential"
)

func newTokenServer(t *testing.T, fail bool, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if fail {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "fresh-token", "token_type": "Bearer", "expires_in": 3600}`))
	}))
}

func oauthConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/auth/google/callback",
		Scopes:       credential.Scopes,
		Endpoint:     oauth2.Endpoint{AuthURL: "https://accounts.example/auth", TokenURL: tokenURL},
	}
}

func TestProvider_NoToken(t *testing.T) {
	p, err := credential.NewProvider(oauthConfig("http://unused"), &credential.MemoryTokenStore{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.State() != credential.StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", p.State())
	}
	if _, err := p.Client(context.Background()); !errors.Is(err, credential.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestProvider_ValidToken(t *testing.T) {
	store := &credential.MemoryTokenStore{Token: &oauth2.Token{
		AccessToken: "valid",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}}
	p, _ := credential.NewProvider(oauthConfig("http://unused"), store)

	if p.State() != credential.StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", p.State())
	}
	tok, err := p.Token(context.Background())
	if err != nil || tok.AccessToken != "valid" {
		t.Fatalf("unexpected token %v err %v", tok, err)
	}
}

func TestProvider_RefreshExpired(t *testing.T) {
	var calls int32
	ts := newTokenServer(t, false, &calls)
	defer ts.Close()

	store := &credential.MemoryTokenStore{Token: &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh-me",
		Expiry:       time.Now().Add(-time.Hour),
	}}
	p, _ := credential.NewProvider(oauthConfig(ts.URL), store)
	p.SetHTTPClient(ts.Client())

	if p.State() != credential.StateExpired {
		t.Fatalf("expected expired, got %s", p.State())
	}

	tok, err := p.Token(context.Background())
	if err != nil {
		t.Fatalf("unexpected refresh error: %v", err)
	}
	if tok.AccessToken != "fresh-token" {
		t.Errorf("expected refreshed token, got %s", tok.AccessToken)
	}
	if p.State() != credential.StateAuthenticated {
		t.Errorf("expected authenticated after refresh, got %s", p.State())
	}
	if store.Token.AccessToken != "fresh-token" {
		t.Errorf("expected refreshed token to be persisted")
	}

	// A second call reuses the refreshed token.
	if _, err := p.Token(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected exactly one refresh call, got %d", calls)
	}
}

func TestProvider_RefreshFails(t *testing.T) {
	var calls int32
	ts := newTokenServer(t, true, &calls)
	defer ts.Close()

	store := &credential.MemoryTokenStore{Token: &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "revoked",
		Expiry:       time.Now().Add(-time.Hour),
	}}
	p, _ := credential.NewProvider(oauthConfig(ts.URL), store)
	p.SetHTTPClient(ts.Client())

	if _, err := p.Client(context.Background()); !errors.Is(err, credential.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if p.State() != credential.StateUnauthenticated {
		t.Errorf("expected unauthenticated after failed refresh, got %s", p.State())
	}
	if _, err := p.Token(context.Background()); !errors.Is(err, credential.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated on retry, got %v", err)
	}
	if p.State() != credential.StateUnauthenticated {
		t.Errorf("state should stay unauthenticated, got %s", p.State())
	}

	if err := p.SetToken(&oauth2.Token{AccessToken: "fresh", Expiry: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if p.State() != credential.StateAuthenticated {
		t.Errorf("expected authenticated after SetToken, got %s", p.State())
	}
}

type failingSaveStore struct {
	token *oauth2.Token
}

func (s *failingSaveStore) Load() (*oauth2.Token, error) { return s.token, nil }

func (s *failingSaveStore) Save(*oauth2.Token) error { return errors.New("disk full") }

func TestProvider_RefreshSaveFails(t *testing.T) {
	var calls int32
	ts := newTokenServer(t, false, &calls)
	defer ts.Close()

	store := &failingSaveStore{token: &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(-time.Hour),
	}}
	p, err := credential.NewProvider(oauthConfig(ts.URL), store)
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	p.SetHTTPClient(ts.Client())

	_, err = p.Token(context.Background())
	if !errors.Is(err, credential.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("error should carry the store failure: %v", err)
	}
}

func TestProvider_ExpiredWithoutRefreshToken(t *testing.T) {
	store := &credential.MemoryTokenStore{Token: &oauth2.Token{
		AccessToken: "stale",
		Expiry:      time.Now().Add(-time.Hour),
	}}
	p, _ := credential.NewProvider(oauthConfig("http://unused"), store)

	if _, err := p.Token(context.Background()); !errors.Is(err, credential.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestProvider_ExchangeAndAuthURL(t *testing.T) {
	var calls int32
	ts := newTokenServer(t, false, &calls)
	defer ts.Close()

	p, _ := credential.NewProvider(oauthConfig(ts.URL), &credential.MemoryTokenStore{})
	p.SetHTTPClient(ts.Client())

	if !p.CanAuthorize() {
		t.Fatalf("expected provider to support consent flow")
	}
	url, err := p.AuthCodeURL("state-1")
	if err != nil || url == "" {
		t.Fatalf("unexpected auth url %q err %v", url, err)
	}

	if err := p.Exchange(context.Background(), "code-123"); err != nil {
		t.Fatalf("unexpected exchange error: %v", err)
	}
	if p.State() != credential.StateAuthenticated {
		t.Errorf("expected authenticated after exchange, got %s", p.State())
	}
}

func TestNewProviderFromClient(t *testing.T) {
	if _, err := credential.NewProviderFromClient(credential.OAuthClientConfig{}, nil); !errors.Is(err, credential.ErrNoOAuthClient) {
		t.Errorf("expected ErrNoOAuthClient, got %v", err)
	}
	p, err := credential.NewProviderFromClient(credential.OAuthClientConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/cb",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.State() != credential.StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %s", p.State())
	}
}

func TestNewProviderFromCredentialsJSON(t *testing.T) {
	mockCreds := `{
		"installed": {
			"client_id": "test-client-id.apps.googleusercontent.com",
			"project_id": "test-project",
			"auth_uri": "https://accounts.google.com/o/oauth2/auth",
			"token_uri": "https://oauth2.googleapis.com/token",
			"client_secret": "test-secret",
			"redirect_uris": ["http://localhost"]
		}
	}`

	t.Run("Broken JSON", func(t *testing.T) {
		_, err := credential.NewProviderFromCredentialsJSON(context.Background(), []byte(`{"broken":true}`), "", nil)
		if err == nil {
			t.Errorf("expected decoding failure")
		}
	})

	t.Run("Installed App With Stored Token", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		os.WriteFile(path, []byte(`{"access_token": "dummy", "token_type": "Bearer", "expiry": "2030-01-01T00:00:00Z"}`), 0600)

		p, err := credential.NewProviderFromCredentialsJSON(context.Background(), []byte(mockCreds), "", credential.FileTokenStore{Path: path})
		if err != nil {
			t.Fatalf("expected parsing to succeed: %v", err)
		}
		if p.State() != credential.StateAuthenticated {
			t.Errorf("expected authenticated, got %s", p.State())
		}
	})

	t.Run("Installed App Bad Token File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		os.WriteFile(path, []byte(`{"broken": true`), 0600)

		_, err := credential.NewProviderFromCredentialsJSON(context.Background(), []byte(mockCreds), "", credential.FileTokenStore{Path: path})
		if err == nil {
			t.Fatalf("expected parsing to fail on bad token")
		}
	})
}

func TestFileTokenStore(t *testing.T) {
	store := credential.FileTokenStore{Path: filepath.Join(t.TempDir(), "token.json")}

	tok, err := store.Load()
	if err != nil || tok != nil {
		t.Fatalf("expected empty store, got %v %v", tok, err)
	}

	if err := store.Save(&oauth2.Token{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	tok, err = store.Load()
	if err != nil || tok.RefreshToken != "r" {
		t.Fatalf("unexpected loaded token %v err %v", tok, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	client := credential.OAuthClientConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/auth/google/callback"}

	t.Run("missing credentials file falls back to client", func(t *testing.T) {
		p, err := credential.Load(context.Background(), credential.LoadOptions{
			CredentialsPath: filepath.Join(dir, "missing.json"),
			TokenPath:       filepath.Join(dir, "token.json"),
			Client:          client,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !p.CanAuthorize() || p.State() != credential.StateUnauthenticated {
			t.Errorf("unexpected provider: authorize=%v state=%v", p.CanAuthorize(), p.State())
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := credential.Load(context.Background(), credential.LoadOptions{TokenPath: filepath.Join(dir, "token.json")})
		if !errors.Is(err, credential.ErrNoOAuthClient) {
			t.Fatalf("expected ErrNoOAuthClient, got %v", err)
		}
	})

	t.Run("credentials file wins", func(t *testing.T) {
		path := filepath.Join(dir, "credentials.json")
		data := `{"installed":{"client_id":"file-id","client_secret":"file-secret","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`
		if err := os.WriteFile(path, []byte(data), 0600); err != nil {
			t.Fatal(err)
		}

		p, err := credential.Load(context.Background(), credential.LoadOptions{
			CredentialsPath: path,
			TokenPath:       filepath.Join(dir, "token.json"),
			Client:          client,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		url, err := p.AuthCodeURL("s")
		if err != nil || !strings.Contains(url, "client_id=file-id") {
			t.Errorf("expected file client in auth url, got %q err %v", url, err)
		}
	})
}
