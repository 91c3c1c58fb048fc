package credential

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Provider owns the backend credential. Only Provider mutates the token, under mu,
// and an expired token is fully refreshed (or fails) before any client is handed out.
type Provider struct {
	mu sync.Mutex

	oauthConfig *oauth2.Config
	store       TokenStore
	token       *oauth2.Token
	state       State

	// refreshFailed pins the state to unauthenticated until a new token is installed.
	refreshFailed bool

	// serviceAccount is set when the credentials file is a service account key.
	serviceAccount oauth2.TokenSource

	// httpClient is used for token endpoint calls; nil means http.DefaultClient.
	httpClient *http.Client
}

// NewProvider creates a provider for an installed/web OAuth client and loads any stored token.
func NewProvider(cfg *oauth2.Config, store TokenStore) (*Provider, error) {
	p := &Provider{oauthConfig: cfg, store: store}

	if store != nil {
		tok, err := store.Load()
		if err != nil {
			return nil, err
		}
		p.token = tok
	}
	p.state = p.observedState()

	return p, nil
}

// NewProviderFromClient builds the OAuth config from a client id/secret pair.
func NewProviderFromClient(client OAuthClientConfig, store TokenStore) (*Provider, error) {
	if client.ClientID == "" || client.ClientSecret == "" {
		return nil, ErrNoOAuthClient
	}
	return NewProvider(&oauth2.Config{
		ClientID:     client.ClientID,
		ClientSecret: client.ClientSecret,
		RedirectURL:  client.RedirectURL,
		Scopes:       Scopes,
		Endpoint:     google.Endpoint,
	}, store)
}

// NewProviderFromCredentialsJSON accepts a service account key or an OAuth client file.
func NewProviderFromCredentialsJSON(ctx context.Context, data []byte, redirectURL string, store TokenStore) (*Provider, error) {
	// Try service account first
	if jwtConfig, err := google.JWTConfigFromJSON(data, Scopes...); err == nil {
		return &Provider{
			serviceAccount: jwtConfig.TokenSource(ctx),
			state:          StateAuthenticated,
		}, nil
	}

	oauthConfig, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}
	if redirectURL != "" {
		oauthConfig.RedirectURL = redirectURL
	}

	return NewProvider(oauthConfig, store)
}

// LoadOptions locates the credential on disk.
type LoadOptions struct {
	CredentialsPath string // service account key or OAuth client file; optional
	TokenPath       string
	Client          OAuthClientConfig // used when CredentialsPath does not exist
}

// Load prefers the credentials file and falls back to a client id/secret pair.
func Load(ctx context.Context, opts LoadOptions) (*Provider, error) {
	store := FileTokenStore{Path: opts.TokenPath}

	if opts.CredentialsPath != "" {
		data, err := os.ReadFile(opts.CredentialsPath)
		if err == nil {
			return NewProviderFromCredentialsJSON(ctx, data, opts.Client.RedirectURL, store)
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
	}

	return NewProviderFromClient(opts.Client, store)
}

// SetHTTPClient overrides the client used to talk to the token endpoint.
func (p *Provider) SetHTTPClient(c *http.Client) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.httpClient = c
}

// State reports the current lifecycle state.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateRefreshing {
		return p.state
	}
	return p.observedState()
}

// CanAuthorize reports whether the consent flow (AuthCodeURL/Exchange) is available.
func (p *Provider) CanAuthorize() bool {
	return p.oauthConfig != nil && p.oauthConfig.RedirectURL != ""
}

// AuthCodeURL returns the consent page URL.
func (p *Provider) AuthCodeURL(state string) (string, error) {
	if p.oauthConfig == nil {
		return "", ErrNoOAuthClient
	}
	return p.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Exchange trades an authorization code for a token and stores it.
func (p *Provider) Exchange(ctx context.Context, code string) error {
	if p.oauthConfig == nil {
		return ErrNoOAuthClient
	}

	tok, err := p.oauthConfig.Exchange(p.tokenContext(ctx), code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return p.SetToken(tok)
}

// SetToken installs and persists a freshly acquired token.
func (p *Provider) SetToken(tok *oauth2.Token) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.token = tok
	p.refreshFailed = false
	p.state = p.observedState()
	if p.store != nil {
		if err := p.store.Save(tok); err != nil {
			return err
		}
	}
	return nil
}

// Token returns a valid access token, refreshing an expired one first.
func (p *Provider) Token(ctx context.Context) (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.serviceAccount != nil {
		tok, err := p.serviceAccount.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
		}
		return tok, nil
	}

	if p.token == nil || p.oauthConfig == nil {
		p.state = StateUnauthenticated
		return nil, ErrNotAuthenticated
	}
	if p.token.Valid() {
		p.state = StateAuthenticated
		return p.token, nil
	}
	if p.token.RefreshToken == "" {
		p.state = StateUnauthenticated
		return nil, fmt.Errorf("%w: token expired and cannot be refreshed", ErrNotAuthenticated)
	}

	p.state = StateRefreshing
	refreshed, err := p.oauthConfig.TokenSource(p.tokenContext(ctx), p.token).Token()
	if err != nil {
		p.refreshFailed = true
		p.state = StateUnauthenticated
		return nil, fmt.Errorf("%w: refresh failed: %v", ErrNotAuthenticated, err)
	}

	p.token = refreshed
	p.refreshFailed = false
	p.state = StateAuthenticated
	if p.store != nil {
		if err := p.store.Save(refreshed); err != nil {
			return nil, fmt.Errorf("%w: failed to persist refreshed token: %v", ErrNotAuthenticated, err)
		}
	}
	return refreshed, nil
}

// Client returns an authorized HTTP client, or ErrNotAuthenticated before any call is made.
// A *http.Client stored in ctx under oauth2.HTTPClient is used as the base transport.
func (p *Provider) Client(ctx context.Context) (*http.Client, error) {
	if _, err := p.Token(ctx); err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, providerTokenSource{ctx: context.WithoutCancel(ctx), p: p}), nil
}

// observedState derives the state from the held token. Caller holds mu.
func (p *Provider) observedState() State {
	if p.serviceAccount != nil {
		return StateAuthenticated
	}
	switch {
	case p.token == nil, p.refreshFailed:
		return StateUnauthenticated
	case p.token.Valid():
		return StateAuthenticated
	default:
		return StateExpired
	}
}

func (p *Provider) tokenContext(ctx context.Context) context.Context {
	if p.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}
	return ctx
}

// providerTokenSource routes every token lookup through the provider's single writer.
type providerTokenSource struct {
	ctx context.Context
	p   *Provider
}

func (s providerTokenSource) Token() (*oauth2.Token, error) {
	return s.p.Token(s.ctx)
}
