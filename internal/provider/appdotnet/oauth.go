package appdotnet

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/lu-zhengda/termlanes/internal/store"
)

// Endpoint is App.net's OAuth2 endpoint.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://account.app.net/oauth/authenticate",
	TokenURL: "https://account.app.net/oauth/access_token",
}

// No credentials are embedded in the binary. Users must supply their own
// App.net client credentials via one of:
//   - Config file (~/.config/termlanes/config.toml) under [appdotnet]
//   - Environment variables ADN_CLIENT_ID and ADN_CLIENT_SECRET

// OAuthConfig holds the App.net client credentials.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	Endpoint     oauth2.Endpoint
}

// EnsureCredentials returns an error with setup instructions when cfg has no
// client credentials.
func EnsureCredentials(cfg OAuthConfig) error {
	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		return nil
	}
	return fmt.Errorf("app.net OAuth credentials not configured; set them in ~/.config/termlanes/config.toml under [appdotnet] or via ADN_CLIENT_ID / ADN_CLIENT_SECRET env vars")
}

// Authenticate runs the OAuth2 authorization-code flow through a loopback
// redirect and returns the access token. announce receives the URL the user
// must open.
func Authenticate(ctx context.Context, cfg OAuthConfig, announce func(authURL string)) (store.Credentials, error) {
	if err := EnsureCredentials(cfg); err != nil {
		return store.Credentials{}, err
	}
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" {
		endpoint = Endpoint
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return store.Credentials{}, fmt.Errorf("failed to start callback server: %w", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  fmt.Sprintf("http://127.0.0.1:%d", port),
		Scopes:       []string{"basic", "stream", "write_post", "follow", "messages"},
	}

	state := uuid.NewString()
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			errCh <- fmt.Errorf("oauth state mismatch")
			fmt.Fprint(w, "Authentication failed. You can close this tab.")
			return
		}
		code := q.Get("code")
		if code == "" {
			errCh <- fmt.Errorf("no code in callback: %s", q.Get("error"))
			fmt.Fprint(w, "Authentication failed. You can close this tab.")
			return
		}
		codeCh <- code
		fmt.Fprint(w, "Authentication successful! You can close this tab.")
	})

	server := &http.Server{Handler: mux}
	go server.Serve(listener)
	defer server.Shutdown(context.Background())

	announce(oc.AuthCodeURL(state))

	select {
	case code := <-codeCh:
		token, err := oc.Exchange(ctx, code)
		if err != nil {
			return store.Credentials{}, fmt.Errorf("failed to exchange auth code: %w", err)
		}
		return store.Credentials{Token: token.AccessToken}, nil
	case err := <-errCh:
		return store.Credentials{}, err
	case <-ctx.Done():
		return store.Credentials{}, ctx.Err()
	}
}
