package twitter

import (
	"fmt"

	"github.com/dghubble/oauth1"
	twitterauth "github.com/dghubble/oauth1/twitter"

	"github.com/lu-zhengda/termlanes/internal/store"
)

// Twitter consumer credentials are not embedded in the binary. Users supply
// them via one of:
//   - Config file (~/.config/termlanes/config.toml) under [twitter]
//   - Environment variables TWITTER_CONSUMER_KEY and TWITTER_CONSUMER_SECRET

// EnsureCredentials returns an error with setup instructions when cfg has no
// consumer credentials.
func EnsureCredentials(cfg Config) error {
	if cfg.ConsumerKey != "" && cfg.ConsumerSecret != "" {
		return nil
	}
	return fmt.Errorf("twitter consumer credentials not configured; set them in ~/.config/termlanes/config.toml under [twitter] or via TWITTER_CONSUMER_KEY / TWITTER_CONSUMER_SECRET env vars")
}

// PromptFunc shows the authorization URL to the user and returns the PIN
// Twitter displays after the user approves access.
type PromptFunc func(authURL string) (pin string, err error)

// Authorize runs the PIN-based OAuth1 flow and returns the access token pair.
func Authorize(cfg Config, prompt PromptFunc) (store.Credentials, error) {
	if err := EnsureCredentials(cfg); err != nil {
		return store.Credentials{}, err
	}
	oc := &oauth1.Config{
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
		CallbackURL:    "oob",
		Endpoint:       twitterauth.AuthorizeEndpoint,
	}

	requestToken, requestSecret, err := oc.RequestToken()
	if err != nil {
		return store.Credentials{}, fmt.Errorf("failed to get request token: %w", err)
	}
	authURL, err := oc.AuthorizationURL(requestToken)
	if err != nil {
		return store.Credentials{}, fmt.Errorf("failed to build authorization URL: %w", err)
	}

	pin, err := prompt(authURL.String())
	if err != nil {
		return store.Credentials{}, fmt.Errorf("failed to read PIN: %w", err)
	}

	accessToken, accessSecret, err := oc.AccessToken(requestToken, requestSecret, pin)
	if err != nil {
		return store.Credentials{}, fmt.Errorf("failed to exchange PIN for access token: %w", err)
	}
	return store.Credentials{Token: accessToken, Secret: accessSecret}, nil
}
