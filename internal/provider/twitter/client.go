package twitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dghubble/oauth1"

	"github.com/lu-zhengda/termlanes/internal/domain"
	"github.com/lu-zhengda/termlanes/internal/provider"
	"github.com/lu-zhengda/termlanes/internal/store"
)

const (
	defaultAPIBase      = "https://api.twitter.com/1.1"
	profileImageBaseURL = "https://api.twitter.com/1/users/profile_image"
)

// Config holds the Twitter consumer credentials.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	// APIBase overrides the REST endpoint, mainly for tests.
	APIBase string
}

// Provider implements provider.SocialProvider for Twitter.
type Provider struct {
	apiBase string
	client  *http.Client
}

// New creates a Twitter provider that signs requests with creds.
func New(cfg Config, creds store.Credentials) *Provider {
	base := cfg.APIBase
	if base == "" {
		base = defaultAPIBase
	}
	oc := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, provider.NewHTTPClient())
	return &Provider{
		apiBase: strings.TrimSuffix(base, "/"),
		client:  oc.Client(ctx, oauth1.NewToken(creds.Token, creds.Secret)),
	}
}

func (p *Provider) Network() domain.SocialNetType {
	return domain.Twitter
}

// VerifyCredentials returns the user the credentials belong to.
func (p *Provider) VerifyCredentials(ctx context.Context) (*domain.User, error) {
	var u apiUser
	if err := provider.GetJSON(ctx, p.client, p.apiBase+"/account/verify_credentials.json?skip_status=1", &u); err != nil {
		return nil, fmt.Errorf("failed to verify twitter credentials: %w", err)
	}
	return mapUser(u), nil
}

// ListLists returns the lists the user owns or subscribes to.
func (p *Provider) ListLists(ctx context.Context) ([]domain.SocialList, error) {
	var lists []apiList
	if err := provider.GetJSON(ctx, p.client, p.apiBase+"/lists/list.json", &lists); err != nil {
		return nil, fmt.Errorf("failed to list twitter lists: %w", err)
	}
	out := make([]domain.SocialList, 0, len(lists))
	for _, l := range lists {
		out = append(out, mapList(l))
	}
	return out, nil
}

// ProfileImageURL returns the URL of the "bigger" profile image for screenName.
func (p *Provider) ProfileImageURL(screenName string) string {
	q := url.Values{}
	q.Set("screen_name", screenName)
	q.Set("size", "bigger")
	return profileImageBaseURL + "?" + q.Encode()
}
