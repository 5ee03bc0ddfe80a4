package appdotnet

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"github.com/lu-zhengda/termlanes/internal/domain"
	"github.com/lu-zhengda/termlanes/internal/provider"
	"github.com/lu-zhengda/termlanes/internal/store"
)

const defaultAPIBase = "https://alpha-api.app.net/stream/0"

// Config holds the App.net API location.
type Config struct {
	APIBase string
}

// Provider implements provider.SocialProvider for App.net.
type Provider struct {
	apiBase string
	client  *http.Client
}

// New creates an App.net provider authorized with creds.Token.
func New(cfg Config, creds store.Credentials) *Provider {
	base := cfg.APIBase
	if base == "" {
		base = defaultAPIBase
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, provider.NewHTTPClient())
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token, TokenType: "Bearer"})
	return &Provider{
		apiBase: strings.TrimSuffix(base, "/"),
		client:  oauth2.NewClient(ctx, ts),
	}
}

func (p *Provider) Network() domain.SocialNetType {
	return domain.Appdotnet
}

// VerifyCredentials returns the user the token belongs to.
func (p *Provider) VerifyCredentials(ctx context.Context) (*domain.User, error) {
	var resp envelope[apiUser]
	if err := provider.GetJSON(ctx, p.client, p.apiBase+"/users/me", &resp); err != nil {
		return nil, fmt.Errorf("failed to verify app.net token: %w", err)
	}
	if resp.Meta.Code != 0 && resp.Meta.Code != http.StatusOK {
		return nil, fmt.Errorf("failed to verify app.net token: %s", resp.Meta.ErrorMessage)
	}
	return mapUser(resp.Data)
}

// ListLists always returns no lists; App.net has no list timelines.
func (p *Provider) ListLists(ctx context.Context) ([]domain.SocialList, error) {
	return nil, nil
}

// ProfileImageURL returns the avatar URL for screenName.
func (p *Provider) ProfileImageURL(screenName string) string {
	return p.apiBase + "/users/@" + url.PathEscape(screenName) + "/avatar"
}

type envelope[T any] struct {
	Data T `json:"data"`
	Meta struct {
		Code         int    `json:"code"`
		ErrorMessage string `json:"error_message"`
	} `json:"meta"`
}

type apiUser struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	AvatarImage struct {
		URL string `json:"url"`
	} `json:"avatar_image"`
}

// mapUser converts an App.net user. App.net encodes ids as strings.
func mapUser(u apiUser) (*domain.User, error) {
	id, err := strconv.ParseInt(u.ID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid app.net user id %q: %w", u.ID, err)
	}
	return &domain.User{
		ID:              id,
		ScreenName:      u.Username,
		Name:            u.Name,
		ProfileImageURL: u.AvatarImage.URL,
	}, nil
}
