package account

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lu-zhengda/termlanes/internal/domain"
)

// persisted is the JSON layout accounts are stored in. Each entry of Lists is
// itself a JSON object encoded as a string.
type persisted struct {
	ID             int64    `json:"id"`
	ScreenName     string   `json:"screenName"`
	OAuthToken     string   `json:"oAuthToken"`
	OAuthSecret    string   `json:"oAuthSecret,omitempty"`
	LastLaneIndex  *int     `json:"lastLaneIndex,omitempty"`
	SocialNetType  string   `json:"socialNetType"`
	Lists          []string `json:"lists,omitempty"`
	DisplayedLanes []string `json:"displayedLanes"`
}

// incoming mirrors persisted with pointers so missing keys can be told apart
// from zero values.
type incoming struct {
	ID             *int64            `json:"id"`
	ScreenName     *string           `json:"screenName"`
	OAuthToken     *string           `json:"oAuthToken"`
	OAuthSecret    *string           `json:"oAuthSecret"`
	LastLaneIndex  *int              `json:"lastLaneIndex"`
	SocialNetType  *string           `json:"socialNetType"`
	Lists          []json.RawMessage `json:"lists"`
	DisplayedLanes []string          `json:"displayedLanes"`
}

// Parse restores an account from the JSON produced by MarshalJSON.
func Parse(data []byte, opts ...Option) (*Account, error) {
	var in incoming
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse account: %w", err)
	}
	switch {
	case in.ID == nil:
		return nil, fmt.Errorf("failed to parse account: missing %q", "id")
	case in.ScreenName == nil:
		return nil, fmt.Errorf("failed to parse account: missing %q", "screenName")
	case in.OAuthToken == nil:
		return nil, fmt.Errorf("failed to parse account: missing %q", "oAuthToken")
	}

	a := newAccount(opts)
	a.id = *in.ID
	a.screenName = *in.ScreenName
	a.oauthToken = *in.OAuthToken
	if in.OAuthSecret != nil {
		a.oauthSecret = *in.OAuthSecret
	}
	a.initialLaneIndex = in.LastLaneIndex

	a.netType = domain.Twitter
	if in.SocialNetType != nil {
		t, err := domain.ParseSocialNetType(*in.SocialNetType)
		if err != nil {
			return nil, fmt.Errorf("failed to parse account: %w", err)
		}
		a.netType = t
	}

	for i, raw := range in.Lists {
		l, err := parseList(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse account: list %d: %w", i, err)
		}
		a.lists = append(a.lists, l)
	}

	a.configureLanes(in.DisplayedLanes)
	return a, nil
}

// parseList accepts a list stored either as an object or as a string holding
// the encoded object.
func parseList(raw json.RawMessage) (domain.ListMembership, error) {
	var l domain.ListMembership
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return l, err
		}
		raw = []byte(s)
	}
	if err := json.Unmarshal(raw, &l); err != nil {
		return l, err
	}
	return l, nil
}

// MarshalJSON encodes the account for persistence.
func (a *Account) MarshalJSON() ([]byte, error) {
	p := persisted{
		ID:             a.id,
		ScreenName:     a.screenName,
		OAuthToken:     a.oauthToken,
		OAuthSecret:    a.oauthSecret,
		LastLaneIndex:  a.initialLaneIndex,
		SocialNetType:  string(a.netType),
		DisplayedLanes: a.DisplayedTitles(),
	}
	for _, l := range a.lists {
		b, err := json.Marshal(l)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal list %d: %w", l.ID, err)
		}
		p.Lists = append(p.Lists, string(b))
	}
	return json.Marshal(p)
}

// String returns the persisted JSON form of the account.
func (a *Account) String() string {
	b, err := a.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}
