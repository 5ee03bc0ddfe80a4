package cli

import (
	"github.com/lu-zhengda/termlanes/internal/account"
	"github.com/lu-zhengda/termlanes/internal/domain"
)

// ---------------------------------------------------------------------------
// Account JSON types (account list, account show)
// ---------------------------------------------------------------------------

type jsonAccount struct {
	ID             int64  `json:"id"`
	ScreenName     string `json:"screen_name"`
	Network        string `json:"network"`
	DisplayedLanes int    `json:"displayed_lanes"`
	Lanes          int    `json:"lanes"`
	Lists          int    `json:"lists"`
	Active         bool   `json:"active"`
}

func toJSONAccounts(accounts []*account.Account, activeID int64) []jsonAccount {
	out := make([]jsonAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, jsonAccount{
			ID:             a.ID(),
			ScreenName:     a.ScreenName(),
			Network:        string(a.SocialNetType()),
			DisplayedLanes: a.DisplayedLaneCount(),
			Lanes:          len(a.Lanes()),
			Lists:          len(a.Lists()),
			Active:         a.ID() == activeID,
		})
	}
	return out
}

// jsonAccountDetail never carries OAuth credentials.
type jsonAccountDetail struct {
	ID               int64      `json:"id"`
	ScreenName       string     `json:"screen_name"`
	Network          string     `json:"network"`
	InitialLaneIndex int        `json:"initial_lane_index"`
	Lanes            []jsonLane `json:"lanes"`
	Lists            []jsonList `json:"lists"`
}

func toJSONAccountDetail(a *account.Account) jsonAccountDetail {
	return jsonAccountDetail{
		ID:               a.ID(),
		ScreenName:       a.ScreenName(),
		Network:          string(a.SocialNetType()),
		InitialLaneIndex: a.InitialLaneIndex(),
		Lanes:            toJSONLanes(a.Lanes()),
		Lists:            toJSONLists(a.Lists()),
	}
}

// ---------------------------------------------------------------------------
// Lane JSON types (lanes)
// ---------------------------------------------------------------------------

type jsonLane struct {
	Title      string `json:"title"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	Identifier string `json:"identifier,omitempty"`
	Display    bool   `json:"display"`
}

func toJSONLanes(lanes []domain.Lane) []jsonLane {
	out := make([]jsonLane, 0, len(lanes))
	for _, l := range lanes {
		out = append(out, jsonLane{
			Title:      l.Title,
			Type:       string(l.Type),
			Content:    l.Content.String(),
			Identifier: l.Identifier,
			Display:    l.Display,
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// List JSON types (lists, lists refresh)
// ---------------------------------------------------------------------------

type jsonList struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toJSONLists(lists []domain.ListMembership) []jsonList {
	out := make([]jsonList, 0, len(lists))
	for _, l := range lists {
		out = append(out, jsonList{ID: l.ID, Name: l.Name})
	}
	return out
}

type jsonRefresh struct {
	Account string     `json:"account"`
	Changed bool       `json:"changed"`
	Lists   []jsonList `json:"lists"`
}

// ---------------------------------------------------------------------------
// Action result JSON type (add, remove, use, lanes show/hide/current)
// ---------------------------------------------------------------------------

type jsonAction struct {
	OK      bool   `json:"ok"`
	Action  string `json:"action"`
	Account string `json:"account,omitempty"`
	Lane    string `json:"lane,omitempty"`
}
