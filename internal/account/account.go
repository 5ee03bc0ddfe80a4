// Package account holds the per-account client state: identity, credentials,
// cached list memberships and the lanes shown in the UI.
package account

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/text/language"

	"github.com/lu-zhengda/termlanes/internal/domain"
	"github.com/lu-zhengda/termlanes/internal/i18n"
)

var (
	// ErrLaneNotFound is returned when no lane has the requested title.
	ErrLaneNotFound = errors.New("lane not found")
	// ErrLastLane is returned when hiding the only displayed lane.
	ErrLastLane = errors.New("cannot hide the last displayed lane")
	// ErrAmbiguousLane is returned when a title does not pick out one lane,
	// or when a list lane would be shown while a built-in lane of the same
	// name is hidden.
	ErrAmbiguousLane = errors.New("lane title is shared with another lane; select the list by id")
	// ErrProfileImagesDisabled is passed to LoadProfileImage callbacks when
	// the account was built without profile image support.
	ErrProfileImagesDisabled = errors.New("profile images disabled")
)

// ImageFetcher downloads an image.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// Option configures an Account.
type Option func(*options)

type options struct {
	lang          language.Tag
	profileImages bool
}

// WithLanguage selects the language lane titles are rendered in.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) { o.lang = tag }
}

// WithProfileImages enables caching of the account's profile image.
func WithProfileImages(enabled bool) Option {
	return func(o *options) { o.profileImages = enabled }
}

// Account is a logged-in Twitter or App.net account.
//
// An Account is not safe for concurrent mutation; only the profile image may
// be touched from other goroutines.
type Account struct {
	id          int64
	screenName  string
	oauthToken  string
	oauthSecret string
	netType     domain.SocialNetType

	initialLaneIndex   *int
	lanesDirty         bool
	shouldRefreshLists bool
	lists              []domain.ListMembership
	lanes              []*domain.Lane

	titles        *i18n.Printer
	profileImages bool

	imageMu      sync.RWMutex
	profileImage []byte
}

func newAccount(opts []Option) *Account {
	o := options{lang: language.English}
	for _, opt := range opts {
		opt(&o)
	}
	return &Account{
		titles:             i18n.NewPrinter(o.lang),
		profileImages:      o.profileImages,
		shouldRefreshLists: true,
	}
}

// New builds an account for a freshly authenticated user. Every lane starts
// out displayed.
func New(user domain.User, token, secret string, netType domain.SocialNetType, opts ...Option) *Account {
	a := newAccount(opts)
	a.id = user.ID
	a.screenName = user.ScreenName
	a.oauthToken = token
	a.oauthSecret = secret
	a.netType = netType
	a.configureLanes(nil)
	return a
}

func (a *Account) ID() int64                           { return a.id }
func (a *Account) ScreenName() string                  { return a.screenName }
func (a *Account) OAuthToken() string                  { return a.oauthToken }
func (a *Account) OAuthSecret() string                 { return a.oauthSecret }
func (a *Account) SocialNetType() domain.SocialNetType { return a.netType }
func (a *Account) ShouldRefreshLists() bool            { return a.shouldRefreshLists }
func (a *Account) LanesDirty() bool                    { return a.lanesDirty }
func (a *Account) SetLanesDirty(dirty bool)            { a.lanesDirty = dirty }

// SetCredentials replaces the OAuth token and secret, e.g. after the user
// re-authorizes the client.
func (a *Account) SetCredentials(token, secret string) {
	a.oauthToken = token
	a.oauthSecret = secret
}

// SetSocialNetType changes the network and rebuilds the lanes, since lane
// order and titles depend on it. Hidden lanes stay hidden, matched by lane
// type, so a hidden Tweets lane stays hidden as Posts.
func (a *Account) SetSocialNetType(t domain.SocialNetType) {
	if t == a.netType {
		return
	}
	hidden := a.hiddenLanes()
	a.netType = t
	a.configureLanes(nil)
	a.hide(hidden)
	a.lanesDirty = true
}

// Lists returns the cached list memberships.
func (a *Account) Lists() []domain.ListMembership {
	out := make([]domain.ListMembership, len(a.lists))
	copy(out, a.lists)
	return out
}

// UpdateLists replaces the cached list memberships with lists and reports
// whether the list lanes changed. Changed lanes are rebuilt and marked dirty.
func (a *Account) UpdateLists(lists []domain.SocialList) bool {
	a.shouldRefreshLists = false

	previous := a.lists
	a.lists = make([]domain.ListMembership, 0, len(lists))
	for _, l := range lists {
		a.lists = append(a.lists, domain.ListMembership{ID: l.ID, Name: l.Name})
	}

	var changed bool
	if a.netType == domain.Twitter {
		changed = a.syncListLanes(lists)
	} else {
		changed = !sameMemberships(previous, a.lists)
	}

	if changed {
		hidden := a.hiddenLanes()
		a.configureLanes(nil)
		a.hide(hidden)
		a.lanesDirty = true
	}
	return changed
}

// syncListLanes renames existing list lanes in place and reports whether
// any list gained, lost or changed a lane.
func (a *Account) syncListLanes(lists []domain.SocialList) bool {
	changed := false
	incoming := make(map[int64]bool, len(lists))
	for _, l := range lists {
		if l.ID == 0 {
			continue
		}
		incoming[l.ID] = true

		exists := false
		for _, lane := range a.lanes {
			if lane.Type != domain.LaneUserListTimeline {
				continue
			}
			id, err := strconv.ParseInt(lane.Identifier, 10, 64)
			if err != nil {
				changed = true
				break
			}
			if id == l.ID {
				exists = true
				if lane.Title != l.Name {
					lane.Title = l.Name
					changed = true
				}
				break
			}
		}
		if !exists {
			changed = true
		}
	}

	for _, lane := range a.lanes {
		if lane.Type != domain.LaneUserListTimeline {
			continue
		}
		id, err := strconv.ParseInt(lane.Identifier, 10, 64)
		if err != nil || !incoming[id] {
			changed = true
		}
	}
	return changed
}

func sameMemberships(a, b []domain.ListMembership) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ProfileImage returns the cached profile image, or nil when profile images
// are disabled or none has been fetched yet.
func (a *Account) ProfileImage() []byte {
	if !a.profileImages {
		return nil
	}
	a.imageMu.RLock()
	defer a.imageMu.RUnlock()
	if a.profileImage == nil {
		return nil
	}
	out := make([]byte, len(a.profileImage))
	copy(out, a.profileImage)
	return out
}

// LoadProfileImage fetches url in the background and caches the result.
// done, if non-nil, is called from the fetching goroutine once the fetch
// finishes.
func (a *Account) LoadProfileImage(ctx context.Context, f ImageFetcher, url string, done func(error)) {
	if !a.profileImages {
		if done != nil {
			done(ErrProfileImagesDisabled)
		}
		return
	}
	go func() {
		img, err := f.FetchImage(ctx, url)
		if err == nil && len(img) == 0 {
			err = fmt.Errorf("empty profile image from %s", url)
		}
		if err == nil {
			a.imageMu.Lock()
			a.profileImage = img
			a.imageMu.Unlock()
		}
		if done != nil {
			done(err)
		}
	}()
}
