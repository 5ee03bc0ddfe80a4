package account

import (
	"strconv"

	"github.com/lu-zhengda/termlanes/internal/domain"
	"github.com/lu-zhengda/termlanes/internal/i18n"
)

func statuses(subtype string) domain.ContentHandle {
	return domain.ContentHandle{Type: domain.ContentStatuses, Subtype: subtype}
}

func users(subtype string) domain.ContentHandle {
	return domain.ContentHandle{Type: domain.ContentUsers, Subtype: subtype}
}

// configureLanes rebuilds the lanes for the current network type and lists.
// When displayed is non-empty, only lanes named in displayed are shown. A
// built-in lane matches its title in any supported language, so a saved
// selection survives a change of UI language; list lanes match by list name.
func (a *Account) configureLanes(displayed []string) {
	twitter := a.netType == domain.Twitter
	keys := make(map[*domain.Lane]string)
	builtin := func(typ domain.LaneType, key string, content domain.ContentHandle) *domain.Lane {
		lane := domain.NewLane(typ, a.titles.String(key), content)
		keys[lane] = key
		return lane
	}
	byNetwork := func(twitterKey, adnKey string) string {
		if twitter {
			return twitterKey
		}
		return adnKey
	}

	lanes := []*domain.Lane{
		builtin(domain.LaneUserProfile, i18n.LaneUserProfile, domain.ContentHandle{Type: domain.ContentUser}),
		builtin(domain.LaneUserProfileTimeline, byNetwork(i18n.LaneUserTweets, i18n.LaneUserTweetsADN),
			statuses(domain.StatusesUserTimeline)),
		builtin(domain.LaneRetweetsOfMe, byNetwork(i18n.LaneUserRetweetsOfMe, i18n.LaneUserRetweetsOfMeAD),
			statuses(domain.StatusesRetweetsOfMe)),
		builtin(domain.LaneUserHomeTimeline, i18n.LaneUserHome, statuses(domain.StatusesUserHomeTimeline)),
		builtin(domain.LaneUserMentions, i18n.LaneUserMentions, statuses(domain.StatusesUserMentions)),
	}

	if a.netType == domain.Appdotnet {
		lanes = append(lanes, builtin(domain.LaneGlobalFeed, i18n.LaneUserGlobalFeed, statuses(domain.StatusesGlobalFeed)))
	}

	if twitter {
		lanes = append(lanes, builtin(domain.LaneDirectMessages, i18n.LaneDirectMessages,
			domain.ContentHandle{Type: domain.ContentDirectMessages, Subtype: domain.DirectMessagesAll}))

		for _, l := range a.lists {
			if l.ID == 0 {
				continue
			}
			lane := domain.NewLane(domain.LaneUserListTimeline, l.Name, statuses(domain.StatusesUserListTimeline))
			lane.Identifier = strconv.FormatInt(l.ID, 10)
			lanes = append(lanes, lane)
		}
	}

	lanes = append(lanes,
		builtin(domain.LaneFriends, i18n.LaneFriends, users(domain.UsersFriends)),
		builtin(domain.LaneFollowers, i18n.LaneFollowers, users(domain.UsersFollowers)),
		builtin(domain.LaneUserFavorites, i18n.LaneUserFavorites, statuses(domain.StatusesUserFavorites)),
	)
	a.lanes = lanes

	if len(displayed) == 0 {
		return
	}
	// Each saved title shows one lane. Built-in lanes claim theirs first so a
	// list named like a built-in lane cannot take its entry.
	remaining := make(map[string]int, len(displayed))
	for _, t := range displayed {
		remaining[t]++
	}
	claim := func(titles ...string) bool {
		for _, t := range titles {
			if remaining[t] > 0 {
				remaining[t]--
				return true
			}
		}
		return false
	}
	want := make(map[*domain.Lane]bool, len(a.lanes))
	for _, lane := range a.lanes {
		if key, ok := keys[lane]; ok {
			want[lane] = claim(append([]string{lane.Title}, i18n.Translations(key)...)...)
		}
	}
	for _, lane := range a.lanes {
		if _, ok := keys[lane]; !ok {
			want[lane] = claim(lane.Title)
		}
	}
	for _, lane := range a.lanes {
		if lane.Display != want[lane] {
			lane.Display = want[lane]
			a.lanesDirty = true
		}
	}
}

// laneKey identifies a lane across rebuilds: built-in lanes by type, list
// lanes by list id. Titles change with the network and UI language.
func laneKey(lane *domain.Lane) string {
	if lane.Type == domain.LaneUserListTimeline {
		return string(lane.Type) + ":" + lane.Identifier
	}
	return string(lane.Type)
}

func (a *Account) hiddenLanes() map[string]bool {
	hidden := make(map[string]bool)
	for _, lane := range a.lanes {
		if !lane.Display {
			hidden[laneKey(lane)] = true
		}
	}
	return hidden
}

func (a *Account) hide(hidden map[string]bool) {
	for _, lane := range a.lanes {
		if hidden[laneKey(lane)] {
			lane.Display = false
		}
	}
}

// Lanes returns every lane, displayed or not, in display order.
func (a *Account) Lanes() []domain.Lane {
	out := make([]domain.Lane, len(a.lanes))
	for i, lane := range a.lanes {
		out[i] = *lane
	}
	return out
}

// DisplayedLanes returns the lanes currently shown.
func (a *Account) DisplayedLanes() []domain.Lane {
	var out []domain.Lane
	for _, lane := range a.lanes {
		if lane.Display {
			out = append(out, *lane)
		}
	}
	return out
}

// DisplayedLane returns the index'th displayed lane.
func (a *Account) DisplayedLane(index int) (domain.Lane, bool) {
	n := 0
	for _, lane := range a.lanes {
		if !lane.Display {
			continue
		}
		if n == index {
			return *lane, true
		}
		n++
	}
	return domain.Lane{}, false
}

// DisplayedLaneCount returns how many lanes are shown.
func (a *Account) DisplayedLaneCount() int {
	n := 0
	for _, lane := range a.lanes {
		if lane.Display {
			n++
		}
	}
	return n
}

// DisplayedTitles returns the titles of the displayed lanes in order.
func (a *Account) DisplayedTitles() []string {
	titles := make([]string, 0, len(a.lanes))
	for _, lane := range a.lanes {
		if lane.Display {
			titles = append(titles, lane.Title)
		}
	}
	return titles
}

// SetLaneDisplayed shows or hides the lane titled title. A built-in lane
// takes precedence over a list of the same name; use SetListLaneDisplayed
// for the list. ErrAmbiguousLane is returned when several lists share title.
func (a *Account) SetLaneDisplayed(title string, display bool) error {
	var lists []*domain.Lane
	for _, lane := range a.lanes {
		if lane.Title != title {
			continue
		}
		if lane.Type != domain.LaneUserListTimeline {
			return a.setDisplay(lane, display)
		}
		lists = append(lists, lane)
	}
	switch len(lists) {
	case 0:
		return ErrLaneNotFound
	case 1:
		return a.setDisplay(lists[0], display)
	}
	return ErrAmbiguousLane
}

// SetListLaneDisplayed shows or hides the lane of the list with id listID.
func (a *Account) SetListLaneDisplayed(listID int64, display bool) error {
	id := strconv.FormatInt(listID, 10)
	for _, lane := range a.lanes {
		if lane.Type == domain.LaneUserListTimeline && lane.Identifier == id {
			return a.setDisplay(lane, display)
		}
	}
	return ErrLaneNotFound
}

func (a *Account) setDisplay(lane *domain.Lane, display bool) error {
	if lane.Display == display {
		return nil
	}
	if !display && a.DisplayedLaneCount() == 1 {
		return ErrLastLane
	}
	lane.Display = display
	if a.shadowedListShown() {
		lane.Display = !display
		return ErrAmbiguousLane
	}
	a.lanesDirty = true
	return nil
}

// shadowedListShown reports whether a displayed list lane shares its title
// with a hidden built-in lane. Displayed lanes are saved by title only, so
// that state would come back the other way round.
func (a *Account) shadowedListShown() bool {
	hidden := make(map[string]bool)
	for _, lane := range a.lanes {
		if lane.Type != domain.LaneUserListTimeline && !lane.Display {
			hidden[lane.Title] = true
		}
	}
	for _, lane := range a.lanes {
		if lane.Type == domain.LaneUserListTimeline && lane.Display && hidden[lane.Title] {
			return true
		}
	}
	return false
}

// InitialLaneIndex returns the displayed lane the UI should open on: the last
// lane the user was on if it is still in range, otherwise the home timeline.
func (a *Account) InitialLaneIndex() int {
	if a.initialLaneIndex != nil && *a.initialLaneIndex >= 0 && *a.initialLaneIndex < a.DisplayedLaneCount() {
		return *a.initialLaneIndex
	}
	n := 0
	for _, lane := range a.lanes {
		if !lane.Display {
			continue
		}
		if lane.Type == domain.LaneUserHomeTimeline {
			return n
		}
		n++
	}
	return 0
}

// SetCurrentLaneIndex records the displayed lane the user is on.
func (a *Account) SetCurrentLaneIndex(index int) {
	a.initialLaneIndex = &index
}
