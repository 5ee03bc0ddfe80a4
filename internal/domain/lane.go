package domain

type LaneType string

const (
	LaneUserProfile         LaneType = "USER_PROFILE"
	LaneUserProfileTimeline LaneType = "USER_PROFILE_TIMELINE"
	LaneRetweetsOfMe        LaneType = "RETWEETS_OF_ME"
	LaneUserHomeTimeline    LaneType = "USER_HOME_TIMELINE"
	LaneUserMentions        LaneType = "USER_MENTIONS"
	LaneGlobalFeed          LaneType = "GLOBAL_FEED"
	LaneDirectMessages      LaneType = "DIRECT_MESSAGES"
	LaneUserListTimeline    LaneType = "USER_LIST_TIMELINE"
	LaneFriends             LaneType = "FRIENDS"
	LaneFollowers           LaneType = "FOLLOWERS"
	LaneUserFavorites       LaneType = "USER_FAVORITES"
)

type ContentType string

const (
	ContentUser           ContentType = "user"
	ContentUsers          ContentType = "users"
	ContentStatuses       ContentType = "statuses"
	ContentDirectMessages ContentType = "direct_messages"
)

const (
	StatusesUserTimeline     = "user_timeline"
	StatusesRetweetsOfMe     = "retweets_of_me"
	StatusesUserHomeTimeline = "user_home_timeline"
	StatusesUserMentions     = "user_mentions"
	StatusesGlobalFeed       = "global_feed"
	StatusesUserListTimeline = "user_list_timeline"
	StatusesUserFavorites    = "user_favorites"
	DirectMessagesAll        = "all_messages"
	UsersFriends             = "friends"
	UsersFollowers           = "followers"
)

// ContentHandle tells a network client what to fetch for a lane.
type ContentHandle struct {
	Type    ContentType
	Subtype string
}

func (h ContentHandle) String() string {
	if h.Subtype == "" {
		return string(h.Type)
	}
	return string(h.Type) + "/" + h.Subtype
}

// Lane is a named timeline view shown in the client.
type Lane struct {
	Type       LaneType
	Title      string
	Identifier string // list id for USER_LIST_TIMELINE lanes
	Content    ContentHandle
	Display    bool
}

// NewLane returns a lane that is displayed by default.
func NewLane(typ LaneType, title string, content ContentHandle) *Lane {
	return &Lane{Type: typ, Title: title, Content: content, Display: true}
}
