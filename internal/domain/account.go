package domain

// User is the identity a social network reports for an authenticated account.
type User struct {
	ID              int64
	ScreenName      string
	Name            string
	ProfileImageURL string
}

// SocialList is a list as returned by the network. Accounts only keep the
// ID and name of each list (see ListMembership).
type SocialList struct {
	ID              int64
	Name            string
	Slug            string
	Description     string
	MemberCount     int
	OwnerScreenName string
}

// ListMembership is the trimmed-down list an account persists.
// An ID of 0 means the id is unknown.
type ListMembership struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
