package twitter

import "github.com/lu-zhengda/termlanes/internal/domain"

type apiUser struct {
	ID                   int64  `json:"id"`
	ScreenName           string `json:"screen_name"`
	Name                 string `json:"name"`
	ProfileImageURLHTTPS string `json:"profile_image_url_https"`
}

type apiList struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	MemberCount int     `json:"member_count"`
	User        apiUser `json:"user"`
}

func mapUser(u apiUser) *domain.User {
	return &domain.User{
		ID:              u.ID,
		ScreenName:      u.ScreenName,
		Name:            u.Name,
		ProfileImageURL: u.ProfileImageURLHTTPS,
	}
}

func mapList(l apiList) domain.SocialList {
	return domain.SocialList{
		ID:              l.ID,
		Name:            l.Name,
		Slug:            l.Slug,
		Description:     l.Description,
		MemberCount:     l.MemberCount,
		OwnerScreenName: l.User.ScreenName,
	}
}
