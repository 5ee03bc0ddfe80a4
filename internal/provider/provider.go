package provider

import (
	"context"

	"github.com/lu-zhengda/termlanes/internal/domain"
)

// SocialProvider is the slice of a social network API the client needs to
// manage an account.
type SocialProvider interface {
	Network() domain.SocialNetType
	VerifyCredentials(ctx context.Context) (*domain.User, error)
	ListLists(ctx context.Context) ([]domain.SocialList, error)
	ProfileImageURL(screenName string) string
}
