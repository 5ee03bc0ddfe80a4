package domain

import "fmt"

// SocialNetType distinguishes Twitter accounts from App.net accounts.
type SocialNetType string

const (
	Twitter   SocialNetType = "Twitter"
	Appdotnet SocialNetType = "Appdotnet"
)

// ParseSocialNetType converts a persisted network name into a SocialNetType.
func ParseSocialNetType(s string) (SocialNetType, error) {
	switch SocialNetType(s) {
	case Twitter, Appdotnet:
		return SocialNetType(s), nil
	}
	return "", fmt.Errorf("unknown social network type: %q", s)
}

// DisplayName returns a human-friendly network name.
func (t SocialNetType) DisplayName() string {
	if t == Appdotnet {
		return "App.net"
	}
	return string(t)
}
