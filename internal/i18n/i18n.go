// Package i18n holds the translatable UI strings, most notably lane titles.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys for lane titles.
const (
	LaneUserProfile        = "lane_user_profile"
	LaneUserTweets         = "lane_user_tweets"
	LaneUserTweetsADN      = "lane_user_tweets_adn"
	LaneUserRetweetsOfMe   = "lane_user_retweets_of_me"
	LaneUserRetweetsOfMeAD = "lane_user_retweets_of_me_adn"
	LaneUserHome           = "lane_user_home"
	LaneUserMentions       = "lane_user_mentions"
	LaneUserGlobalFeed     = "lane_user_global_feed"
	LaneDirectMessages     = "lane_direct_messages"
	LaneFriends            = "lane_friends"
	LaneFollowers          = "lane_followers"
	LaneUserFavorites      = "lane_user_favorites"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		LaneUserProfile:        "Profile",
		LaneUserTweets:         "Tweets",
		LaneUserTweetsADN:      "Posts",
		LaneUserRetweetsOfMe:   "Retweets",
		LaneUserRetweetsOfMeAD: "Reposts",
		LaneUserHome:           "Home",
		LaneUserMentions:       "Mentions",
		LaneUserGlobalFeed:     "Global",
		LaneDirectMessages:     "Messages",
		LaneFriends:            "Following",
		LaneFollowers:          "Followers",
		LaneUserFavorites:      "Favorites",
	},
	language.Spanish: {
		LaneUserProfile:        "Perfil",
		LaneUserTweets:         "Tweets",
		LaneUserTweetsADN:      "Publicaciones",
		LaneUserRetweetsOfMe:   "Retweets",
		LaneUserRetweetsOfMeAD: "Republicaciones",
		LaneUserHome:           "Inicio",
		LaneUserMentions:       "Menciones",
		LaneUserGlobalFeed:     "Global",
		LaneDirectMessages:     "Mensajes",
		LaneFriends:            "Siguiendo",
		LaneFollowers:          "Seguidores",
		LaneUserFavorites:      "Favoritos",
	},
}

var (
	supported = []language.Tag{language.English, language.Spanish}
	matcher   = language.NewMatcher(supported)
	cat       = mustBuild()
)

func mustBuild() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: failed to register %s/%s: %v", tag, key, err))
			}
		}
	}
	return b
}

// Printer resolves message keys for a single language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// NewPrinter returns a Printer for the closest supported match of tag.
// Unsupported languages fall back to English.
func NewPrinter(tag language.Tag) *Printer {
	_, idx, conf := matcher.Match(tag)
	best := supported[idx]
	if conf == language.No {
		best = language.English
	}
	return &Printer{tag: best, p: message.NewPrinter(best, message.Catalog(cat))}
}

// ParseLanguage parses a BCP 47 tag, defaulting to English when s is empty
// or malformed.
func ParseLanguage(s string) language.Tag {
	if s == "" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}

// Tag reports the language the printer resolved to.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// String returns the translation for key.
func (p *Printer) String(key string) string {
	return p.p.Sprintf(key)
}

// Translations returns every supported language's text for key, without
// duplicates, English first.
func Translations(key string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tag := range supported {
		msg, ok := translations[tag][key]
		if !ok || seen[msg] {
			continue
		}
		seen[msg] = true
		out = append(out, msg)
	}
	return out
}
