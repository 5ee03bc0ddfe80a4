package i18n

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func TestPrinter_String(t *testing.T) {
	tests := []struct {
		name string
		tag  language.Tag
		key  string
		want string
	}{
		{"english", language.English, LaneUserHome, "Home"},
		{"english adn", language.English, LaneUserTweetsADN, "Posts"},
		{"spanish", language.Spanish, LaneUserHome, "Inicio"},
		{"regional spanish", language.MustParse("es-MX"), LaneFollowers, "Seguidores"},
		{"unsupported falls back", language.Japanese, LaneUserMentions, "Mentions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPrinter(tt.tag).String(tt.key); got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestPrinter_EveryKeyTranslated(t *testing.T) {
	for tag, msgs := range translations {
		p := NewPrinter(tag)
		for key := range translations[language.English] {
			if _, ok := msgs[key]; !ok {
				t.Errorf("%s: missing translation for %q", tag, key)
				continue
			}
			if got := p.String(key); got == key {
				t.Errorf("%s: String(%q) returned the key itself", tag, key)
			}
		}
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "en"},
		{"not a tag!", "en"},
		{"es", "es"},
		{"es-MX", "es-MX"},
	}
	for _, tt := range tests {
		if got := ParseLanguage(tt.input).String(); got != tt.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTranslations(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{LaneUserHome, []string{"Home", "Inicio"}},
		{LaneUserTweets, []string{"Tweets"}},
		{"no_such_key", nil},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Translations(tt.key)); diff != "" {
				t.Errorf("Translations(%q) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}
}
