package account

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/lu-zhengda/termlanes/internal/domain"
)

func TestMarshalJSON_Format(t *testing.T) {
	a := New(testUser, "tok", "", domain.Twitter)
	a.UpdateLists([]domain.SocialList{{ID: 7, Name: "Go", MemberCount: 12}})
	a.SetLaneDisplayed("Messages", false)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(a.String()), &raw); err != nil {
		t.Fatalf("String() produced invalid JSON: %v", err)
	}

	for _, key := range []string{"id", "screenName", "oAuthToken", "socialNetType", "lists", "displayedLanes"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	for _, key := range []string{"oAuthSecret", "lastLaneIndex"} {
		if _, ok := raw[key]; ok {
			t.Errorf("key %q should be omitted when unset", key)
		}
	}
	if got := string(raw["socialNetType"]); got != `"Twitter"` {
		t.Errorf("socialNetType = %s, want %q", got, "Twitter")
	}

	var lists []string
	if err := json.Unmarshal(raw["lists"], &lists); err != nil {
		t.Fatalf("lists should be an array of strings: %v", err)
	}
	if diff := cmp.Diff([]string{`{"id":7,"name":"Go"}`}, lists); diff != "" {
		t.Errorf("lists mismatch (-want +got):\n%s", diff)
	}

	var displayed []string
	if err := json.Unmarshal(raw["displayedLanes"], &displayed); err != nil {
		t.Fatal(err)
	}
	for _, title := range displayed {
		if title == "Messages" {
			t.Error("hidden lane listed in displayedLanes")
		}
	}
	if len(displayed) != 9 {
		t.Errorf("got %d displayed lanes, want 9", len(displayed))
	}
}

func TestMarshalJSON_NoListsOmitsKey(t *testing.T) {
	a := New(testUser, "tok", "sec", domain.Appdotnet)
	a.SetCurrentLaneIndex(2)
	s := a.String()
	if strings.Contains(s, `"lists"`) {
		t.Errorf("String() = %s, want no lists key", s)
	}
	if !strings.Contains(s, `"lastLaneIndex":2`) {
		t.Errorf("String() = %s, want lastLaneIndex 2", s)
	}
	if !strings.Contains(s, `"socialNetType":"Appdotnet"`) {
		t.Errorf("String() = %s, want Appdotnet", s)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	orig := New(testUser, "tok", "sec", domain.Twitter)
	orig.UpdateLists([]domain.SocialList{{ID: 100, Name: "Work"}, {ID: 200, Name: "News"}})
	orig.SetLaneDisplayed("Retweets", false)
	orig.SetLaneDisplayed("News", false)
	orig.SetCurrentLaneIndex(4)

	data, err := orig.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if got.ID() != orig.ID() || got.ScreenName() != orig.ScreenName() {
		t.Errorf("identity = (%d, %q), want (%d, %q)", got.ID(), got.ScreenName(), orig.ID(), orig.ScreenName())
	}
	if got.OAuthToken() != "tok" || got.OAuthSecret() != "sec" {
		t.Errorf("credentials = (%q, %q), want (tok, sec)", got.OAuthToken(), got.OAuthSecret())
	}
	if got.InitialLaneIndex() != 4 {
		t.Errorf("InitialLaneIndex() = %d, want 4", got.InitialLaneIndex())
	}
	if diff := cmp.Diff(orig.Lanes(), got.Lanes()); diff != "" {
		t.Errorf("lanes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(orig.Lists(), got.Lists()); diff != "" {
		t.Errorf("lists mismatch (-want +got):\n%s", diff)
	}
	if !got.ShouldRefreshLists() {
		t.Error("expected ShouldRefreshLists() = true after Parse")
	}
	if !got.LanesDirty() {
		t.Error("expected LanesDirty() = true when persisted lanes hide defaults")
	}
}

func TestParse_Defaults(t *testing.T) {
	a, err := Parse([]byte(`{"id": 9, "screenName": "adn", "oAuthToken": "t"}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if a.SocialNetType() != domain.Twitter {
		t.Errorf("SocialNetType() = %q, want Twitter", a.SocialNetType())
	}
	if a.OAuthSecret() != "" {
		t.Errorf("OAuthSecret() = %q, want empty", a.OAuthSecret())
	}
	if a.InitialLaneIndex() != 3 {
		t.Errorf("InitialLaneIndex() = %d, want 3", a.InitialLaneIndex())
	}
	if a.DisplayedLaneCount() != len(a.Lanes()) {
		t.Error("expected every lane displayed without displayedLanes")
	}
	if a.LanesDirty() {
		t.Error("expected LanesDirty() = false without displayedLanes")
	}
}

func TestParse_ListFormats(t *testing.T) {
	data := `{
		"id": 1, "screenName": "a", "oAuthToken": "t", "socialNetType": "Twitter",
		"lists": ["{\"name\":\"Encoded\",\"id\":5}", {"id": 6, "name": "Object"}, "{\"name\":\"NoID\"}"]
	}`
	a, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := []domain.ListMembership{{ID: 5, Name: "Encoded"}, {ID: 6, Name: "Object"}, {Name: "NoID"}}
	if diff := cmp.Diff(want, a.Lists()); diff != "" {
		t.Errorf("lists mismatch (-want +got):\n%s", diff)
	}
	var listLanes []string
	for _, l := range a.Lanes() {
		if l.Type == domain.LaneUserListTimeline {
			listLanes = append(listLanes, l.Title)
		}
	}
	if diff := cmp.Diff([]string{"Encoded", "Object"}, listLanes); diff != "" {
		t.Errorf("list lanes mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DisplayedLanes(t *testing.T) {
	data := `{"id": 1, "screenName": "a", "oAuthToken": "t", "socialNetType": "Appdotnet",
		"displayedLanes": ["Home", "Global", "Unknown"]}`
	a, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if diff := cmp.Diff([]string{"Home", "Global"}, a.DisplayedTitles()); diff != "" {
		t.Errorf("displayed titles mismatch (-want +got):\n%s", diff)
	}
	if a.InitialLaneIndex() != 0 {
		t.Errorf("InitialLaneIndex() = %d, want 0", a.InitialLaneIndex())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"invalid json", `{"id":`, "failed to parse account"},
		{"missing id", `{"screenName": "a", "oAuthToken": "t"}`, `missing "id"`},
		{"missing screen name", `{"id": 1, "oAuthToken": "t"}`, `missing "screenName"`},
		{"missing token", `{"id": 1, "screenName": "a"}`, `missing "oAuthToken"`},
		{"wrong id type", `{"id": "1", "screenName": "a", "oAuthToken": "t"}`, "failed to parse account"},
		{"unknown network", `{"id": 1, "screenName": "a", "oAuthToken": "t", "socialNetType": "Myspace"}`, "unknown social network type"},
		{"bad list", `{"id": 1, "screenName": "a", "oAuthToken": "t", "lists": ["not json"]}`, "list 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("Parse() should return an error")
			}
			if a != nil {
				t.Error("Parse() should not return a partial account on error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParse_DisplayedLanesSurviveLanguageChange(t *testing.T) {
	orig := New(testUser, "tok", "sec", domain.Twitter)
	orig.UpdateLists([]domain.SocialList{{ID: 7, Name: "Go"}})
	if err := orig.SetLaneDisplayed("Mentions", false); err != nil {
		t.Fatal(err)
	}
	data, err := orig.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}

	es, err := Parse(data, WithLanguage(language.Spanish))
	if err != nil {
		t.Fatalf("Parse(es) error: %v", err)
	}
	want := []string{"Perfil", "Tweets", "Retweets", "Inicio", "Mensajes", "Go", "Siguiendo", "Seguidores", "Favoritos"}
	if diff := cmp.Diff(want, es.DisplayedTitles()); diff != "" {
		t.Errorf("displayed titles in es mismatch (-want +got):\n%s", diff)
	}
	if got := es.InitialLaneIndex(); got != 3 {
		t.Errorf("InitialLaneIndex() = %d, want 3 (home)", got)
	}

	// Saving in Spanish and reading back in English keeps the same selection.
	data, err = es.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON(es) error: %v", err)
	}
	en, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(en) error: %v", err)
	}
	if diff := cmp.Diff(orig.DisplayedTitles(), en.DisplayedTitles()); diff != "" {
		t.Errorf("displayed titles after round trip mismatch (-want +got):\n%s", diff)
	}
}
