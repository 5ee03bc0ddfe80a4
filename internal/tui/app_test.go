package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/lu-zhengda/termlanes/internal/account"
	"github.com/lu-zhengda/termlanes/internal/app"
	"github.com/lu-zhengda/termlanes/internal/domain"
	"github.com/lu-zhengda/termlanes/internal/provider"
	"github.com/lu-zhengda/termlanes/internal/store"
	"github.com/lu-zhengda/termlanes/internal/store/sqlite"
)

type fakeProvider struct {
	network domain.SocialNetType
	lists   []domain.SocialList
}

func (f *fakeProvider) Network() domain.SocialNetType { return f.network }

func (f *fakeProvider) VerifyCredentials(context.Context) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) ListLists(context.Context) ([]domain.SocialList, error) {
	return f.lists, nil
}

func (f *fakeProvider) ProfileImageURL(screenName string) string {
	return "https://img.example/" + screenName
}

func newTestOptions(t *testing.T) Options {
	t.Helper()
	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("sqlite.New() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	svc := app.NewAccountService(db, nil)

	tw := account.New(domain.User{ID: 1, ScreenName: "alice"}, "tok", "sec", domain.Twitter)
	adn := account.New(domain.User{ID: 2, ScreenName: "bob"}, "tok2", "", domain.Appdotnet)
	ctx := context.Background()
	for _, acct := range []*account.Account{tw, adn} {
		if err := svc.Save(ctx, acct); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	return Options{
		Service:  svc,
		Accounts: []*account.Account{tw, adn},
		ActiveID: 1,
		Providers: func(network domain.SocialNetType, _ store.Credentials) (provider.SocialProvider, error) {
			return &fakeProvider{network: network}, nil
		},
	}
}

func laneTitles(lanes []domain.Lane) []string {
	out := make([]string, len(lanes))
	for i, l := range lanes {
		out[i] = l.Title
	}
	return out
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	opts := newTestOptions(t)
	opts.ActiveID = 2

	m, err := newModel(opts)
	if err != nil {
		t.Fatalf("newModel() error: %v", err)
	}
	if got := m.current().ScreenName(); got != "bob" {
		t.Errorf("active account = %q, want bob", got)
	}
	if got := m.sidebar.cursor; got != 3 {
		t.Errorf("cursor = %d, want 3 (home)", got)
	}
	lane, ok := m.sidebar.Selected()
	if !ok || lane.Type != domain.LaneUserHomeTimeline {
		t.Errorf("selected lane = %+v, want home timeline", lane)
	}
	if !m.detail.hasLane || m.detail.lane.Title != "Home" {
		t.Errorf("detail lane = %q, want Home", m.detail.lane.Title)
	}
	if !m.statusBar.multiAccount {
		t.Error("expected multiAccount = true with two accounts")
	}
}

func TestNewModel_NoAccounts(t *testing.T) {
	if _, err := newModel(Options{}); !errors.Is(err, app.ErrNoAccounts) {
		t.Errorf("newModel() error = %v, want ErrNoAccounts", err)
	}
}

func TestNewModel_UnknownActiveFallsBackToFirst(t *testing.T) {
	opts := newTestOptions(t)
	opts.ActiveID = 99

	m, err := newModel(opts)
	if err != nil {
		t.Fatalf("newModel() error: %v", err)
	}
	if got := m.current().ID(); got != 1 {
		t.Errorf("active account id = %d, want 1", got)
	}
}

func TestUpdate_ListsFetched(t *testing.T) {
	m, err := newModel(newTestOptions(t))
	if err != nil {
		t.Fatalf("newModel() error: %v", err)
	}

	m = update(t, m, listsFetchedMsg{accountID: 1, lists: []domain.SocialList{{ID: 7, Name: "Work"}}})

	want := []string{"Profile", "Tweets", "Retweets", "Home", "Mentions", "Messages", "Work", "Following", "Followers", "Favorites"}
	if diff := cmp.Diff(want, laneTitles(m.sidebar.lanes)); diff != "" {
		t.Errorf("sidebar lanes mismatch (-want +got):\n%s", diff)
	}
	if m.current().LanesDirty() {
		t.Error("expected lanes dirty flag to be cleared after re-render")
	}
	if lane, _ := m.sidebar.Selected(); lane.Title != "Home" {
		t.Errorf("selected lane = %q, want Home", lane.Title)
	}
	if !strings.Contains(m.statusBar.message, "Lists updated") {
		t.Errorf("status = %q, want lists updated message", m.statusBar.message)
	}
}

func TestUpdate_LaneNavigation(t *testing.T) {
	m, err := newModel(newTestOptions(t))
	if err != nil {
		t.Fatalf("newModel() error: %v", err)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(model)
	if cmd == nil {
		t.Fatal("expected a command after moving down")
	}
	msg, ok := cmd().(laneFocusedMsg)
	if !ok || msg.index != 4 {
		t.Fatalf("cmd() = %#v, want laneFocusedMsg{4}", msg)
	}

	m = update(t, m, msg)
	if got := m.current().InitialLaneIndex(); got != 4 {
		t.Errorf("InitialLaneIndex() = %d, want 4", got)
	}
	if m.detail.lane.Title != "Mentions" {
		t.Errorf("detail lane = %q, want Mentions", m.detail.lane.Title)
	}
}

func TestUpdate_LaneEditor(t *testing.T) {
	m, err := newModel(newTestOptions(t))
	if err != nil {
		t.Fatalf("newModel() error: %v", err)
	}

	m = update(t, m, runes("e"))
	if !m.editor.IsVisible() {
		t.Fatal("expected editor to open on e")
	}

	m = update(t, m, laneToggledMsg{title: "Messages", display: false})
	for _, lane := range m.sidebar.lanes {
		if lane.Title == "Messages" {
			t.Error("hidden lane still in sidebar")
		}
	}
	if got := m.editor.lanes[5]; got.Title != "Messages" || got.Display {
		t.Errorf("editor lane = %+v, want Messages hidden", got)
	}
	if m.current().LanesDirty() {
		t.Error("expected lanes dirty flag to be cleared")
	}

	m = update(t, m, closeEditorMsg{})
	if m.editor.IsVisible() {
		t.Error("expected editor to close")
	}
}

func TestUpdate_LaneEditorListNamedLikeBuiltin(t *testing.T) {
	m, err := newModel(newTestOptions(t))
	if err != nil {
		t.Fatalf("newModel() error: %v", err)
	}
	m = update(t, m, listsFetchedMsg{accountID: 1, lists: []domain.SocialList{{ID: 7, Name: "Home"}}})
	m = update(t, m, runes("e"))
	for i := 0; i < 6; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(model)
	if cmd == nil {
		t.Fatal("expected a command after toggling")
	}
	msg, ok := cmd().(laneToggledMsg)
	if !ok {
		t.Fatalf("cmd() = %#v, want laneToggledMsg", msg)
	}
	if msg.listID != 7 || msg.display {
		t.Fatalf("toggle = %+v, want list 7 hidden", msg)
	}

	m = update(t, m, msg)
	if m.statusBar.isError {
		t.Fatalf("unexpected error status: %s", m.statusBar.message)
	}
	var homes []domain.LaneType
	for _, lane := range m.sidebar.lanes {
		if lane.Title == "Home" {
			homes = append(homes, lane.Type)
		}
	}
	if diff := cmp.Diff([]domain.LaneType{domain.LaneUserHomeTimeline}, homes); diff != "" {
		t.Errorf("Home lanes in sidebar mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate_HideLastLane(t *testing.T) {
	m, err := newModel(newTestOptions(t))
	if err != nil {
		t.Fatalf("newModel() error: %v", err)
	}
	titles := m.current().DisplayedTitles()
	for _, title := range titles[1:] {
		m = update(t, m, laneToggledMsg{title: title, display: false})
	}

	m = update(t, m, laneToggledMsg{title: titles[0], display: false})
	if !m.statusBar.isError {
		t.Error("expected an error status when hiding the last lane")
	}
	if diff := cmp.Diff([]string{titles[0]}, laneTitles(m.sidebar.lanes)); diff != "" {
		t.Errorf("sidebar lanes mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate_SwitchAccount(t *testing.T) {
	m, err := newModel(newTestOptions(t))
	if err != nil {
		t.Fatalf("newModel() error: %v", err)
	}

	m = update(t, m, runes("@"))
	if got := m.current().ScreenName(); got != "bob" {
		t.Fatalf("active account = %q, want bob", got)
	}
	if m.provider == nil || m.provider.Network() != domain.Appdotnet {
		t.Errorf("provider network = %v, want Appdotnet", m.provider)
	}
	want := []string{"Profile", "Posts", "Reposts", "Home", "Mentions", "Global", "Following", "Followers", "Favorites"}
	if diff := cmp.Diff(want, laneTitles(m.sidebar.lanes)); diff != "" {
		t.Errorf("sidebar lanes mismatch (-want +got):\n%s", diff)
	}

	m = update(t, m, runes("@"))
	if got := m.current().ScreenName(); got != "alice" {
		t.Errorf("active account = %q, want alice after wrapping", got)
	}
}

func TestView(t *testing.T) {
	m, err := newModel(newTestOptions(t))
	if err != nil {
		t.Fatalf("newModel() error: %v", err)
	}
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() before resize = %q, want Loading...", got)
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	view := m.View()
	for _, want := range []string{"termlanes", "@alice", "Home", "USER_HOME_TIMELINE", "statuses/user_home_timeline"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestStatusBar_Position(t *testing.T) {
	m, err := newModel(newTestOptions(t))
	if err != nil {
		t.Fatalf("newModel() error: %v", err)
	}
	if got := m.statusBar.position(); got != "@alice 4/9" {
		t.Errorf("position() = %q, want %q", got, "@alice 4/9")
	}

	var sb statusBar
	if got := sb.position(); got != "" {
		t.Errorf("empty position() = %q, want empty", got)
	}
}
