package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lu-zhengda/termlanes/internal/account"
	"github.com/lu-zhengda/termlanes/internal/app"
	"github.com/lu-zhengda/termlanes/internal/domain"
	"github.com/lu-zhengda/termlanes/internal/provider"
)

// --- async result messages ---

type listsFetchedMsg struct {
	accountID int64
	lists     []domain.SocialList
}

type profileImageMsg struct {
	accountID int64
	err       error
}

type errMsg struct {
	err error
}

// Options configures the TUI.
type Options struct {
	Service   *app.AccountService
	Accounts  []*account.Account
	ActiveID  int64
	Providers app.ProviderFactory
	// Images fetches profile images. Nil disables them.
	Images account.ImageFetcher
}

// --- root model ---

type model struct {
	svc       *app.AccountService
	providers app.ProviderFactory
	images    account.ImageFetcher
	accounts  []*account.Account
	active    int

	provider    provider.SocialProvider
	providerErr error

	sidebar   sidebarModel
	detail    detailModel
	editor    editorModel
	statusBar statusBar

	width  int
	height int
}

// newModel creates the root model with the account matching opts.ActiveID
// selected, or the first account when none matches.
func newModel(opts Options) (model, error) {
	if len(opts.Accounts) == 0 {
		return model{}, app.ErrNoAccounts
	}

	m := model{
		svc:       opts.Service,
		providers: opts.Providers,
		images:    opts.Images,
		accounts:  opts.Accounts,
		sidebar:   newSidebar(),
		detail:    newDetail(),
		editor:    newEditor(),
		statusBar: newStatusBar(),
	}
	m.statusBar.multiAccount = len(opts.Accounts) > 1

	active := 0
	for i, acct := range opts.Accounts {
		if acct.ID() == opts.ActiveID {
			active = i
			break
		}
	}
	m.activate(active)
	return m, nil
}

func (m model) current() *account.Account {
	return m.accounts[m.active]
}

func (m model) accountByID(id int64) *account.Account {
	for _, acct := range m.accounts {
		if acct.ID() == id {
			return acct
		}
	}
	return nil
}

// activate makes accounts[i] the account on screen.
func (m *model) activate(i int) {
	m.active = i
	acct := m.current()

	m.provider, m.providerErr = nil, nil
	if m.providers != nil {
		m.provider, m.providerErr = m.providers(acct.SocialNetType(), app.CredentialsOf(acct))
	}

	m.sidebar.SetAccount(acct.ScreenName(), acct.SocialNetType())
	m.sidebar.SetLanes(acct.DisplayedLanes())
	m.sidebar.SetCursor(acct.InitialLaneIndex())
	acct.SetLanesDirty(false)

	m.detail.screenName = acct.ScreenName()
	m.detail.imageSize = len(acct.ProfileImage())
	m.sidebar.hasImage = m.detail.imageSize > 0
	m.showSelectedLane()

	m.editor.Close()
	m.statusBar.editorVisible = false
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshListsCmd(false),
		m.loadProfileImageCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- window resize ---
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.width = msg.Width
		m.resizeSubModels()
		return m, nil

	// --- async result messages ---
	case listsFetchedMsg:
		acct := m.accountByID(msg.accountID)
		if acct == nil {
			return m, nil
		}
		changed, err := m.svc.ApplyLists(context.Background(), acct, msg.lists)
		if err != nil {
			m.statusBar.setError(fmt.Sprintf("Error: %v", err))
			return m, nil
		}
		m.syncLanes()
		if changed {
			m.statusBar.setMessage(fmt.Sprintf("Lists updated for @%s", acct.ScreenName()))
		} else {
			m.statusBar.setMessage(fmt.Sprintf("Loaded %d lists", len(msg.lists)))
		}
		return m, nil

	case profileImageMsg:
		if msg.err != nil || msg.accountID != m.current().ID() {
			return m, nil
		}
		m.detail.imageSize = len(m.current().ProfileImage())
		m.sidebar.hasImage = m.detail.imageSize > 0
		return m, nil

	case errMsg:
		m.statusBar.setError(fmt.Sprintf("Error: %v", msg.err))
		return m, nil

	// --- sub-model emitted messages ---
	case laneFocusedMsg:
		m.current().SetCurrentLaneIndex(msg.index)
		m.showSelectedLane()
		return m, nil

	case laneSelectedMsg:
		if err := m.svc.SetCurrentLane(context.Background(), m.current(), msg.index); err != nil {
			m.statusBar.setError(fmt.Sprintf("Error: %v", err))
			return m, nil
		}
		if lane, ok := m.sidebar.Selected(); ok {
			m.statusBar.setMessage(fmt.Sprintf("Opened %s (%s)", lane.Title, lane.Content))
		}
		return m, nil

	case laneToggledMsg:
		acct := m.current()
		var err error
		if msg.listID != 0 {
			err = m.svc.SetListLaneDisplayed(context.Background(), acct, msg.listID, msg.display)
		} else {
			err = m.svc.SetLaneDisplayed(context.Background(), acct, msg.title, msg.display)
		}
		switch {
		case errors.Is(err, account.ErrLastLane):
			m.statusBar.setError("At least one lane must stay displayed")
		case errors.Is(err, account.ErrAmbiguousLane):
			m.statusBar.setError(fmt.Sprintf("%s is both a list and a built-in lane; the list can only be shown while the built-in lane is", msg.title))
		case err != nil:
			m.statusBar.setError(fmt.Sprintf("Error: %v", err))
		case msg.display:
			m.statusBar.setMessage(fmt.Sprintf("Showing %s", msg.title))
		default:
			m.statusBar.setMessage(fmt.Sprintf("Hid %s", msg.title))
		}
		m.syncLanes()
		m.editor.SetLanes(acct.Lanes())
		return m, nil

	case closeEditorMsg:
		m.editor.Close()
		m.statusBar.editorVisible = false
		return m, nil

	// --- key events ---
	case tea.KeyMsg:
		// Editor gets all key events when visible.
		if m.editor.IsVisible() {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, keys.Quit):
			m.saveCurrentLane()
			return m, tea.Quit

		case key.Matches(msg, keys.Edit):
			m.editor.Open(m.current().Lanes())
			m.statusBar.editorVisible = true
			m.resizeSubModels()
			return m, nil

		case key.Matches(msg, keys.Refresh):
			m.statusBar.setMessage("Refreshing lists...")
			return m, m.refreshListsCmd(true)

		case key.Matches(msg, keys.SwitchAccount):
			if len(m.accounts) < 2 {
				m.statusBar.setMessage("Only one account configured")
				return m, nil
			}
			m.saveCurrentLane()
			m.activate((m.active + 1) % len(m.accounts))
			acct := m.current()
			if err := m.svc.Activate(context.Background(), acct.ID()); err != nil {
				m.statusBar.setError(fmt.Sprintf("Error: %v", err))
			} else {
				m.statusBar.setMessage(fmt.Sprintf("Switched to @%s", acct.ScreenName()))
			}
			return m, tea.Batch(
				m.refreshListsCmd(false),
				m.loadProfileImageCmd(),
			)
		}

		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sidebarWidth, contentWidth := m.layoutWidths()
	contentHeight := m.height - 3 // reserve space for status bar

	sidebarView := sidebarStyle.
		Width(sidebarWidth).
		Height(contentHeight).
		Render(m.sidebar.View())

	tabBar := lipgloss.NewStyle().
		Width(contentWidth).
		Render(renderTabBar(m.sidebar.lanes, m.sidebar.cursor, contentWidth))

	var body string
	if m.editor.IsVisible() {
		body = m.editor.View()
	} else {
		body = m.detail.View()
	}
	bodyView := detailStyle.
		Width(contentWidth).
		Height(contentHeight - 1).
		Render(body)

	contentView := lipgloss.JoinVertical(lipgloss.Left, tabBar, bodyView)
	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebarView, contentView)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.statusBar.View())
}

// syncLanes re-reads the displayed lanes after the account marked them dirty,
// keeping the cursor on the same lane when it is still displayed.
func (m *model) syncLanes() {
	acct := m.current()
	if !acct.LanesDirty() {
		return
	}
	prev, hadPrev := m.sidebar.Selected()
	lanes := acct.DisplayedLanes()
	m.sidebar.SetLanes(lanes)
	if hadPrev {
		for i, lane := range lanes {
			if lane.Title == prev.Title {
				m.sidebar.SetCursor(i)
				break
			}
		}
	}
	acct.SetCurrentLaneIndex(m.sidebar.cursor)
	acct.SetLanesDirty(false)
	m.showSelectedLane()
}

func (m *model) showSelectedLane() {
	m.statusBar.setPosition(m.current().ScreenName(), m.sidebar.cursor, len(m.sidebar.lanes))
	if lane, ok := m.sidebar.Selected(); ok {
		m.detail.ShowLane(lane)
		return
	}
	m.detail.Clear()
}

// saveCurrentLane persists the lane under the cursor so the next start opens
// on it.
func (m *model) saveCurrentLane() {
	if m.sidebar.cursor >= m.current().DisplayedLaneCount() {
		return
	}
	if err := m.svc.SetCurrentLane(context.Background(), m.current(), m.sidebar.cursor); err != nil {
		m.statusBar.setError(fmt.Sprintf("Error: %v", err))
	}
}

// --- layout helpers ---

func (m model) layoutWidths() (sidebarWidth, contentWidth int) {
	sidebarWidth = m.width / 4
	if sidebarWidth < 20 {
		sidebarWidth = 20
	}
	contentWidth = m.width - sidebarWidth - 2
	return
}

func (m *model) resizeSubModels() {
	sidebarWidth, contentWidth := m.layoutWidths()
	contentHeight := m.height - 3

	// sidebarStyle: Border(2h + 2v) + Padding(2h + 2v) = 4h, 4v
	m.sidebar.SetSize(sidebarWidth-4, contentHeight-4)

	// detailStyle: Border(2h + 2v) + Padding(4h + 2v) = 6h, 4v; one line for tabs.
	m.detail.SetSize(contentWidth-6, contentHeight-5)
	m.editor.SetSize(contentWidth-6, contentHeight-5)
}

// --- async commands ---

func (m model) refreshListsCmd(force bool) tea.Cmd {
	acct := m.current()
	if m.provider == nil {
		if m.providerErr == nil {
			return nil
		}
		err := m.providerErr
		return func() tea.Msg {
			return errMsg{err: err}
		}
	}
	if !force && !acct.ShouldRefreshLists() {
		return nil
	}

	p, id := m.provider, acct.ID()
	return func() tea.Msg {
		lists, err := p.ListLists(context.Background())
		if err != nil {
			return errMsg{err: fmt.Errorf("failed to fetch lists: %w", err)}
		}
		return listsFetchedMsg{accountID: id, lists: lists}
	}
}

func (m model) loadProfileImageCmd() tea.Cmd {
	if m.provider == nil || m.images == nil {
		return nil
	}
	acct, p, f, svc := m.current(), m.provider, m.images, m.svc
	return func() tea.Msg {
		done := make(chan error, 1)
		svc.LoadProfileImage(context.Background(), acct, p, f, func(err error) {
			done <- err
		})
		return profileImageMsg{accountID: acct.ID(), err: <-done}
	}
}

// Run starts the Bubble Tea TUI application.
func Run(opts Options) error {
	m, err := newModel(opts)
	if err != nil {
		return err
	}
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err = prog.Run()
	return err
}
