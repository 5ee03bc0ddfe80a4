package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/lu-zhengda/termlanes/internal/domain"
)

// laneFocusedMsg is sent when the cursor moves to another lane.
type laneFocusedMsg struct {
	index int
}

// laneSelectedMsg is sent when the user opens a lane via Enter.
type laneSelectedMsg struct {
	index int
}

// sidebarModel displays the displayed lanes of the active account.
type sidebarModel struct {
	lanes      []domain.Lane
	cursor     int
	screenName string
	network    domain.SocialNetType
	hasImage   bool
	width      int
	height     int
	focused    bool
}

func newSidebar() sidebarModel {
	return sidebarModel{focused: true}
}

// SetAccount updates the header shown above the lanes.
func (s *sidebarModel) SetAccount(screenName string, network domain.SocialNetType) {
	s.screenName = screenName
	s.network = network
	s.hasImage = false
}

// SetLanes replaces the lane list and keeps the cursor in range.
func (s *sidebarModel) SetLanes(lanes []domain.Lane) {
	s.lanes = lanes
	if s.cursor >= len(lanes) {
		s.cursor = max(len(lanes)-1, 0)
	}
}

// SetCursor moves the cursor to index if it is in range.
func (s *sidebarModel) SetCursor(index int) {
	if index >= 0 && index < len(s.lanes) {
		s.cursor = index
	}
}

// SetSize updates the sidebar dimensions.
func (s *sidebarModel) SetSize(w, h int) {
	s.width = w
	s.height = h
}

// Selected returns the lane under the cursor.
func (s sidebarModel) Selected() (domain.Lane, bool) {
	if s.cursor < 0 || s.cursor >= len(s.lanes) {
		return domain.Lane{}, false
	}
	return s.lanes[s.cursor], true
}

// Update handles key events for lane navigation.
func (s sidebarModel) Update(msg tea.Msg) (sidebarModel, tea.Cmd) {
	if !s.focused || len(s.lanes) == 0 {
		return s, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			s.cursor--
			if s.cursor < 0 {
				s.cursor = len(s.lanes) - 1
			}
			return s, s.focusCmd()
		case key.Matches(msg, keys.Down), key.Matches(msg, keys.Tab):
			s.cursor++
			if s.cursor >= len(s.lanes) {
				s.cursor = 0
			}
			return s, s.focusCmd()
		case key.Matches(msg, keys.Enter):
			index := s.cursor
			return s, func() tea.Msg {
				return laneSelectedMsg{index: index}
			}
		}
	}

	return s, nil
}

func (s sidebarModel) focusCmd() tea.Cmd {
	index := s.cursor
	return func() tea.Msg {
		return laneFocusedMsg{index: index}
	}
}

// View renders the sidebar.
func (s sidebarModel) View() string {
	var b strings.Builder
	width := max(s.width, 10)

	b.WriteString(titleStyle.Render("termlanes"))
	b.WriteString("\n")
	if s.screenName != "" {
		header := fmt.Sprintf("@%s", s.screenName)
		if s.hasImage {
			header = "◉ " + header
		}
		b.WriteString(mutedTextStyle.Render(truncate(header, width)))
		b.WriteString("\n")
		b.WriteString(mutedTextStyle.Render(s.network.DisplayName()))
	}
	b.WriteString("\n\n")

	if len(s.lanes) == 0 {
		b.WriteString(mutedTextStyle.Render("No lanes displayed"))
		return b.String()
	}

	for i, lane := range s.lanes {
		b.WriteString(s.renderLine(lane, i))
		b.WriteString("\n")
	}
	return b.String()
}

// renderLine renders a single lane line with cursor highlighting.
func (s sidebarModel) renderLine(lane domain.Lane, idx int) string {
	prefix := "  "
	if idx == s.cursor {
		prefix = "▶ "
	}
	width := max(s.width, 10)
	line := prefix + truncate(lane.Title, width-2)

	// Pad to width so highlight covers the full line.
	padded := lipgloss.NewStyle().Width(width).Render(line)

	if s.focused && idx == s.cursor {
		return selectedStyle.Render(padded)
	}
	return padded
}

// truncate shortens s to fit within width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
