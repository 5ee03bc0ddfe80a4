package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type statusBar struct {
	message       string
	width         int
	isError       bool
	multiAccount  bool
	editorVisible bool

	// position of the current lane, shown next to the shortcuts.
	screenName string
	lane       int
	laneCount  int
}

func newStatusBar() statusBar {
	return statusBar{message: "Ready"}
}

func (s *statusBar) setMessage(msg string) {
	s.message = msg
	s.isError = false
}

func (s *statusBar) setError(msg string) {
	s.message = msg
	s.isError = true
}

func (s *statusBar) setPosition(screenName string, lane, count int) {
	s.screenName = screenName
	s.lane = lane
	s.laneCount = count
}

func (s statusBar) View() string {
	msgStyle := statusBarStyle
	if s.isError {
		msgStyle = msgStyle.Foreground(errorColor)
	}

	left := s.message
	right := s.position() + "  " + mutedTextStyle.Render(s.shortcuts())

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}

	content := left + lipgloss.NewStyle().Width(gap).Render("") + right
	return msgStyle.Width(s.width).Render(content)
}

func (s statusBar) position() string {
	if s.screenName == "" {
		return ""
	}
	if s.laneCount == 0 {
		return "@" + s.screenName
	}
	return fmt.Sprintf("@%s %d/%d", s.screenName, s.lane+1, s.laneCount)
}

func (s statusBar) shortcuts() string {
	if s.editorVisible {
		return "j/k:nav  space:show/hide  esc:done"
	}
	base := "j/k:nav  tab:next  enter:open  e:edit  r:refresh"
	if s.multiAccount {
		return base + "  @:account"
	}
	return base
}
