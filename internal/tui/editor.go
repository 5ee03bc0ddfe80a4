package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lu-zhengda/termlanes/internal/domain"
)

// Messages emitted by editorModel.

// laneToggledMsg names list lanes by listID, since a list may share its
// name with another lane. listID is 0 for built-in lanes.
type laneToggledMsg struct {
	title   string
	listID  int64
	display bool
}

type closeEditorMsg struct{}

// editorModel lists every lane, displayed or not, and toggles their display.
type editorModel struct {
	lanes   []domain.Lane
	cursor  int
	offset  int
	width   int
	height  int
	visible bool
}

func newEditor() editorModel {
	return editorModel{}
}

// Open shows the editor for lanes.
func (e *editorModel) Open(lanes []domain.Lane) {
	e.visible = true
	e.cursor = 0
	e.offset = 0
	e.SetLanes(lanes)
}

// SetLanes refreshes the lanes while keeping the cursor position.
func (e *editorModel) SetLanes(lanes []domain.Lane) {
	e.lanes = lanes
	if e.cursor >= len(lanes) {
		e.cursor = max(len(lanes)-1, 0)
	}
	e.adjustScroll()
}

func (e *editorModel) Close() {
	e.visible = false
}

func (e editorModel) IsVisible() bool {
	return e.visible
}

// SetSize updates the dimensions available for rendering.
func (e *editorModel) SetSize(w, h int) {
	e.width = w
	e.height = h
	e.adjustScroll()
}

func (e editorModel) Update(msg tea.Msg) (editorModel, tea.Cmd) {
	if !e.visible {
		return e, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if e.cursor > 0 {
				e.cursor--
				e.adjustScroll()
			}

		case key.Matches(msg, keys.Down):
			if e.cursor < len(e.lanes)-1 {
				e.cursor++
				e.adjustScroll()
			}

		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if e.cursor >= len(e.lanes) {
				return e, nil
			}
			lane := e.lanes[e.cursor]
			msg := laneToggledMsg{title: lane.Title, display: !lane.Display}
			if lane.Type == domain.LaneUserListTimeline {
				msg.listID, _ = strconv.ParseInt(lane.Identifier, 10, 64)
			}
			return e, func() tea.Msg {
				return msg
			}

		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Edit):
			return e, func() tea.Msg {
				return closeEditorMsg{}
			}
		}
	}

	return e, nil
}

func (e editorModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Edit lanes"))
	b.WriteString("\n\n")

	if len(e.lanes) == 0 {
		b.WriteString(mutedTextStyle.Render("No lanes"))
		return b.String()
	}

	end := min(e.offset+e.visibleRows(), len(e.lanes))
	width := max(e.width, 20)
	for i := e.offset; i < end; i++ {
		lane := e.lanes[i]
		box := mutedTextStyle.Render("[ ]")
		if lane.Display {
			box = shownStyle.Render("[x]")
		}
		line := box + " " + truncate(lane.Title, width-4)
		if i == e.cursor {
			line = selectedStyle.Render(lipgloss.NewStyle().Width(width).Render(line))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// visibleRows excludes the two header lines.
func (e editorModel) visibleRows() int {
	if e.height < 3 {
		return 1
	}
	return e.height - 2
}

func (e *editorModel) adjustScroll() {
	visible := e.visibleRows()
	if e.cursor < e.offset {
		e.offset = e.cursor
	}
	if e.cursor >= e.offset+visible {
		e.offset = e.cursor - visible + 1
	}
}
