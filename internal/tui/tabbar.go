package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lu-zhengda/termlanes/internal/domain"
)

const maxTabTitle = 16

// renderTabBar renders the displayed lanes as a row of tabs with active
// highlighted. Tabs that do not fit in width are replaced by an ellipsis.
func renderTabBar(lanes []domain.Lane, active, width int) string {
	if len(lanes) == 0 {
		return mutedTextStyle.Render("no lanes")
	}

	var tabs []string
	used := 0
	for i, lane := range lanes {
		style := tabStyle
		if i == active {
			style = activeTabStyle
		}
		tab := style.Render(truncate(lane.Title, maxTabTitle))
		w := lipgloss.Width(tab)
		if width > 0 && used+w > width-1 {
			tabs = append(tabs, mutedTextStyle.Render("…"))
			break
		}
		tabs = append(tabs, tab)
		used += w
	}
	return strings.Join(tabs, "")
}
