package tui

import (
	"fmt"
	"strings"

	"github.com/lu-zhengda/termlanes/internal/domain"
)

// detailModel shows what a lane fetches.
type detailModel struct {
	lane       domain.Lane
	hasLane    bool
	screenName string
	imageSize  int
	width      int
	height     int
}

func newDetail() detailModel {
	return detailModel{}
}

// ShowLane sets the lane being described.
func (d *detailModel) ShowLane(lane domain.Lane) {
	d.lane = lane
	d.hasLane = true
}

// Clear removes the described lane.
func (d *detailModel) Clear() {
	d.lane = domain.Lane{}
	d.hasLane = false
}

// SetSize updates the pane dimensions.
func (d *detailModel) SetSize(w, h int) {
	d.width = w
	d.height = h
}

func (d detailModel) View() string {
	if !d.hasLane {
		return mutedTextStyle.Render("Select a lane")
	}

	width := max(d.width, 20)
	var b strings.Builder
	b.WriteString(titleStyle.Render(truncate(d.lane.Title, width)))
	b.WriteString("\n\n")

	field := func(name, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", name)))
		b.WriteString(" ")
		b.WriteString(truncate(value, width-11))
		b.WriteString("\n")
	}

	field("Type", string(d.lane.Type))
	field("Content", d.lane.Content.String())
	if d.lane.Identifier != "" {
		field("List ID", d.lane.Identifier)
	}
	if d.lane.Type == domain.LaneUserProfile && d.screenName != "" {
		field("User", "@"+d.screenName)
		if d.imageSize > 0 {
			field("Avatar", fmt.Sprintf("%d bytes cached", d.imageSize))
		}
	}
	return b.String()
}
