package render

import (
	"fmt"
	"strings"
)

// Icon is a resolved item picture. Rows holds pre-styled terminal lines.
type Icon struct {
	Model       string
	Rows        []string
	Placeholder bool
}

// IconResolver loads the icon for a model id.
type IconResolver interface {
	Resolve(model string) (Icon, error)
}

// SlotView is the minimal capability the renderer needs from a visual slot.
// Clear must keep any fixed decoration (e.g. a quick-slot number).
type SlotView interface {
	Clear()
	SetIcon(icon Icon)
	SetCount(amount int)
	SetName(name string)
	SetHighlight(on bool)
}

// StateView is a SlotView that just remembers what it was told.
type StateView struct {
	Label     string
	Icon      *Icon
	Count     int
	Name      string
	Highlight bool
}

func (v *StateView) Clear() {
	v.Icon = nil
	v.Count = 0
	v.Name = ""
	v.Highlight = false
}

func (v *StateView) SetIcon(icon Icon) { v.Icon = &icon }

func (v *StateView) SetCount(amount int) { v.Count = amount }

func (v *StateView) SetName(name string) { v.Name = name }

func (v *StateView) SetHighlight(on bool) { v.Highlight = on }

func (v *StateView) Empty() bool { return v.Icon == nil }

// CountLabel returns "x<amount>" or "" when no count is shown.
func (v *StateView) CountLabel() string {
	if v.Count <= 1 {
		return ""
	}
	return fmt.Sprintf("x%d", v.Count)
}

// String is a compact debug form, used to compare rendered output.
func (v *StateView) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(v.Label)
	if v.Icon != nil {
		b.WriteString(" icon=" + v.Icon.Model)
		if v.Icon.Placeholder {
			b.WriteString("(placeholder)")
		}
	}
	if c := v.CountLabel(); c != "" {
		b.WriteString(" " + c)
	}
	if v.Name != "" {
		b.WriteString(" name=" + v.Name)
	}
	if v.Highlight {
		b.WriteString(" *")
	}
	b.WriteString("]")
	return b.String()
}

// NewStateViews allocates n views. A non-empty labelFormat gives each view a
// fixed label formatted with its 1-based position.
func NewStateViews(n int, labelFormat string) []*StateView {
	views := make([]*StateView, n)
	for i := range views {
		views[i] = &StateView{}
		if labelFormat != "" {
			views[i].Label = fmt.Sprintf(labelFormat, i+1)
		}
	}
	return views
}

// SlotViews widens a typed view slice to the interface.
func SlotViews[V SlotView](views []V) []SlotView {
	result := make([]SlotView, len(views))
	for i, v := range views {
		result[i] = v
	}
	return result
}
