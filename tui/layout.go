package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/go-mclib/hud/pkg/assets"
	"github.com/go-mclib/hud/pkg/menu"
	"github.com/go-mclib/hud/pkg/render"
	"github.com/go-mclib/hud/pkg/weight"
)

const (
	gridColumns = 5

	cellInnerW = 10
	cellInnerH = 3
	cellW      = cellInnerW + 2
	cellH      = cellInnerH + 2

	headerLines = 2
	barWidth    = 40
)

var (
	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Width(cellInnerW).
			Height(cellInnerH)

	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	moneyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

	highlightColor = lipgloss.Color("205")
	focusColor     = lipgloss.Color("39")

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlightColor).
			Width(menuInnerW)
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

const (
	menuInnerW = 16

	// rows inside the menu box, counted from its top border
	menuRowUse  = 3
	menuRowDrop = 4
	menuRowGive = 5
)

// menuSize is the rendered size of the context menu box.
var menuSize = menu.Size{W: menuInnerW + 2, H: 7}

// slotCell is one slot widget on screen.
type slotCell struct {
	render.StateView
}

func newCells(n int, labelFormat string) []*slotCell {
	cells := make([]*slotCell, n)
	for i, v := range render.NewStateViews(n, labelFormat) {
		cells[i] = &slotCell{StateView: *v}
	}
	return cells
}

func (c *slotCell) view(focused bool) string {
	blank := strings.Repeat(" ", assets.IconWidth)
	icon := []string{blank, blank}
	if c.Icon != nil {
		for i := range icon {
			if i < len(c.Icon.Rows) {
				icon[i] = c.Icon.Rows[i]
			}
		}
	}

	tail := cellInnerW - assets.IconWidth
	lines := []string{
		icon[0] + countStyle.Render(fmt.Sprintf("%*s", tail, c.CountLabel())),
		icon[1] + labelStyle.Render(fmt.Sprintf("%*s", tail, c.Label)),
		nameStyle.Render(ansi.Truncate(c.Name, cellInnerW, "…")),
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, cellInnerW, "")
	}

	style := cellStyle
	switch {
	case c.Highlight:
		style = style.BorderForeground(highlightColor)
	case focused:
		style = style.BorderForeground(focusColor)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderRow(cells []*slotCell, focus int) string {
	views := make([]string, len(cells))
	for i, c := range cells {
		views[i] = c.view(i == focus)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

func renderGrid(cells []*slotCell, cols, focus int) string {
	var rows []string
	for start := 0; start < len(cells); start += cols {
		end := min(start+cols, len(cells))
		rows = append(rows, renderRow(cells[start:end], focus-start))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// layout holds the screen rows where each region starts.
type layout struct {
	mainRows int
	mainTop  int
	quickTop int
	accTop   int
}

func newLayout(mainCells int) layout {
	var l layout
	l.mainRows = (mainCells + gridColumns - 1) / gridColumns
	l.mainTop = headerLines
	l.quickTop = l.mainTop + l.mainRows*cellH + 1
	l.accTop = l.quickTop + cellH + 1
	return l
}

// hit returns the region and position under a screen coordinate.
func (l layout) hit(x, y, mainCells, quickCells, accCells int) (render.RegionKind, int, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col := x / cellW
	switch {
	case y >= l.mainTop && y < l.mainTop+l.mainRows*cellH:
		pos := (y-l.mainTop)/cellH*gridColumns + col
		if col < gridColumns && pos < mainCells {
			return render.RegionMain, pos, true
		}
	case y >= l.quickTop && y < l.quickTop+cellH:
		if col < quickCells {
			return render.RegionQuick, col, true
		}
	case y >= l.accTop && y < l.accTop+cellH:
		if col < accCells {
			return render.RegionAccessory, col, true
		}
	}
	return 0, 0, false
}

// cellAnchor is where keyboard-opened menus appear for a cell.
func (l layout) cellAnchor(kind render.RegionKind, pos int) menu.Point {
	switch kind {
	case render.RegionQuick:
		return menu.Point{X: pos*cellW + cellW/2, Y: l.quickTop + cellH/2}
	default:
		return menu.Point{X: pos%gridColumns*cellW + cellW/2, Y: l.mainTop + pos/gridColumns*cellH + cellH/2}
	}
}

func renderWeightBar(st weight.State, capacity float64) string {
	var b strings.Builder
	fill := weight.Fill(st, barWidth)
	for _, c := range fill {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("█"))
	}
	b.WriteString(labelStyle.Render(strings.Repeat("░", barWidth-len(fill))))
	return fmt.Sprintf("Weight %s %.0f/%.0f (%.0f%%)", b.String(), st.Weight, capacity, st.Percent)
}

func renderMenu(name, useLabel string) string {
	lines := []string{
		menuTitleStyle.Render(ansi.Truncate(name, menuInnerW, "…")),
		labelStyle.Render(strings.Repeat("─", menuInnerW)),
		"[u] " + ansi.Truncate(useLabel, menuInnerW-4, "…"),
		"[d] Drop",
		"[g] Give",
	}
	return menuStyle.Render(strings.Join(lines, "\n"))
}

// overlay draws box over base with its top-left corner at (x, y).
func overlay(base, box string, x, y int) string {
	lines := strings.Split(base, "\n")
	for i, boxLine := range strings.Split(box, "\n") {
		row := y + i
		for row >= len(lines) {
			lines = append(lines, "")
		}
		line := lines[row]
		left := ansi.Truncate(line, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(line, x+ansi.StringWidth(boxLine), "")
		lines[row] = left + boxLine + right
	}
	return strings.Join(lines, "\n")
}
