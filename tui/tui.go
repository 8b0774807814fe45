package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-mclib/hud/pkg/assets"
	"github.com/go-mclib/hud/pkg/bridge"
	"github.com/go-mclib/hud/pkg/hud"
	"github.com/go-mclib/hud/pkg/menu"
	"github.com/go-mclib/hud/pkg/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Options configure the TUI. Logger defaults to one that writes into the
// log pane.
type Options struct {
	Emitter     bridge.Emitter
	Icons       render.IconResolver
	Logger      *log.Logger
	MaxLogLines int
}

// TUI is the bubbletea model for the inventory panel. All HUD state changes
// happen inside Update, so inbound frames and input are applied in order on
// one goroutine.
type TUI struct {
	hud    *hud.HUD
	logger *log.Logger

	main  []*slotCell
	quick []*slotCell
	acc   []*slotCell

	layout layout
	keys   keyMap
	help   help.Model

	viewport    viewport.Model
	logs        []string
	maxLogLines int
	ready       bool
	width       int
	height      int
	quitting    bool

	focusRegion render.RegionKind
	focusPos    int
}

// New creates a TUI and the HUD it drives.
func New(cfg hud.Config, opts Options) *TUI {
	cfg.MenuSize = menuSize
	t := &TUI{
		main:        newCells(cfg.PageSize, ""),
		quick:       newCells(cfg.QuickSlots, "%d"),
		acc:         newCells(cfg.AccessorySlots, ""),
		keys:        defaultKeyMap(),
		help:        help.New(),
		maxLogLines: opts.MaxLogLines,
		logger:      opts.Logger,
	}
	if t.logger == nil {
		t.logger = log.New(&lineWriter{t: t}, "", log.LstdFlags)
	}
	t.layout = newLayout(len(t.main))
	t.hud = hud.New(cfg, hud.Options{
		Emitter:     opts.Emitter,
		Icons:       opts.Icons,
		Placeholder: assets.Placeholder(),
		Logger:      t.logger,
		Views: hud.Views{
			Main:        render.SlotViews(t.main),
			Quick:       render.SlotViews(t.quick),
			Accessories: render.SlotViews(t.acc),
		},
	})
	return t
}

// HUD returns the driven HUD.
func (t *TUI) HUD() *hud.HUD { return t.hud }

// Logger returns the logger writing into the log pane.
func (t *TUI) Logger() *log.Logger { return t.logger }

// Init initializes the TUI
func (t *TUI) Init() tea.Cmd {
	return nil
}

// Update handles TUI updates
func (t *TUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return t, t.handleKey(msg)

	case tea.MouseMsg:
		t.handleMouse(msg)
		return t, nil

	case tea.WindowSizeMsg:
		logHeight := max(msg.Height-t.layout.accTop-cellH-4, 3)
		if !t.ready {
			t.viewport = viewport.New(msg.Width, logHeight)
			t.viewport.SetContent(t.renderLogs())
			t.ready = true
		} else {
			t.viewport.Width = msg.Width
			t.viewport.Height = logHeight
		}
		t.width = msg.Width
		t.height = msg.Height
		t.help.Width = msg.Width
		t.hud.SetViewport(menu.Size{W: msg.Width, H: msg.Height})

	case FrameMsg:
		t.hud.Deliver(bridge.Frame(msg))
		return t, nil

	case LogMsg:
		t.AddLog(string(msg))
		return t, nil
	}

	if t.ready {
		t.viewport, cmd = t.viewport.Update(msg)
	}
	return t, cmd
}

func (t *TUI) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, t.keys.Quit):
		t.quitting = true
		return tea.Quit
	case key.Matches(msg, t.keys.Open):
		t.hud.Open()
		return nil
	}

	if t.hud.Closed() {
		return nil
	}

	switch {
	case key.Matches(msg, t.keys.Close):
		t.hud.Key(msg.String())
	case key.Matches(msg, t.keys.Use):
		if t.hud.Menu().Visible() {
			t.hud.Use()
		}
	case key.Matches(msg, t.keys.Drop):
		if t.hud.Menu().Visible() {
			t.hud.Drop()
		}
	case key.Matches(msg, t.keys.Give):
		if t.hud.Menu().Visible() {
			t.hud.Give()
		}
	case key.Matches(msg, t.keys.Menu):
		t.hud.Click(hud.TargetSlot)
		t.hud.SecondaryClick(t.focusRegion, t.focusPos, t.layout.cellAnchor(t.focusRegion, t.focusPos))
	case key.Matches(msg, t.keys.PrevPage):
		t.hud.PrevPage()
	case key.Matches(msg, t.keys.NextPage):
		t.hud.NextPage()
	case key.Matches(msg, t.keys.Switch):
		if t.focusRegion == render.RegionMain {
			t.focusRegion, t.focusPos = render.RegionQuick, min(t.focusPos%gridColumns, len(t.quick)-1)
		} else {
			t.focusRegion = render.RegionMain
		}
	case key.Matches(msg, t.keys.Left):
		t.moveFocus(-1)
	case key.Matches(msg, t.keys.Right):
		t.moveFocus(1)
	case key.Matches(msg, t.keys.Up):
		t.moveFocus(-gridColumns)
	case key.Matches(msg, t.keys.Down):
		t.moveFocus(gridColumns)
	}
	return nil
}

func (t *TUI) moveFocus(delta int) {
	n := len(t.main)
	if t.focusRegion == render.RegionQuick {
		if delta != 1 && delta != -1 {
			return
		}
		n = len(t.quick)
	}
	if pos := t.focusPos + delta; pos >= 0 && pos < n {
		t.focusPos = pos
	}
}

func (t *TUI) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || t.hud.Closed() {
		return
	}

	if m := t.hud.Menu(); m.Visible() && msg.Button == tea.MouseButtonLeft {
		a := m.Anchor()
		if msg.X >= a.X && msg.X < a.X+menuSize.W && msg.Y >= a.Y && msg.Y < a.Y+menuSize.H {
			switch msg.Y - a.Y {
			case menuRowUse:
				t.hud.Use()
			case menuRowDrop:
				t.hud.Drop()
			case menuRowGive:
				t.hud.Give()
			default:
				t.hud.Click(hud.TargetMenu)
			}
			return
		}
	}

	kind, pos, onSlot := t.layout.hit(msg.X, msg.Y, len(t.main), len(t.quick), len(t.acc))
	switch msg.Button {
	case tea.MouseButtonLeft:
		if !onSlot {
			t.hud.Click(hud.TargetOutside)
			return
		}
		t.hud.Click(hud.TargetSlot)
		if kind != render.RegionAccessory {
			t.focusRegion, t.focusPos = kind, pos
		}
	case tea.MouseButtonRight:
		if onSlot {
			t.hud.SecondaryClick(kind, pos, menu.Point{X: msg.X, Y: msg.Y})
		}
	}
}

// View renders the TUI
func (t *TUI) View() string {
	if t.quitting {
		return "Goodbye!\n"
	}

	if !t.ready {
		return "Initializing..."
	}

	stats := t.hud.Stats()
	name := stats.Name
	if name == "" {
		name = "Inventory"
	}
	title := titleStyle.Render(name) + "  " + moneyStyle.Render(t.hud.MoneyLabel())
	if pages := t.hud.PageCount(); pages > 1 {
		title += helpStyle.Render(fmt.Sprintf("  page %d/%d", t.hud.Page(), pages))
	}

	if t.hud.Closed() {
		return fmt.Sprintf("%s\n\n%s\n%s",
			title,
			helpStyle.Render("Inventory closed • i: reopen • ctrl+c: quit"),
			t.viewport.View(),
		)
	}

	mainFocus, quickFocus := -1, -1
	if t.focusRegion == render.RegionQuick {
		quickFocus = t.focusPos
	} else {
		mainFocus = t.focusPos
	}

	wcfg := t.hud.WeightConfig()
	screen := strings.Join([]string{
		title,
		"",
		renderGrid(t.main, gridColumns, mainFocus),
		sectionStyle.Render("Quick slots"),
		renderRow(t.quick, quickFocus),
		sectionStyle.Render("Accessories"),
		renderRow(t.acc, -1),
		"",
		renderWeightBar(t.hud.Weight(), wcfg.MaxCapacity),
		helpStyle.Render(t.help.View(t.keys)),
		t.viewport.View(),
	}, "\n")

	if m := t.hud.Menu(); m.Visible() {
		a := m.Anchor()
		screen = overlay(screen, renderMenu(m.ItemName(), m.UseLabel()), a.X, a.Y)
	}
	return screen
}

// AddLog adds a log message to the TUI
func (t *TUI) AddLog(msg string) {
	t.logs = append(t.logs, msg)

	// trim logs
	if t.maxLogLines > 0 && len(t.logs) > t.maxLogLines {
		t.logs = t.logs[len(t.logs)-t.maxLogLines:]
	}

	if t.ready {
		// do not scroll if not at bottom, to prevent flickering
		wasAtBottom := t.viewport.AtBottom()
		t.viewport.SetContent(t.renderLogs())
		if wasAtBottom {
			t.viewport.GotoBottom()
		}
	}
}

func (t *TUI) renderLogs() string {
	return strings.Join(t.logs, "\n")
}

// LogMsg is a message type for logging
type LogMsg string

// FrameMsg carries one inbound host frame into the update loop.
type FrameMsg bridge.Frame

// lineWriter feeds log output straight into the log pane. It is only safe
// when logging happens inside Update, which is where the HUD logs.
type lineWriter struct {
	t *TUI
}

func (w *lineWriter) Write(p []byte) (int, error) {
	if msg := strings.TrimSuffix(string(p), "\n"); msg != "" {
		w.t.AddLog(msg)
	}
	return len(p), nil
}

// Writer is an io.Writer that sends output to the TUI
type Writer struct {
	program *tea.Program
}

// NewWriter creates a new TUI Writer
func NewWriter(program *tea.Program) *Writer {
	return &Writer{program: program}
}

// Write implements io.Writer
func (w *Writer) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")
	if msg != "" && w.program != nil {
		w.program.Send(LogMsg(msg))
	}
	return len(p), nil
}

// Start creates the TUI program. Inbound frames should be passed to Deliver;
// the returned Writer forwards log output from other goroutines.
func Start(cfg hud.Config, opts Options) (*tea.Program, *TUI, *Writer) {
	t := New(cfg, opts)
	p := tea.NewProgram(t, tea.WithAltScreen(), tea.WithMouseCellMotion())
	return p, t, NewWriter(p)
}

// Deliver sends an inbound frame to the given program
func Deliver(program *tea.Program, f bridge.Frame) {
	if program != nil {
		program.Send(FrameMsg(f))
	}
}
