package hud

import (
	"log"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/go-mclib/hud/pkg/bridge"
	"github.com/go-mclib/hud/pkg/inventory"
	"github.com/go-mclib/hud/pkg/menu"
	"github.com/go-mclib/hud/pkg/render"
	"github.com/go-mclib/hud/pkg/weight"
)

type Config struct {
	Capacity       int
	PageSize       int
	QuickSlots     int
	AccessorySlots int
	Weight         weight.Config
	MenuSize       menu.Size
	Language       language.Tag
}

func DefaultConfig() Config {
	return Config{
		Capacity:       inventory.DefaultCapacity,
		PageSize:       inventory.DefaultPageSize,
		QuickSlots:     5,
		AccessorySlots: inventory.DefaultAccessorySlots,
		Weight:         weight.DefaultConfig(),
		MenuSize:       menu.Size{W: 18, H: 7},
		Language:       language.English,
	}
}

// Views are the slot widgets for each region. Nil slices leave the region
// out. Main must hold PageSize views.
type Views struct {
	Main        []render.SlotView
	Quick       []render.SlotView
	Accessories []render.SlotView
}

type Options struct {
	Emitter     bridge.Emitter
	Icons       render.IconResolver
	Placeholder render.Icon
	Logger      *log.Logger
	Views       Views
}

// HUD owns the inventory state, its projection and the context menu. It is
// driven from a single goroutine and is not safe for concurrent use.
type HUD struct {
	cfg    Config
	logger *log.Logger
	emit   bridge.Emitter

	store       *inventory.Store
	accessories *inventory.Accessories
	renderer    *render.Renderer
	menu        *menu.Controller
	weight      *weight.Indicator
	dispatcher  *bridge.Dispatcher

	stats    bridge.Stats
	printer  *message.Printer
	viewport menu.Size
	closed   bool
}

func New(cfg Config, opts Options) *HUD {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "", log.LstdFlags)
	}

	h := &HUD{
		cfg:         cfg,
		logger:      logger,
		emit:        opts.Emitter,
		store:       inventory.NewStore(cfg.Capacity, cfg.PageSize),
		accessories: inventory.NewAccessories(cfg.AccessorySlots),
		menu:        menu.New(),
		weight:      weight.NewIndicator(cfg.Weight),
		printer:     message.NewPrinter(cfg.Language),
	}

	var regions []render.Region
	if opts.Views.Main != nil {
		regions = append(regions, render.Region{Kind: render.RegionMain, Views: opts.Views.Main})
	}
	if opts.Views.Quick != nil {
		regions = append(regions, render.Region{Kind: render.RegionQuick, Views: opts.Views.Quick})
	}
	if opts.Views.Accessories != nil {
		regions = append(regions, render.Region{Kind: render.RegionAccessory, Views: opts.Views.Accessories})
	}
	h.renderer = render.NewRenderer(h.store, h.accessories, opts.Icons, opts.Placeholder, regions...)
	h.dispatcher = bridge.NewDispatcher(h)

	h.store.OnChange(h.refresh)
	h.refresh()
	return h
}

func (h *HUD) refresh() {
	h.renderer.RenderAll()
	h.weight.Update(h.store.OccupiedCount())
}

func (h *HUD) Store() *inventory.Store { return h.store }

func (h *HUD) Accessories() *inventory.Accessories { return h.accessories }

func (h *HUD) Menu() *menu.Controller { return h.menu }

func (h *HUD) Weight() weight.State { return h.weight.State() }

func (h *HUD) WeightConfig() weight.Config { return h.weight.Config() }

func (h *HUD) Stats() bridge.Stats { return h.stats }

func (h *HUD) Page() int { return h.renderer.Page() }

func (h *HUD) PageCount() int { return h.store.PageCount() }

func (h *HUD) Config() Config { return h.cfg }

// Closed reports whether the player asked to close the inventory.
func (h *HUD) Closed() bool { return h.closed }

// MoneyLabel formats money the way the host locale does: "$1,234,567".
func (h *HUD) MoneyLabel() string {
	return h.printer.Sprintf("$%d", int64(h.stats.Money))
}

// Deliver routes one inbound frame. Errors are logged and never returned;
// a bad frame leaves the HUD untouched.
func (h *HUD) Deliver(f bridge.Frame) {
	if err := h.dispatcher.Dispatch(f); err != nil {
		h.logger.Printf("hud: dropping %s: %v", f.Event, err)
	}
}

// Dispatcher exposes the inbound table, e.g. to register extra events.
func (h *HUD) Dispatcher() *bridge.Dispatcher { return h.dispatcher }
