package hud

import (
	"github.com/go-mclib/hud/pkg/bridge"
	"github.com/go-mclib/hud/pkg/menu"
	"github.com/go-mclib/hud/pkg/render"
)

// Target is what a primary click landed on.
type Target int

const (
	TargetOutside Target = iota
	TargetSlot
	TargetMenu
)

// SetViewport records the screen size used to keep the menu on screen.
func (h *HUD) SetViewport(size menu.Size) { h.viewport = size }

// SecondaryClick opens the context menu for the slot at pos in a region.
// Empty slots and accessory slots are ignored.
func (h *HUD) SecondaryClick(kind render.RegionKind, pos int, at menu.Point) bool {
	slot, ok := h.renderer.SlotAt(kind, pos)
	if !ok {
		return false
	}
	if !h.menu.Show(slot, h.store.Get(slot), at, h.viewport, h.cfg.MenuSize) {
		return false
	}
	h.renderer.SetActive(slot, true)
	return true
}

// Click handles a primary click. Anything but the menu itself hides it.
func (h *HUD) Click(target Target) {
	if target == TargetMenu {
		return
	}
	h.hideMenu()
}

// Key handles a key press and reports whether it was consumed.
// Escape and m hide an open menu, otherwise they close the inventory.
func (h *HUD) Key(key string) bool {
	switch key {
	case "esc", "escape", "m":
		if h.menu.Visible() {
			h.hideMenu()
			return true
		}
		h.CloseInventory()
		return true
	}
	return false
}

func (h *HUD) hideMenu() {
	if !h.menu.Visible() {
		return
	}
	h.menu.Hide()
	h.renderer.SetActive(0, false)
}

func (h *HUD) Use() error { return h.dispatch(menu.ActionUse) }

func (h *HUD) Drop() error { return h.dispatch(menu.ActionDrop) }

// Give only closes the menu; the host has no give intent.
func (h *HUD) Give() error { return h.dispatch(menu.ActionGive) }

func (h *HUD) dispatch(action menu.Action) error {
	err := h.menu.Dispatch(action, h.emitAction)
	h.renderer.SetActive(0, false)
	if err != nil {
		h.logger.Printf("hud: %s: %v", action, err)
	}
	return err
}

func (h *HUD) emitAction(action menu.Action, slot int) error {
	if h.emit == nil {
		return nil
	}
	switch action {
	case menu.ActionUse:
		return bridge.UseItem(h.emit, slot)
	case menu.ActionDrop:
		return bridge.DropItem(h.emit, slot)
	}
	return nil
}

// CloseInventory hides the menu and tells the host the panel was closed.
func (h *HUD) CloseInventory() {
	h.hideMenu()
	h.closed = true
	if h.emit == nil {
		return
	}
	if err := bridge.Close(h.emit); err != nil {
		h.logger.Printf("hud: close: %v", err)
	}
}

// Open shows the panel again after CloseInventory.
func (h *HUD) Open() { h.closed = false }

// NextPage and PrevPage flip the main grid without touching the store.
func (h *HUD) NextPage() bool { return h.renderer.NextPage() }

func (h *HUD) PrevPage() bool { return h.renderer.PrevPage() }

// SlotAt maps a region position to a store slot.
func (h *HUD) SlotAt(kind render.RegionKind, pos int) (int, bool) {
	return h.renderer.SlotAt(kind, pos)
}
