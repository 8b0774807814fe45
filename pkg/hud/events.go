package hud

import (
	"github.com/go-mclib/hud/pkg/bridge"
	"github.com/go-mclib/hud/pkg/inventory"
)

// SetItems replaces every main inventory slot. A malformed payload is logged
// and the current contents are kept.
func (h *HUD) SetItems(payload string) {
	items, err := inventory.ParseItems(payload)
	if err != nil {
		h.logger.Printf("hud: setItems: %v", err)
		return
	}
	h.replaceItems(items)
}

func (h *HUD) replaceItems(items []inventory.Item) {
	if dropped := h.store.ReplaceAll(items); dropped > 0 {
		h.logger.Printf("hud: setItems: skipped %d entries outside %d slots", dropped, h.store.Capacity())
	}
}

// SetAccessories rebuilds the accessory region from payload.
func (h *HUD) SetAccessories(payload string) {
	items, err := inventory.ParseItems(payload)
	if err != nil {
		h.logger.Printf("hud: setAccessories: %v", err)
		return
	}
	if dropped := h.accessories.Replace(items); dropped > 0 {
		h.logger.Printf("hud: setAccessories: skipped %d entries past %d slots", dropped, h.accessories.Len())
	}
	h.renderer.RenderAll()
}

// SetStats updates the player header. Health and armour are kept but not shown.
func (h *HUD) SetStats(stats bridge.Stats) {
	h.stats = stats
}

// Clear empties the main inventory, same as SetItems("[]").
func (h *HUD) Clear() {
	h.replaceItems(nil)
}

// AddItem places a single item, replacing whatever the slot held.
func (h *HUD) AddItem(item inventory.Item) {
	if err := h.store.SetSlot(item.Slot, &item); err != nil {
		h.logger.Printf("hud: addItem: %v", err)
	}
}

// AddUsedItem is reserved by the host protocol and does nothing yet.
func (h *HUD) AddUsedItem(slot int, model string) {}

var _ bridge.Handler = (*HUD)(nil)
