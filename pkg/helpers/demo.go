package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"sync"

	"github.com/go-mclib/hud/pkg/bridge"
	"github.com/go-mclib/hud/pkg/inventory"
)

// DemoItems is the starting inventory of the demo host.
func DemoItems() []inventory.Item {
	return []inventory.Item{
		{Slot: 0, Model: "weapon_pistol", Amount: 1, Name: "Pistol", UseLabel: "Equip"},
		{Slot: 1, Model: "ammo_pistol", Amount: 48, Name: "Ammo"},
		{Slot: 2, Model: "water", Amount: 3, Name: "Water", UseLabel: "Drink"},
		{Slot: 4, Model: "burger", Amount: 2, Name: "Burger", UseLabel: "Eat"},
		{Slot: 7, Model: "medkit", Amount: 1, Name: "Medkit"},
		{Slot: 12, Model: "phone", Amount: 1, Name: "Phone"},
		{Slot: 18, Model: "lockpick", Amount: 5, Name: "Lockpick"},
	}
}

// DemoAccessories is the accessory list of the demo host.
func DemoAccessories() []inventory.Item {
	return []inventory.Item{
		{Model: "hat_cap", Amount: 1},
		{Model: "glasses_aviator", Amount: 1},
		{Model: "watch_gold", Amount: 1},
	}
}

// DemoStats are the player stats sent by the demo host.
func DemoStats() []any {
	return []any{0, "Demo Player", 100, 50, 25750}
}

// DemoHost plays the host side in-process: it answers use/drop intents by
// pushing an updated inventory back. Every outgoing frame is queued while the
// state lock is held and delivered by a single worker, so the HUD always sees
// snapshots in the order they were taken.
type DemoHost struct {
	mu      sync.Mutex
	items   map[int]inventory.Item
	outbox  []outgoing
	deliver func(bridge.Frame)
	logger  *log.Logger

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type outgoing struct {
	frame *bridge.Frame
	note  string
}

func NewDemoHost() *DemoHost {
	h := &DemoHost{
		items:  make(map[int]inventory.Item),
		logger: log.New(io.Discard, "", 0),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	for _, it := range DemoItems() {
		h.items[it.Slot] = it
	}
	return h
}

// Attach sets where frames go and where intents are logged, and starts the
// delivery worker. Call it once.
func (h *DemoHost) Attach(deliver func(bridge.Frame), logger *log.Logger) {
	h.deliver = deliver
	if logger != nil {
		h.logger = logger
	}
	go h.run()
}

// Close stops the delivery worker. Queued frames are dropped.
func (h *DemoHost) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Start queues the initial stats, accessories and items.
func (h *DemoHost) Start() {
	acc, _ := json.Marshal(DemoAccessories())

	h.mu.Lock()
	h.queueLocked(bridge.EventSetStats, DemoStats()...)
	h.queueLocked(bridge.EventSetAccessories, string(acc))
	h.queueItemsLocked()
	h.mu.Unlock()
	h.notify()
}

// Emit implements bridge.Emitter. It is called from the UI event loop and
// never blocks on delivery.
func (h *DemoHost) Emit(event string, args ...any) error {
	slot := -1
	if len(args) > 0 {
		if s, ok := args[0].(int); ok {
			slot = s
		}
	}

	h.mu.Lock()
	h.outbox = append(h.outbox, outgoing{note: fmt.Sprintf("demo: %s %v", event, args)})
	switch event {
	case bridge.EventUseItem:
		if it, ok := h.items[slot]; ok {
			it.Amount--
			if it.Amount <= 0 {
				delete(h.items, slot)
			} else {
				h.items[slot] = it
			}
			h.queueItemsLocked()
		}
	case bridge.EventDropItem:
		if _, ok := h.items[slot]; ok {
			delete(h.items, slot)
			h.queueItemsLocked()
		}
	}
	h.mu.Unlock()
	h.notify()
	return nil
}

// Items returns the host-side inventory in slot order.
func (h *DemoHost) Items() []inventory.Item {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.itemsLocked()
}

func (h *DemoHost) itemsLocked() []inventory.Item {
	items := make([]inventory.Item, 0, len(h.items))
	for _, it := range h.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Slot < items[j].Slot })
	return items
}

// Give puts it into the first free slot and announces it with addItem.
func (h *DemoHost) Give(it inventory.Item) (int, bool) {
	h.mu.Lock()
	slot := -1
	for i := 0; i < inventory.DefaultCapacity; i++ {
		if _, taken := h.items[i]; !taken {
			slot = i
			break
		}
	}
	if slot >= 0 {
		it.Slot = slot
		h.items[slot] = it
		h.queueLocked(bridge.EventAddItem, it.Slot, it.Model, it.Amount, it.Name)
	}
	h.mu.Unlock()

	if slot < 0 {
		return 0, false
	}
	h.notify()
	return slot, true
}

func (h *DemoHost) queueItemsLocked() {
	payload, _ := json.Marshal(h.itemsLocked())
	h.queueLocked(bridge.EventSetItems, string(payload))
}

func (h *DemoHost) queueLocked(event string, args ...any) {
	f, err := bridge.NewFrame(event, args...)
	if err != nil {
		h.outbox = append(h.outbox, outgoing{note: fmt.Sprintf("demo: %v", err)})
		return
	}
	h.outbox = append(h.outbox, outgoing{frame: &f})
}

func (h *DemoHost) notify() {
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

func (h *DemoHost) run() {
	for {
		select {
		case <-h.done:
			return
		case <-h.wake:
		}

		h.mu.Lock()
		batch := h.outbox
		h.outbox = nil
		h.mu.Unlock()

		for _, out := range batch {
			if out.note != "" {
				h.logger.Print(out.note)
			}
			if out.frame != nil && h.deliver != nil {
				h.deliver(*out.frame)
			}
		}
	}
}
