package helpers

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-mclib/hud/pkg/bridge"
	"github.com/go-mclib/hud/pkg/hud"
	"github.com/go-mclib/hud/pkg/inventory"
)

type frameSink struct {
	mu     sync.Mutex
	frames []bridge.Frame
	got    chan struct{}
}

func newSink() *frameSink {
	return &frameSink{got: make(chan struct{}, 64)}
}

func (s *frameSink) deliver(f bridge.Frame) {
	s.mu.Lock()
	s.frames = append(s.frames, f)
	s.mu.Unlock()
	s.got <- struct{}{}
}

func (s *frameSink) all() []bridge.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bridge.Frame(nil), s.frames...)
}

func (s *frameSink) last() bridge.Frame {
	frames := s.all()
	return frames[len(frames)-1]
}

// wait blocks until n more frames arrived.
func (s *frameSink) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-s.got:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for frame %d of %d", i+1, n)
		}
	}
}

func newTestDemoHost(t *testing.T) (*DemoHost, *frameSink) {
	t.Helper()
	sink := newSink()
	h := NewDemoHost()
	h.Attach(sink.deliver, nil)
	t.Cleanup(h.Close)
	return h, sink
}

func lastItems(t *testing.T, f bridge.Frame) []inventory.Item {
	t.Helper()
	if f.Event != bridge.EventSetItems {
		t.Fatalf("event = %s, want %s", f.Event, bridge.EventSetItems)
	}
	var payload string
	if err := json.Unmarshal(f.Args[0], &payload); err != nil {
		t.Fatal(err)
	}
	items, err := inventory.ParseItems(payload)
	if err != nil {
		t.Fatal(err)
	}
	return items
}

func amountAt(items []inventory.Item, slot int) int {
	for _, it := range items {
		if it.Slot == slot {
			return it.Amount
		}
	}
	return 0
}

func TestDemoHostStart(t *testing.T) {
	h, sink := newTestDemoHost(t)
	h.Start()
	sink.wait(t, 3)

	frames := sink.all()
	want := []string{bridge.EventSetStats, bridge.EventSetAccessories, bridge.EventSetItems}
	for i, ev := range want {
		if frames[i].Event != ev {
			t.Errorf("frame %d = %s, want %s", i, frames[i].Event, ev)
		}
	}
	if items := lastItems(t, frames[2]); len(items) != len(DemoItems()) {
		t.Errorf("seeded %d items, want %d", len(items), len(DemoItems()))
	}
}

func TestDemoHostUseAndDrop(t *testing.T) {
	h, sink := newTestDemoHost(t)

	// water has 3
	if err := h.Emit(bridge.EventUseItem, 2); err != nil {
		t.Fatal(err)
	}
	sink.wait(t, 1)
	if got := amountAt(lastItems(t, sink.last()), 2); got != 2 {
		t.Errorf("water amount = %d, want 2", got)
	}

	if err := h.Emit(bridge.EventDropItem, 0); err != nil {
		t.Fatal(err)
	}
	sink.wait(t, 1)
	if got := amountAt(lastItems(t, sink.last()), 0); got != 0 {
		t.Error("dropped pistol still present")
	}

	// unknown slots and other intents change nothing
	_ = h.Emit(bridge.EventDropItem, 24)
	_ = h.Emit(bridge.EventClose)
	select {
	case <-sink.got:
		t.Error("no-op intent pushed an update")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDemoHostRepliesInOrder(t *testing.T) {
	h, sink := newTestDemoHost(t)

	// ammo starts at 48
	const uses = 10
	for i := 0; i < uses; i++ {
		if err := h.Emit(bridge.EventUseItem, 1); err != nil {
			t.Fatal(err)
		}
	}
	sink.wait(t, uses)

	frames := sink.all()
	if len(frames) != uses {
		t.Fatalf("got %d frames, want %d", len(frames), uses)
	}
	for i, f := range frames {
		if got, want := amountAt(lastItems(t, f), 1), 47-i; got != want {
			t.Errorf("reply %d ammo = %d, want %d", i, got, want)
		}
	}

	last := lastItems(t, frames[len(frames)-1])
	current := h.Items()
	if len(last) != len(current) {
		t.Fatalf("last reply has %d items, host has %d", len(last), len(current))
	}
	for i := range last {
		if last[i] != current[i] {
			t.Errorf("last reply item %d = %+v, host has %+v", i, last[i], current[i])
		}
	}
}

func TestDemoHostGive(t *testing.T) {
	h, sink := newTestDemoHost(t)

	slot, ok := h.Give(inventory.Item{Model: "medkit", Amount: 1, Name: "Medkit"})
	if !ok || slot != 3 {
		t.Fatalf("Give = %d, %v, want 3, true", slot, ok)
	}
	sink.wait(t, 1)
	f := sink.last()
	if f.Event != bridge.EventAddItem || string(f.Args[0]) != "3" {
		t.Errorf("frame = %+v", f)
	}
}

func TestFlagsConfig(t *testing.T) {
	f := Flags{
		Capacity:       50,
		PageSize:       0,
		QuickSlots:     80,
		AccessorySlots: 0,
		UnitWeight:     1.5,
		MaxWeight:      30,
		NoWarningTier:  true,
	}
	cfg := f.Config()
	if cfg.PageSize != 50 || cfg.QuickSlots != 50 || cfg.AccessorySlots != 1 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Weight.UnitWeight != 1.5 || cfg.Weight.MaxCapacity != 30 || cfg.Weight.WarningTier {
		t.Errorf("weight cfg = %+v", cfg.Weight)
	}
}

func TestPrintSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintSchema(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"item"`, `"frame"`, `"useLabel"`, `"event"`} {
		if !strings.Contains(out, want) {
			t.Errorf("schema missing %s", want)
		}
	}
}

func TestFlagsConfigRejectsBadWeights(t *testing.T) {
	f := Flags{Capacity: 25, PageSize: 25, QuickSlots: 5, AccessorySlots: 8, UnitWeight: -3, MaxWeight: -1}
	cfg := f.Config()
	def := hud.DefaultConfig().Weight
	if cfg.Weight.UnitWeight != def.UnitWeight || cfg.Weight.MaxCapacity != def.MaxCapacity {
		t.Errorf("weight cfg = %+v, want defaults %+v", cfg.Weight, def)
	}
}
