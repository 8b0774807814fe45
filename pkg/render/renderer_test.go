package render

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-mclib/hud/pkg/inventory"
)

type mapResolver map[string]Icon

func (m mapResolver) Resolve(model string) (Icon, error) {
	if icon, ok := m[model]; ok {
		return icon, nil
	}
	return Icon{}, fmt.Errorf("no icon for %q", model)
}

type fixture struct {
	store  *inventory.Store
	acc    *inventory.Accessories
	main   []*StateView
	quick  []*StateView
	access []*StateView
	r      *Renderer
}

func newFixture(capacity, pageSize int) *fixture {
	f := &fixture{
		store:  inventory.NewStore(capacity, pageSize),
		acc:    inventory.NewAccessories(3),
		main:   NewStateViews(pageSize, ""),
		quick:  NewStateViews(5, "%d"),
		access: NewStateViews(3, ""),
	}
	icons := mapResolver{
		"weapon_pistol": {Model: "weapon_pistol", Rows: []string{"P"}},
		"water":         {Model: "water", Rows: []string{"W"}},
	}
	f.r = NewRenderer(f.store, f.acc, icons, Icon{Rows: []string{"?"}},
		Region{Kind: RegionMain, Views: SlotViews(f.main)},
		Region{Kind: RegionQuick, Views: SlotViews(f.quick)},
		Region{Kind: RegionAccessory, Views: SlotViews(f.access)},
	)
	return f
}

func dump(views []*StateView) string {
	parts := make([]string, len(views))
	for i, v := range views {
		parts[i] = v.String()
	}
	return strings.Join(parts, "")
}

func TestRenderShowsItemsAtSlots(t *testing.T) {
	f := newFixture(25, 25)
	f.store.ReplaceAll([]inventory.Item{
		{Slot: 0, Model: "weapon_pistol", Amount: 1, Name: "Pistol"},
		{Slot: 7, Model: "water", Amount: 3, Name: "Water"},
		{Slot: 7, Model: "water", Amount: 5, Name: "Water"},
		{Slot: 30, Model: "water", Amount: 1},
	})
	f.r.RenderAll()

	for i, v := range f.main {
		want := i == 0 || i == 7
		if v.Empty() == want {
			t.Errorf("main[%d] empty = %v, want %v", i, v.Empty(), !want)
		}
	}
	if got := f.main[7].CountLabel(); got != "x5" {
		t.Errorf("main[7] count = %q, want x5", got)
	}
	if got := f.main[0].CountLabel(); got != "" {
		t.Errorf("main[0] count = %q, want none for amount 1", got)
	}
	if f.main[0].Name != "Pistol" {
		t.Errorf("main[0] name = %q, want Pistol", f.main[0].Name)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	f := newFixture(25, 25)
	f.store.ReplaceAll([]inventory.Item{
		{Slot: 1, Model: "water", Amount: 2, Name: "Water"},
		{Slot: 4, Model: "unknown_model", Amount: 1},
	})
	f.acc.Replace([]inventory.Item{{Model: "weapon_pistol"}})

	f.r.RenderAll()
	first := dump(f.main) + dump(f.quick) + dump(f.access)
	f.r.RenderAll()
	second := dump(f.main) + dump(f.quick) + dump(f.access)

	if first != second {
		t.Errorf("render not idempotent:\n%s\n%s", first, second)
	}
}

func TestRenderClearsStaleContent(t *testing.T) {
	f := newFixture(25, 25)
	f.store.ReplaceAll([]inventory.Item{{Slot: 2, Model: "water", Amount: 9, Name: "Water"}})
	f.r.RenderAll()
	f.store.ReplaceAll(nil)
	f.r.RenderAll()

	for i, v := range f.main {
		if !v.Empty() || v.Name != "" || v.Count != 0 {
			t.Errorf("main[%d] = %s, want empty", i, v)
		}
	}
}

func TestQuickSlotsMirrorFirstSlots(t *testing.T) {
	f := newFixture(25, 25)
	f.store.ReplaceAll([]inventory.Item{
		{Slot: 2, Model: "water", Amount: 1, Name: "Water"},
		{Slot: 6, Model: "water", Amount: 1, Name: "Far"},
	})
	f.r.RenderAll()

	if f.quick[2].Empty() || f.quick[2].Name != "Water" {
		t.Errorf("quick[2] = %s, want Water", f.quick[2])
	}
	for i, v := range f.quick {
		if i != 2 && !v.Empty() {
			t.Errorf("quick[%d] = %s, want empty", i, v)
		}
		if want := fmt.Sprintf("%d", i+1); v.Label != want {
			t.Errorf("quick[%d] label = %q, want %q", i, v.Label, want)
		}
	}
}

func TestMissingIconFallsBackToPlaceholder(t *testing.T) {
	f := newFixture(25, 25)
	f.store.ReplaceAll([]inventory.Item{{Slot: 0, Model: "prop_crate", Amount: 1}})
	f.r.RenderAll()

	icon := f.main[0].Icon
	if icon == nil {
		t.Fatal("main[0] has no icon")
	}
	if !icon.Placeholder || icon.Model != "prop_crate" || icon.Rows[0] != "?" {
		t.Errorf("icon = %+v, want placeholder for prop_crate", icon)
	}
}

func TestPaging(t *testing.T) {
	f := newFixture(50, 25)
	f.store.ReplaceAll([]inventory.Item{
		{Slot: 0, Model: "water", Amount: 1, Name: "First"},
		{Slot: 25, Model: "water", Amount: 1, Name: "Second"},
	})
	f.r.RenderAll()

	if f.main[0].Name != "First" {
		t.Errorf("page 1 slot 0 = %s, want First", f.main[0])
	}
	if err := f.r.SetPage(2); err != nil {
		t.Fatalf("SetPage(2): %v", err)
	}
	if f.main[0].Name != "Second" {
		t.Errorf("page 2 slot 0 = %s, want Second", f.main[0])
	}
	if idx, ok := f.r.SlotAt(RegionMain, 0); !ok || idx != 25 {
		t.Errorf("SlotAt(main, 0) on page 2 = %d, %v, want 25", idx, ok)
	}
	if f.quick[0].Name != "First" {
		t.Errorf("quick[0] followed paging: %s", f.quick[0])
	}
	if f.store.OccupiedCount() != 2 {
		t.Errorf("paging mutated the store")
	}

	if err := f.r.SetPage(3); !errors.Is(err, ErrPageOutOfRange) {
		t.Errorf("SetPage(3) err = %v, want ErrPageOutOfRange", err)
	}
	if f.r.NextPage() {
		t.Errorf("NextPage() past the last page = true")
	}
	if !f.r.PrevPage() || f.r.Page() != 1 {
		t.Errorf("PrevPage() did not return to page 1")
	}
}

func TestAccessoriesRenderWholesale(t *testing.T) {
	f := newFixture(25, 25)
	f.acc.Replace([]inventory.Item{{Model: "water", Amount: 4, Name: "Hat"}, {Model: "weapon_pistol"}})
	f.r.RenderAll()

	if f.access[0].Empty() || f.access[1].Empty() || !f.access[2].Empty() {
		t.Errorf("accessories = %s", dump(f.access))
	}
	if f.access[0].Name != "" || f.access[0].Count != 0 {
		t.Errorf("accessory shows more than an icon: %s", f.access[0])
	}

	f.acc.Replace(nil)
	f.r.Render(RegionAccessory)
	for i, v := range f.access {
		if !v.Empty() {
			t.Errorf("access[%d] = %s, want empty", i, v)
		}
	}
	if _, ok := f.r.SlotAt(RegionAccessory, 0); ok {
		t.Errorf("SlotAt(accessory) mapped to a store slot")
	}
}

func TestHighlightActiveSlot(t *testing.T) {
	f := newFixture(25, 25)
	f.store.ReplaceAll([]inventory.Item{{Slot: 3, Model: "water", Amount: 1}})

	f.r.SetActive(3, true)
	if !f.main[3].Highlight || !f.quick[3].Highlight {
		t.Errorf("slot 3 not highlighted in main and quick")
	}
	f.r.SetActive(0, false)
	if f.main[3].Highlight || f.quick[3].Highlight {
		t.Errorf("highlight survived SetActive(false)")
	}
}

func TestRegionKindString(t *testing.T) {
	if RegionQuick.String() != "quick" || RegionKind(9).String() != "region(9)" {
		t.Errorf("unexpected RegionKind strings")
	}
}
