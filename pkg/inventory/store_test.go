package inventory

import (
	"errors"
	"testing"
)

func TestReplaceAll(t *testing.T) {
	s := NewStore(25, 25)

	dropped := s.ReplaceAll([]Item{
		{Slot: 0, Model: "weapon_pistol", Amount: 1, Name: "Pistol"},
		{Slot: 3, Model: "water", Amount: 4, Name: "Water"},
		{Slot: 25, Model: "burger", Amount: 1},
		{Slot: -1, Model: "burger", Amount: 1},
		{Slot: 3, Model: "cola", Amount: 2, Name: "Cola"},
	})

	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if got := s.OccupiedCount(); got != 2 {
		t.Errorf("OccupiedCount() = %d, want 2", got)
	}
	if it := s.Get(3); it == nil || it.Name != "Cola" {
		t.Errorf("Get(3) = %+v, want last duplicate Cola", it)
	}
	for i := 0; i < s.Capacity(); i++ {
		if i == 0 || i == 3 {
			continue
		}
		if it := s.Get(i); it != nil {
			t.Errorf("Get(%d) = %+v, want empty", i, it)
		}
	}
}

func TestReplaceAllClearsPrevious(t *testing.T) {
	s := NewStore(25, 25)
	s.ReplaceAll([]Item{{Slot: 1, Model: "a", Amount: 1}, {Slot: 2, Model: "b", Amount: 1}})
	s.ReplaceAll([]Item{{Slot: 4, Model: "c", Amount: 1}})

	if s.Get(1) != nil || s.Get(2) != nil {
		t.Errorf("earlier items survived a later ReplaceAll")
	}
	if s.Get(4) == nil {
		t.Errorf("Get(4) = nil, want item")
	}

	s.ReplaceAll(nil)
	if got := s.OccupiedCount(); got != 0 {
		t.Errorf("OccupiedCount() after ReplaceAll(nil) = %d, want 0", got)
	}
}

func TestSetSlot(t *testing.T) {
	s := NewStore(10, 10)

	if err := s.SetSlot(2, &Item{Slot: 7, Model: "bread", Amount: 3}); err != nil {
		t.Fatalf("SetSlot: %v", err)
	}
	it := s.Get(2)
	if it == nil || it.Slot != 2 || it.Model != "bread" {
		t.Fatalf("Get(2) = %+v, want bread at slot 2", it)
	}

	if err := s.SetSlot(2, nil); err != nil {
		t.Fatalf("SetSlot(nil): %v", err)
	}
	if s.Get(2) != nil {
		t.Errorf("Get(2) after clear = %+v, want nil", s.Get(2))
	}

	for _, idx := range []int{-1, 10, 99} {
		if err := s.SetSlot(idx, &Item{Model: "x", Amount: 1}); !errors.Is(err, ErrSlotOutOfRange) {
			t.Errorf("SetSlot(%d) err = %v, want ErrSlotOutOfRange", idx, err)
		}
	}
}

func TestSetSlotCopiesItem(t *testing.T) {
	s := NewStore(5, 5)
	it := &Item{Model: "medkit", Amount: 1, Name: "Medkit"}
	s.SetSlot(0, it)
	it.Name = "changed"

	if got := s.Get(0).Name; got != "Medkit" {
		t.Errorf("stored name = %q, want Medkit", got)
	}
}

func TestOnChange(t *testing.T) {
	s := NewStore(5, 5)
	calls := 0
	s.OnChange(func() { calls++ })

	s.ReplaceAll(nil)
	s.SetSlot(1, &Item{Model: "a", Amount: 1})
	s.SetSlot(9, &Item{Model: "a", Amount: 1})

	if calls != 2 {
		t.Errorf("OnChange calls = %d, want 2", calls)
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		capacity, pageSize int
		wantPages          int
		page, pos          int
		wantIndex          int
	}{
		{50, 25, 2, 2, 0, 25},
		{50, 25, 2, 1, 24, 24},
		{25, 25, 1, 1, 4, 4},
		{30, 25, 2, 2, 4, 29},
		{25, 0, 1, 1, 10, 10},
	}

	for _, tt := range tests {
		s := NewStore(tt.capacity, tt.pageSize)
		if got := s.PageCount(); got != tt.wantPages {
			t.Errorf("NewStore(%d, %d).PageCount() = %d, want %d", tt.capacity, tt.pageSize, got, tt.wantPages)
		}
		if got := s.LogicalIndex(tt.page, tt.pos); got != tt.wantIndex {
			t.Errorf("LogicalIndex(%d, %d) = %d, want %d", tt.page, tt.pos, got, tt.wantIndex)
		}
	}
}

func TestItemsSorted(t *testing.T) {
	s := NewStore(10, 10)
	s.ReplaceAll([]Item{{Slot: 7, Model: "c", Amount: 1}, {Slot: 1, Model: "a", Amount: 1}, {Slot: 4, Model: "b", Amount: 1}})

	items := s.Items()
	if len(items) != 3 {
		t.Fatalf("len(Items()) = %d, want 3", len(items))
	}
	for i, want := range []int{1, 4, 7} {
		if items[i].Slot != want {
			t.Errorf("Items()[%d].Slot = %d, want %d", i, items[i].Slot, want)
		}
	}
}

func TestParseItems(t *testing.T) {
	items, err := ParseItems(`[{"slot":0,"model":"weapon_pistol","amount":1,"name":"Pistol","useLabel":"Equip"}]`)
	if err != nil {
		t.Fatalf("ParseItems: %v", err)
	}
	if len(items) != 1 || items[0].UseLabel != "Equip" || items[0].Name != "Pistol" {
		t.Errorf("ParseItems = %+v", items)
	}

	for _, bad := range []string{"{not json", `{"slot":1}`, "", "null", " null ", `"[]"`} {
		if _, err := ParseItems(bad); !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("ParseItems(%q) err = %v, want ErrMalformedPayload", bad, err)
		}
	}
}

func TestAccessoriesReplace(t *testing.T) {
	a := NewAccessories(3)
	dropped := a.Replace([]Item{
		{Slot: 9, Model: "hat"},
		{Slot: 0, Model: "glasses"},
		{Model: "watch"},
		{Model: "ring"},
	})

	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if it := a.Get(0); it == nil || it.Model != "hat" || it.Slot != 0 {
		t.Errorf("Get(0) = %+v, want hat at position 0", it)
	}
	if it := a.Get(2); it == nil || it.Model != "watch" {
		t.Errorf("Get(2) = %+v, want watch", it)
	}

	a.Replace([]Item{{Model: "bag"}})
	if a.Get(1) != nil || a.Get(2) != nil {
		t.Errorf("Replace did not clear previous accessories")
	}
	if a.Get(3) != nil || a.Get(-1) != nil {
		t.Errorf("out-of-range Get returned an item")
	}
}

func TestAmountAtLeastOne(t *testing.T) {
	s := NewStore(25, 25)
	s.ReplaceAll([]Item{
		{Slot: 0, Model: "water", Amount: 0},
		{Slot: 1, Model: "burger", Amount: -4},
		{Slot: 2, Model: "cola", Amount: 3},
	})

	tests := []struct {
		slot int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 3},
	}
	for _, tt := range tests {
		if it := s.Get(tt.slot); it == nil || it.Amount != tt.want {
			t.Errorf("Get(%d) = %+v, want amount %d", tt.slot, it, tt.want)
		}
	}

	if err := s.SetSlot(5, &Item{Model: "medkit"}); err != nil {
		t.Fatal(err)
	}
	if it := s.Get(5); it.Amount != 1 {
		t.Errorf("SetSlot amount = %d, want 1", it.Amount)
	}
}
