package inventory

import "fmt"

const (
	DefaultCapacity = 25
	DefaultPageSize = 25
)

// Store holds the sparse slot -> item mapping. It is owned by a single
// goroutine (the HUD event loop) and is not safe for concurrent use.
type Store struct {
	slots    []*Item
	pageSize int

	onChange []func()
}

// NewStore creates an empty store. A pageSize <= 0 or larger than capacity
// means a single page covering every slot.
func NewStore(capacity, pageSize int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if pageSize <= 0 || pageSize > capacity {
		pageSize = capacity
	}
	return &Store{
		slots:    make([]*Item, capacity),
		pageSize: pageSize,
	}
}

// OnChange registers a callback fired after every mutation.
func (s *Store) OnChange(cb func()) {
	s.onChange = append(s.onChange, cb)
}

func (s *Store) changed() {
	for _, cb := range s.onChange {
		cb()
	}
}

func (s *Store) Capacity() int { return len(s.slots) }

func (s *Store) PageSize() int { return s.pageSize }

// PageCount returns the number of pages needed to cover the capacity.
func (s *Store) PageCount() int {
	return (len(s.slots) + s.pageSize - 1) / s.pageSize
}

// LogicalIndex maps a 1-based page and a position inside it to a slot index.
func (s *Store) LogicalIndex(page, pos int) int {
	return (page-1)*s.pageSize + pos
}

// ReplaceAll clears every slot and writes items at their declared slot.
// Entries outside [0, capacity) are skipped. Later duplicates win. Amounts
// below 1 are stored as 1.
func (s *Store) ReplaceAll(items []Item) (dropped int) {
	clear(s.slots)
	for i := range items {
		it := items[i]
		if it.Slot < 0 || it.Slot >= len(s.slots) {
			dropped++
			continue
		}
		it.Amount = max(it.Amount, 1)
		s.slots[it.Slot] = &it
	}
	s.changed()
	return dropped
}

// SetSlot replaces a single slot. A nil item clears it. Amounts below 1 are
// stored as 1.
func (s *Store) SetSlot(index int, item *Item) error {
	if index < 0 || index >= len(s.slots) {
		return fmt.Errorf("%w: %d (capacity %d)", ErrSlotOutOfRange, index, len(s.slots))
	}
	if item == nil {
		s.slots[index] = nil
	} else {
		it := *item
		it.Slot = index
		it.Amount = max(it.Amount, 1)
		s.slots[index] = &it
	}
	s.changed()
	return nil
}

// Get returns the item at index, or nil if the slot is empty or out of range.
func (s *Store) Get(index int) *Item {
	if index < 0 || index >= len(s.slots) {
		return nil
	}
	return s.slots[index]
}

func (s *Store) OccupiedCount() int {
	n := 0
	for _, it := range s.slots {
		if it != nil {
			n++
		}
	}
	return n
}

// Items returns a copy of every stored item in ascending slot order.
func (s *Store) Items() []Item {
	var result []Item
	for _, it := range s.slots {
		if it != nil {
			result = append(result, *it)
		}
	}
	return result
}
