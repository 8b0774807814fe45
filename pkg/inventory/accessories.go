package inventory

const DefaultAccessorySlots = 8

// Accessories is the small ordered list shown in the accessory region. It is
// not part of the slot-indexed store and is always replaced wholesale.
type Accessories struct {
	items []*Item
}

func NewAccessories(size int) *Accessories {
	if size <= 0 {
		size = DefaultAccessorySlots
	}
	return &Accessories{items: make([]*Item, size)}
}

func (a *Accessories) Len() int { return len(a.items) }

// Replace fills positions in list order and drops entries past the region size.
func (a *Accessories) Replace(items []Item) (dropped int) {
	clear(a.items)
	for i := range items {
		if i >= len(a.items) {
			dropped++
			continue
		}
		it := items[i]
		it.Slot = i
		a.items[i] = &it
	}
	return dropped
}

func (a *Accessories) Get(pos int) *Item {
	if pos < 0 || pos >= len(a.items) {
		return nil
	}
	return a.items[pos]
}
