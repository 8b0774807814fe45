package render

import (
	"errors"
	"fmt"

	"github.com/go-mclib/hud/pkg/inventory"
)

var ErrPageOutOfRange = errors.New("page out of range")

type RegionKind int

const (
	RegionMain RegionKind = iota
	RegionQuick
	RegionAccessory
)

func (k RegionKind) String() string {
	switch k {
	case RegionMain:
		return "main"
	case RegionQuick:
		return "quick"
	case RegionAccessory:
		return "accessory"
	default:
		return fmt.Sprintf("region(%d)", int(k))
	}
}

// Region binds a set of views to the data they project.
//
// Main regions follow the active page. Quick regions project the contiguous
// range starting at Offset and ignore paging. Accessory regions read the
// accessory list positionally.
type Region struct {
	Kind   RegionKind
	Views  []SlotView
	Offset int
}

// Renderer projects the store into its regions. Every render is a full
// rebuild of each view, so rendering unchanged state twice is a no-op visually.
type Renderer struct {
	store       *inventory.Store
	accessories *inventory.Accessories
	icons       IconResolver
	placeholder Icon

	regions []Region
	page    int

	active    int
	hasActive bool
}

func NewRenderer(store *inventory.Store, accessories *inventory.Accessories, icons IconResolver, placeholder Icon, regions ...Region) *Renderer {
	return &Renderer{
		store:       store,
		accessories: accessories,
		icons:       icons,
		placeholder: placeholder,
		regions:     regions,
		page:        1,
	}
}

func (r *Renderer) Page() int { return r.page }

// SetPage switches the main region to a 1-based page and re-renders it.
func (r *Renderer) SetPage(page int) error {
	if page < 1 || page > r.store.PageCount() {
		return fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page, r.store.PageCount())
	}
	r.page = page
	r.Render(RegionMain)
	return nil
}

func (r *Renderer) NextPage() bool {
	return r.SetPage(r.page+1) == nil
}

func (r *Renderer) PrevPage() bool {
	return r.SetPage(r.page-1) == nil
}

// SlotAt maps a view position within a region to a store slot index.
// Accessory positions never map to store slots.
func (r *Renderer) SlotAt(kind RegionKind, pos int) (int, bool) {
	for _, reg := range r.regions {
		if reg.Kind != kind || pos < 0 || pos >= len(reg.Views) {
			continue
		}
		var idx int
		switch kind {
		case RegionMain:
			idx = r.store.LogicalIndex(r.page, pos)
		case RegionQuick:
			idx = reg.Offset + pos
		default:
			return 0, false
		}
		if idx >= r.store.Capacity() {
			return 0, false
		}
		return idx, true
	}
	return 0, false
}

// SetActive marks the slot highlighted in every region that shows it.
func (r *Renderer) SetActive(slot int, ok bool) {
	r.active, r.hasActive = slot, ok
	r.RenderAll()
}

func (r *Renderer) RenderAll() {
	for i := range r.regions {
		r.renderRegion(&r.regions[i])
	}
}

func (r *Renderer) Render(kind RegionKind) {
	for i := range r.regions {
		if r.regions[i].Kind == kind {
			r.renderRegion(&r.regions[i])
		}
	}
}

func (r *Renderer) renderRegion(reg *Region) {
	for pos, view := range reg.Views {
		view.Clear()

		var item *inventory.Item
		if reg.Kind == RegionAccessory {
			// accessories only ever show their icon
			if acc := r.accessories.Get(pos); acc != nil {
				view.SetIcon(r.icon(acc.Model))
			}
			continue
		}
		if idx, ok := r.SlotAt(reg.Kind, pos); ok {
			item = r.store.Get(idx)
			if item != nil && r.hasActive && idx == r.active {
				view.SetHighlight(true)
			}
		}
		if item == nil {
			continue
		}
		r.fill(view, item)
	}
}

func (r *Renderer) fill(view SlotView, item *inventory.Item) {
	view.SetIcon(r.icon(item.Model))
	if item.Amount > 1 {
		view.SetCount(item.Amount)
	}
	if item.Name != "" {
		view.SetName(item.Name)
	}
}

func (r *Renderer) icon(model string) Icon {
	if r.icons == nil {
		return r.placeholderFor(model)
	}
	icon, err := r.icons.Resolve(model)
	if err != nil {
		return r.placeholderFor(model)
	}
	return icon
}

func (r *Renderer) placeholderFor(model string) Icon {
	icon := r.placeholder
	icon.Model = model
	icon.Placeholder = true
	return icon
}
