package menu

import (
	"errors"
	"fmt"

	"github.com/go-mclib/hud/pkg/inventory"
)

var ErrNotShown = errors.New("context menu not shown")

const DefaultUseLabel = "Use"

type Action int

const (
	ActionUse Action = iota
	ActionDrop
	ActionGive
)

func (a Action) String() string {
	switch a {
	case ActionUse:
		return "use"
	case ActionDrop:
		return "drop"
	case ActionGive:
		return "give"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

type Point struct{ X, Y int }

type Size struct{ W, H int }

// Clamp keeps a menu of the given size inside the viewport by shifting it
// left/up by its own size when it would overflow the right/bottom edge.
// A zero viewport dimension disables clamping on that axis.
func Clamp(at Point, viewport, size Size) Point {
	if viewport.W > 0 && at.X+size.W > viewport.W {
		at.X -= size.W
	}
	if viewport.H > 0 && at.Y+size.H > viewport.H {
		at.Y -= size.H
	}
	at.X = max(at.X, 0)
	at.Y = max(at.Y, 0)
	return at
}

// Controller is the Hidden/Shown state machine for the item context menu.
type Controller struct {
	visible  bool
	slot     int
	anchor   Point
	name     string
	useLabel string
}

func New() *Controller { return &Controller{} }

// Show opens the menu for an occupied slot. It returns false and stays hidden
// when item is nil.
func (c *Controller) Show(slot int, item *inventory.Item, at Point, viewport, size Size) bool {
	if item == nil {
		return false
	}
	c.visible = true
	c.slot = slot
	c.anchor = Clamp(at, viewport, size)
	c.name = item.Name
	c.useLabel = item.UseLabel
	if c.useLabel == "" {
		c.useLabel = DefaultUseLabel
	}
	return true
}

func (c *Controller) Hide() {
	c.visible = false
	c.slot = 0
	c.name = ""
	c.useLabel = ""
}

func (c *Controller) Visible() bool { return c.visible }

// ActiveSlot returns the slot the menu was opened for.
func (c *Controller) ActiveSlot() (int, bool) {
	return c.slot, c.visible
}

func (c *Controller) Anchor() Point { return c.anchor }

func (c *Controller) ItemName() string { return c.name }

func (c *Controller) UseLabel() string { return c.useLabel }

// Dispatch issues an action for the active slot and hides the menu whatever
// emit returns.
func (c *Controller) Dispatch(action Action, emit func(Action, int) error) error {
	slot, ok := c.ActiveSlot()
	if !ok {
		return ErrNotShown
	}
	defer c.Hide()
	if emit == nil {
		return nil
	}
	return emit(action, slot)
}
