package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-mclib/hud/pkg/inventory"
)

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrBadArgs      = errors.New("bad event arguments")
)

// Stats is the player summary carried by inventory:setStats.
type Stats struct {
	Skin   int
	Name   string
	Health float64
	Armour float64
	Money  float64
}

// Handler receives decoded inbound events. Payload strings are passed through
// undecoded so the receiver decides how to treat malformed JSON.
type Handler interface {
	SetItems(payload string)
	SetAccessories(payload string)
	SetStats(stats Stats)
	Clear()
	AddItem(item inventory.Item)
	AddUsedItem(slot int, model string)
}

// EventFunc handles the raw arguments of one event.
type EventFunc func(args []json.RawMessage) error

// Dispatcher is the typed inbound event table.
type Dispatcher struct {
	handlers map[string]EventFunc
}

// NewDispatcher builds the table for every inventory event.
func NewDispatcher(h Handler) *Dispatcher {
	d := &Dispatcher{handlers: make(map[string]EventFunc)}

	d.Register(EventSetItems, func(args []json.RawMessage) error {
		payload, err := payloadArg(args, 0)
		if err != nil {
			return err
		}
		h.SetItems(payload)
		return nil
	})
	d.Register(EventSetAccessories, func(args []json.RawMessage) error {
		payload, err := payloadArg(args, 0)
		if err != nil {
			return err
		}
		h.SetAccessories(payload)
		return nil
	})
	d.Register(EventSetStats, func(args []json.RawMessage) error {
		var s Stats
		if err := decodeArgs(args, 5, &s.Skin, &s.Name, &s.Health, &s.Armour, &s.Money); err != nil {
			return err
		}
		h.SetStats(s)
		return nil
	})
	d.Register(EventClear, func([]json.RawMessage) error {
		h.Clear()
		return nil
	})
	d.Register(EventAddItem, func(args []json.RawMessage) error {
		var it inventory.Item
		if err := decodeArgs(args, 3, &it.Slot, &it.Model, &it.Amount, &it.Name, &it.UseLabel); err != nil {
			return err
		}
		h.AddItem(it)
		return nil
	})
	d.Register(EventAddUsedItem, func(args []json.RawMessage) error {
		var (
			slot  int
			model string
		)
		if err := decodeArgs(args, 2, &slot, &model); err != nil {
			return err
		}
		h.AddUsedItem(slot, model)
		return nil
	})

	return d
}

// Register adds or replaces the handler for an event.
func (d *Dispatcher) Register(event string, fn EventFunc) {
	d.handlers[event] = fn
}

// Events lists the registered event names.
func (d *Dispatcher) Events() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the handler for f. A panicking handler is reported as an error.
func (d *Dispatcher) Dispatch(f Frame) (err error) {
	fn, ok := d.handlers[f.Event]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, f.Event)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: handler panic: %v", f.Event, r)
		}
	}()
	if err := fn(f.Args); err != nil {
		return fmt.Errorf("%s: %w", f.Event, err)
	}
	return nil
}

// payloadArg returns argument i as a JSON document. Hosts send it either as a
// string holding JSON or as the JSON value itself.
func payloadArg(args []json.RawMessage, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("%w: missing argument %d", ErrBadArgs, i)
	}
	raw := args[i]
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: argument %d: %v", ErrBadArgs, i, err)
		}
		return s, nil
	}
	return string(raw), nil
}

// decodeArgs decodes positional args into dst; the first required are mandatory.
func decodeArgs(args []json.RawMessage, required int, dst ...any) error {
	if len(args) < required {
		return fmt.Errorf("%w: got %d arguments, want at least %d", ErrBadArgs, len(args), required)
	}
	for i, d := range dst {
		if i >= len(args) {
			break
		}
		if err := json.Unmarshal(args[i], d); err != nil {
			return fmt.Errorf("%w: argument %d: %v", ErrBadArgs, i, err)
		}
	}
	return nil
}
