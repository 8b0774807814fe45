package bridge

import (
	"encoding/json"
	"fmt"
)

// Inbound events (host -> HUD).
const (
	EventSetItems       = "inventory:setItems"
	EventSetAccessories = "inventory:setAccessories"
	EventSetStats       = "inventory:setStats"
	EventClear          = "inventory:clear"
	EventAddItem        = "inventory:addItem"
	EventAddUsedItem    = "inventory:addUsedItem"
)

// Outbound intents (HUD -> host).
const (
	EventUseItem  = "inventory:useItem"
	EventDropItem = "inventory:dropItem"
	EventClose    = "inventory:close"
)

// Frame is one event on the wire: {"event": "...", "args": [...]}.
type Frame struct {
	Event string            `json:"event"`
	Args  []json.RawMessage `json:"args,omitempty"`
}

// NewFrame encodes args into a frame.
func NewFrame(event string, args ...any) (Frame, error) {
	f := Frame{Event: event}
	for i, a := range args {
		raw, err := json.Marshal(a)
		if err != nil {
			return Frame{}, fmt.Errorf("encode %s arg %d: %w", event, i, err)
		}
		f.Args = append(f.Args, raw)
	}
	return f, nil
}

// DecodeFrame parses a raw websocket message.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	if f.Event == "" {
		return Frame{}, fmt.Errorf("decode frame: missing event")
	}
	return f, nil
}
