package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrMalformedPayload = errors.New("malformed item payload")
	ErrSlotOutOfRange   = errors.New("slot out of range")
)

// Item is a single stack placed in a slot. Items are replaced wholesale,
// never merged.
type Item struct {
	Slot     int    `json:"slot"`
	Model    string `json:"model"`
	Amount   int    `json:"amount"`
	Name     string `json:"name"`
	UseLabel string `json:"useLabel,omitempty"`
}

// ParseItems decodes a JSON array of items as sent by the host.
// Anything but a JSON array, including null, is malformed.
func ParseItems(payload string) ([]Item, error) {
	trimmed := bytes.TrimSpace([]byte(payload))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: not a JSON array", ErrMalformedPayload)
	}
	var items []Item
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return items, nil
}
