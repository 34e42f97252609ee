package board

import (
	"encoding/json"
	"fmt"
)

// MarshalSnapshot serializes the full board. Map keys are emitted in sorted
// order, so equal boards always produce identical bytes.
func MarshalSnapshot(b *Board) ([]byte, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode board snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a board snapshot and checks its invariants.
func UnmarshalSnapshot(data []byte) (*Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode board snapshot: %w", err)
	}
	if b.Cards == nil {
		b.Cards = map[string]*Card{}
	}
	for _, col := range b.Columns {
		if col != nil && col.CardIDs == nil {
			col.CardIDs = []string{}
		}
	}
	if err := Validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}
