package board

import (
	"fmt"
	"strings"
)

// Validate checks the structural invariants of a board:
//  1. every column card id exists in Cards
//  2. every card appears in exactly one column
//  3. column ids and card ids are unique
//  4. the Inbox exists at index 0
//  5. every card quote is non-empty
//
// The first violation found is returned wrapped in ErrInvariant.
func Validate(b *Board) error {
	if b == nil {
		return fmt.Errorf("%w: nil board", ErrInvariant)
	}
	for i, col := range b.Columns {
		if col == nil {
			return fmt.Errorf("%w: column %d is empty", ErrInvariant, i)
		}
	}
	if len(b.Columns) == 0 || b.Columns[0].ID != InboxColumnID {
		return fmt.Errorf("%w: inbox column must be at index 0", ErrInvariant)
	}

	columnIDs := make(map[string]bool, len(b.Columns))
	placed := make(map[string]string, len(b.Cards))
	for _, col := range b.Columns {
		if columnIDs[col.ID] {
			return fmt.Errorf("%w: duplicate column id %s", ErrInvariant, col.ID)
		}
		columnIDs[col.ID] = true

		for _, cardID := range col.CardIDs {
			if _, ok := b.Cards[cardID]; !ok {
				return fmt.Errorf("%w: column %s references unknown card %s", ErrInvariant, col.ID, cardID)
			}
			if prev, ok := placed[cardID]; ok {
				return fmt.Errorf("%w: card %s appears in columns %s and %s", ErrInvariant, cardID, prev, col.ID)
			}
			placed[cardID] = col.ID
		}
	}

	for id, card := range b.Cards {
		if card == nil || card.ID != id {
			return fmt.Errorf("%w: card entry %s has mismatched id", ErrInvariant, id)
		}
		if _, ok := placed[id]; !ok {
			return fmt.Errorf("%w: card %s is not in any column", ErrInvariant, id)
		}
		if strings.TrimSpace(card.Quote) == "" {
			return fmt.Errorf("%w: card %s has an empty quote", ErrInvariant, id)
		}
	}

	return nil
}
