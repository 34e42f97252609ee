// Package ordering contains the pure move and reorder operations over the
// ordered lists of a board. Callers (UI layers, the CLI) compute indices;
// these functions only splice.
package ordering

import (
	"time"

	"github.com/example/annoboard/internal/core/board"
)

// MoveCard moves cardID from one column to another (or within one column).
//
// targetIndex is the insertion position in the destination list as seen
// before the card was removed. When source and destination are the same
// column and the card sat before targetIndex, the index is decremented to
// compensate for the removal. A nil targetIndex appends. The index is clamped
// to [0, len(destination)].
//
// Unknown columns, or a card that is not in fromColumnID, make this a no-op
// returning false.
func MoveCard(b *board.Board, cardID, fromColumnID, toColumnID string, targetIndex *int, now time.Time) bool {
	from, _ := b.Column(fromColumnID)
	to, _ := b.Column(toColumnID)
	if from == nil || to == nil {
		return false
	}
	removedAt := indexOf(from.CardIDs, cardID)
	if removedAt < 0 {
		return false
	}

	from.CardIDs = remove(from.CardIDs, removedAt)

	target := len(to.CardIDs)
	if targetIndex != nil {
		target = *targetIndex
		if fromColumnID == toColumnID && removedAt < target {
			target--
		}
	}
	to.CardIDs = insert(to.CardIDs, clamp(target, 0, len(to.CardIDs)), cardID)

	b.Touch(now)
	return true
}

// ReorderColumn moves the column at fromIndex to toIndex. Moves touching
// index 0 are rejected because the Inbox is pinned there.
func ReorderColumn(b *board.Board, fromIndex, toIndex int, now time.Time) board.GuardResult {
	guard := board.CanReorderColumn(board.ReorderColumnContext{
		FromIndex:   fromIndex,
		ToIndex:     toIndex,
		ColumnCount: len(b.Columns),
	})
	if !guard.Allowed {
		return guard
	}

	b.Columns = Relocate(b.Columns, fromIndex, toIndex)
	b.Touch(now)
	return guard
}

// Relocate removes the element at from and reinserts it at to, as indexes
// into the list after removal. It returns the reordered slice.
func Relocate[T any](items []T, from, to int) []T {
	if from < 0 || from >= len(items) {
		return items
	}
	item := items[from]
	items = remove(items, from)
	return insert(items, clamp(to, 0, len(items)), item)
}

func remove[T any](items []T, i int) []T {
	return append(items[:i], items[i+1:]...)
}

func insert[T any](items []T, i int, item T) []T {
	var zero T
	items = append(items, zero)
	copy(items[i+1:], items[i:])
	items[i] = item
	return items
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
