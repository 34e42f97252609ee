package board

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// DeleteColumnContext provides context for column deletion guards.
type DeleteColumnContext struct {
	ColumnID string
}

// ReorderColumnContext provides context for column reorder guards.
type ReorderColumnContext struct {
	FromIndex   int
	ToIndex     int
	ColumnCount int
}

// AddCardContext provides context for card creation guards.
type AddCardContext struct {
	ColumnID     string
	ColumnExists bool
	Quote        string
}

// CanDeleteColumn evaluates whether a column can be deleted.
// The Inbox can never be deleted. An absent column is not a guard concern:
// Board.DeleteColumn treats it as a no-op before asking.
func CanDeleteColumn(ctx DeleteColumnContext) GuardResult {
	if ctx.ColumnID == InboxColumnID {
		return GuardResult{
			Allowed: false,
			Reason:  "the Inbox column cannot be deleted",
		}
	}

	return GuardResult{Allowed: true}
}

// CanReorderColumn evaluates whether a column can be moved between positions.
// Rules:
// - Both indexes must be in range
// - Neither index may be 0 (the Inbox is pinned there)
// - Indexes must differ
func CanReorderColumn(ctx ReorderColumnContext) GuardResult {
	if ctx.FromIndex < 0 || ctx.FromIndex >= ctx.ColumnCount || ctx.ToIndex < 0 || ctx.ToIndex >= ctx.ColumnCount {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("column index out of range (from %d, to %d, columns %d)", ctx.FromIndex, ctx.ToIndex, ctx.ColumnCount),
		}
	}

	if ctx.FromIndex == 0 || ctx.ToIndex == 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "the Inbox column is pinned at position 0",
		}
	}

	if ctx.FromIndex == ctx.ToIndex {
		return GuardResult{
			Allowed: false,
			Reason:  "column is already at that position",
		}
	}

	return GuardResult{Allowed: true}
}

// CanAddCard evaluates whether a card can be placed.
// Rules:
// - Target column must exist
// - Quote must not be blank
func CanAddCard(ctx AddCardContext) GuardResult {
	if !ctx.ColumnExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("column %s not found", ctx.ColumnID),
		}
	}

	if strings.TrimSpace(ctx.Quote) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "card quote must not be empty",
		}
	}

	return GuardResult{Allowed: true}
}
