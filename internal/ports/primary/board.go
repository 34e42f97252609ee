// Package primary defines the primary ports (driving adapters) for the application.
package primary

import (
	"context"

	"github.com/example/annoboard/internal/core/board"
)

// BoardService defines the primary port for board curation.
// Every mutating call loads the board, applies the change, validates the
// board invariants and persists the full snapshot. Calls that change nothing
// do not write.
type BoardService interface {
	// CreateBoard creates and persists a board holding only the Inbox.
	CreateBoard(ctx context.Context, title string) (*board.Board, error)

	// GetBoard retrieves a board by ID.
	GetBoard(ctx context.Context, boardID string) (*board.Board, error)

	// ListBoards lists board summaries, most recently updated first.
	ListBoards(ctx context.Context) ([]board.Summary, error)

	// RenameBoard changes a board title.
	RenameBoard(ctx context.Context, boardID, title string) (bool, error)

	// DeleteBoard deletes a board with all its columns and cards.
	// Unknown boards are a no-op.
	DeleteBoard(ctx context.Context, boardID string) (bool, error)

	// AddColumn appends a column after the existing ones.
	AddColumn(ctx context.Context, boardID, title string) (*board.Column, error)

	// RenameColumn changes a column title.
	RenameColumn(ctx context.Context, boardID, columnID, title string) (bool, error)

	// DeleteColumn removes a non-Inbox column and moves its cards to the Inbox.
	// Deleting an unknown column is a no-op, not an error.
	DeleteColumn(ctx context.Context, boardID, columnID string) (*DeleteColumnResponse, error)

	// ReorderColumn moves a column between positions. Position 0 is pinned.
	ReorderColumn(ctx context.Context, req ReorderColumnRequest) error

	// AddCard places a card at the end of a column. A nil card without error
	// means the column does not exist.
	AddCard(ctx context.Context, req AddCardRequest) (*board.Card, error)

	// UpdateCard shallow-merges a patch into a card.
	UpdateCard(ctx context.Context, req UpdateCardRequest) (bool, error)

	// DeleteCard removes a card.
	DeleteCard(ctx context.Context, boardID, cardID string) (bool, error)

	// MoveCard moves a card within or across columns.
	MoveCard(ctx context.Context, req MoveCardRequest) (bool, error)
}

// DeleteColumnResponse contains the result of deleting a column.
// Deleted is false when the column did not exist.
type DeleteColumnResponse struct {
	ColumnID   string
	Deleted    bool
	MovedCards int
}

// ReorderColumnRequest contains parameters for moving a column.
type ReorderColumnRequest struct {
	BoardID   string
	FromIndex int
	ToIndex   int
}

// AddCardRequest contains parameters for adding a card.
type AddCardRequest struct {
	BoardID    string
	ColumnID   string
	CardID     string // optional; generated when empty or already taken
	Annotation board.Annotation
}

// UpdateCardRequest contains parameters for updating a card.
type UpdateCardRequest struct {
	BoardID string
	CardID  string
	Patch   board.CardPatch
}

// MoveCardRequest contains parameters for moving a card.
// FromColumnID may be left empty to use the card's current column.
// A nil TargetIndex appends to the destination column.
type MoveCardRequest struct {
	BoardID      string
	CardID       string
	FromColumnID string
	ToColumnID   string
	TargetIndex  *int
}
