package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/ports/primary"
)

const quotePreviewLen = 70

// BoardAdapter is a thin adapter that translates CLI operations to BoardService calls.
// It depends only on the BoardService interface, enabling easy testing with mocks.
type BoardAdapter struct {
	service primary.BoardService
	out     io.Writer
}

// NewBoardAdapter creates a new BoardAdapter with the given service.
func NewBoardAdapter(service primary.BoardService, out io.Writer) *BoardAdapter {
	return &BoardAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a board.
func (a *BoardAdapter) Create(ctx context.Context, title string) (*board.Board, error) {
	b, err := a.service.CreateBoard(ctx, title)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Created board %s: %s\n", b.ID, b.Title)
	return b, nil
}

// List lists boards. currentID, when set, is marked in the output.
func (a *BoardAdapter) List(ctx context.Context, currentID string) ([]board.Summary, error) {
	summaries, err := a.service.ListBoards(ctx)
	if err != nil {
		return nil, err
	}

	if len(summaries) == 0 {
		fmt.Fprintln(a.out, "No boards found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first board:")
		fmt.Fprintln(a.out, `  annoboard board create "Literature review"`)
		return summaries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOLUMNS\tCARDS\tUPDATED")
	fmt.Fprintln(w, "--\t-----\t-------\t-----\t-------")

	for _, s := range summaries {
		title := s.Title
		if s.ID == currentID {
			title += color.New(color.FgHiMagenta).Sprint(" ←")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			s.ID,
			title,
			s.Columns,
			s.Cards,
			s.UpdatedAt.Format(time.DateTime),
		)
	}

	w.Flush()
	return summaries, nil
}

// Show displays a board with its columns and cards.
func (a *BoardAdapter) Show(ctx context.Context, boardID string) (*board.Board, error) {
	b, err := a.service.GetBoard(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	fmt.Fprintf(a.out, "\nBoard: %s (%s)\n", b.Title, b.ID)
	for i, col := range b.Columns {
		fmt.Fprintf(a.out, "\n%d. %s %s\n",
			i,
			color.New(color.Bold).Sprint(col.Title),
			color.New(color.FgHiBlack).Sprintf("[%s, %d cards]", col.ID, len(col.CardIDs)),
		)
		for _, id := range col.CardIDs {
			card := b.Cards[id]
			if card == nil {
				continue
			}
			fmt.Fprintf(a.out, "   %s %q", color.New(color.FgCyan).Sprint(card.ID), preview(card.Quote))
			if card.Source.Text != "" {
				fmt.Fprintf(a.out, " — %s", card.Source.Text)
			}
			fmt.Fprintln(a.out)
			if card.MyNote != "" {
				fmt.Fprintf(a.out, "      %s\n", color.New(color.FgYellow).Sprint(preview(card.MyNote)))
			}
		}
	}
	fmt.Fprintln(a.out)

	return b, nil
}

// Rename renames a board.
func (a *BoardAdapter) Rename(ctx context.Context, boardID, title string) error {
	changed, err := a.service.RenameBoard(ctx, boardID, title)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(a.out, "Board %s unchanged\n", boardID)
		return nil
	}

	fmt.Fprintf(a.out, "✓ Board %s renamed to %s\n", boardID, title)
	return nil
}

// Delete deletes a board.
func (a *BoardAdapter) Delete(ctx context.Context, boardID string) error {
	deleted, err := a.service.DeleteBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintf(a.out, "Board %s not found, nothing deleted\n", boardID)
		return nil
	}

	fmt.Fprintf(a.out, "✓ Board %s deleted\n", boardID)
	return nil
}

// AddColumn appends a column.
func (a *BoardAdapter) AddColumn(ctx context.Context, boardID, title string) (*board.Column, error) {
	col, err := a.service.AddColumn(ctx, boardID, title)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Added column %s: %s\n", col.ID, col.Title)
	return col, nil
}

// RenameColumn renames a column.
func (a *BoardAdapter) RenameColumn(ctx context.Context, boardID, columnID, title string) error {
	changed, err := a.service.RenameColumn(ctx, boardID, columnID, title)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(a.out, "Column %s unchanged\n", columnID)
		return nil
	}

	fmt.Fprintf(a.out, "✓ Column %s renamed to %s\n", columnID, title)
	return nil
}

// DeleteColumn deletes a column, moving its cards to the Inbox.
func (a *BoardAdapter) DeleteColumn(ctx context.Context, boardID, columnID string) error {
	resp, err := a.service.DeleteColumn(ctx, boardID, columnID)
	if err != nil {
		return err
	}
	if !resp.Deleted {
		fmt.Fprintf(a.out, "Column %s not found, nothing deleted\n", columnID)
		return nil
	}

	fmt.Fprintf(a.out, "✓ Column %s deleted\n", columnID)
	if resp.MovedCards > 0 {
		fmt.Fprintf(a.out, "  %d cards moved to %s\n", resp.MovedCards, board.InboxTitle)
	}
	return nil
}

// MoveColumn moves a column to position toIndex.
func (a *BoardAdapter) MoveColumn(ctx context.Context, boardID, columnID string, toIndex int) error {
	b, err := a.service.GetBoard(ctx, boardID)
	if err != nil {
		return fmt.Errorf("failed to get board: %w", err)
	}
	col, from := b.Column(columnID)
	if col == nil {
		return fmt.Errorf("column %s not found", columnID)
	}

	err = a.service.ReorderColumn(ctx, primary.ReorderColumnRequest{
		BoardID:   boardID,
		FromIndex: from,
		ToIndex:   toIndex,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Column %s moved to position %d\n", columnID, toIndex)
	return nil
}

// AddCard adds a card to a column.
func (a *BoardAdapter) AddCard(ctx context.Context, req primary.AddCardRequest) (*board.Card, error) {
	card, err := a.service.AddCard(ctx, req)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, fmt.Errorf("column %s not found", req.ColumnID)
	}

	fmt.Fprintf(a.out, "✓ Added card %s to %s\n", card.ID, req.ColumnID)
	return card, nil
}

// EditCard updates a card.
func (a *BoardAdapter) EditCard(ctx context.Context, req primary.UpdateCardRequest) error {
	changed, err := a.service.UpdateCard(ctx, req)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(a.out, "Card %s unchanged\n", req.CardID)
		return nil
	}

	fmt.Fprintf(a.out, "✓ Card %s updated\n", req.CardID)
	return nil
}

// DeleteCard deletes a card.
func (a *BoardAdapter) DeleteCard(ctx context.Context, boardID, cardID string) error {
	deleted, err := a.service.DeleteCard(ctx, boardID, cardID)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintf(a.out, "Card %s not found, nothing deleted\n", cardID)
		return nil
	}

	fmt.Fprintf(a.out, "✓ Card %s deleted\n", cardID)
	return nil
}

// MoveCard moves a card to another column or position.
func (a *BoardAdapter) MoveCard(ctx context.Context, req primary.MoveCardRequest) error {
	moved, err := a.service.MoveCard(ctx, req)
	if err != nil {
		return err
	}
	if !moved {
		return fmt.Errorf("card %s could not be moved to %s", req.CardID, req.ToColumnID)
	}

	if req.TargetIndex != nil {
		fmt.Fprintf(a.out, "✓ Card %s moved to %s at position %d\n", req.CardID, req.ToColumnID, *req.TargetIndex)
	} else {
		fmt.Fprintf(a.out, "✓ Card %s moved to %s\n", req.CardID, req.ToColumnID)
	}
	return nil
}

// preview shortens text to one line for listings.
func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= quotePreviewLen {
		return text
	}
	return string(runes[:quotePreviewLen-1]) + "…"
}
