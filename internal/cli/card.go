package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/example/annoboard/internal/core/board"
	"github.com/example/annoboard/internal/ports/primary"
	"github.com/example/annoboard/internal/wire"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage cards",
	Long:  "Add, edit, delete and move annotation cards",
}

var cardAddCmd = &cobra.Command{
	Use:   "add [quote]",
	Short: "Add a card by hand",
	Long: `Add a card by hand, or extract cards from pasted annotation text with
--raw. Each quote found in the raw text becomes one card in --column; the
command fails when the text holds no quote.

Examples:
  annoboard card add "a quote" --source "Vaswani, 2017" -c col_01HABC
  annoboard card add --raw note.md -c col_01HABC
  pbpaste | annoboard card add --raw -`,
	Args: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("raw") {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID, err := resolveBoard(cmd)
		if err != nil {
			return err
		}
		columnID, _ := cmd.Flags().GetString("column")

		if cmd.Flags().Changed("raw") {
			raw, _ := cmd.Flags().GetString("raw")
			if raw == "" {
				return fmt.Errorf("--raw needs a file, or - for stdin")
			}
			text, err := readInput(cmd, raw)
			if err != nil {
				return err
			}
			_, err = wire.ImportAdapter().AddRaw(ctx, boardID, columnID, text)
			return err
		}

		source, _ := cmd.Flags().GetString("source")
		url, _ := cmd.Flags().GetString("url")
		note, _ := cmd.Flags().GetString("note")

		ann := board.Annotation{
			Quote:  args[0],
			Source: board.Source{Text: source},
			MyNote: note,
		}
		if url != "" {
			ann.Source.ExternalURL = board.String(url)
		}
		ann.PDF = pdfFromFlags(cmd.Flags())

		_, err = wire.BoardAdapter().AddCard(ctx, primary.AddCardRequest{
			BoardID:    boardID,
			ColumnID:   columnID,
			Annotation: ann,
		})
		return err
	},
}

var cardEditCmd = &cobra.Command{
	Use:   "edit [card-id]",
	Short: "Edit a card",
	Long: `Edit a card. Only the flags given are changed.

Examples:
  annoboard card edit ann_01HXYZ --note "contradicts section 3"
  annoboard card edit ann_01HXYZ --clear-pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID, err := resolveBoard(cmd)
		if err != nil {
			return err
		}

		patch, err := patchFromFlags(ctx, cmd.Flags(), boardID, args[0])
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to change\nHint: pass --quote, --source, --url, --note, --pdf or --clear-pdf")
		}

		return wire.BoardAdapter().EditCard(ctx, primary.UpdateCardRequest{
			BoardID: boardID,
			CardID:  args[0],
			Patch:   patch,
		})
	},
}

var cardDeleteCmd = &cobra.Command{
	Use:   "delete [card-id]",
	Short: "Delete a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID, err := resolveBoard(cmd)
		if err != nil {
			return err
		}

		return wire.BoardAdapter().DeleteCard(ctx, boardID, args[0])
	},
}

var cardMoveCmd = &cobra.Command{
	Use:   "move [card-id]",
	Short: "Move a card to a column or position",
	Long: `Move a card. Without --position the card is appended to the target column.
Within one column, the position is where the card is dropped before it is
taken out of its old slot.

Examples:
  annoboard card move ann_01HXYZ --to col_01HABC
  annoboard card move ann_01HXYZ --to col_01HABC --position 0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID, err := resolveBoard(cmd)
		if err != nil {
			return err
		}
		to, _ := cmd.Flags().GetString("to")

		req := primary.MoveCardRequest{
			BoardID:    boardID,
			CardID:     args[0],
			ToColumnID: to,
		}
		if cmd.Flags().Changed("position") {
			position, _ := cmd.Flags().GetInt("position")
			req.TargetIndex = board.Int(position)
		}

		return wire.BoardAdapter().MoveCard(ctx, req)
	},
}

func pdfFromFlags(flags *pflag.FlagSet) *board.PDFRef {
	pdf, _ := flags.GetString("pdf")
	if pdf == "" {
		return nil
	}
	ref := &board.PDFRef{URL: pdf}
	if flags.Changed("page") {
		page, _ := flags.GetInt("page")
		ref.Page = board.Int(page)
	}
	return ref
}

// patchFromFlags builds a patch from the flags that were set. Source edits
// start from the card's current source so --source and --url can be set
// independently.
func patchFromFlags(ctx context.Context, flags *pflag.FlagSet, boardID, cardID string) (board.CardPatch, error) {
	var patch board.CardPatch

	if flags.Changed("quote") {
		quote, _ := flags.GetString("quote")
		patch.Quote = board.String(quote)
	}
	if flags.Changed("note") {
		note, _ := flags.GetString("note")
		patch.MyNote = board.String(note)
	}
	if flags.Changed("source") || flags.Changed("url") {
		b, err := wire.BoardService().GetBoard(ctx, boardID)
		if err != nil {
			return patch, fmt.Errorf("failed to get board: %w", err)
		}
		card, ok := b.Cards[cardID]
		if !ok {
			return patch, fmt.Errorf("card %s not found", cardID)
		}
		source := card.Source
		if flags.Changed("source") {
			source.Text, _ = flags.GetString("source")
		}
		if flags.Changed("url") {
			url, _ := flags.GetString("url")
			source.ExternalURL = nil
			if url != "" {
				source.ExternalURL = board.String(url)
			}
		}
		patch.Source = &source
	}

	clearPDF, _ := flags.GetBool("clear-pdf")
	if clearPDF {
		patch.ClearPDF = true
	} else {
		patch.PDF = pdfFromFlags(flags)
	}
	return patch, nil
}

// CardCmd returns the card command
func CardCmd() *cobra.Command {
	for _, cmd := range []*cobra.Command{cardAddCmd, cardEditCmd, cardDeleteCmd, cardMoveCmd} {
		addBoardFlag(cmd)
		cardCmd.AddCommand(cmd)
	}

	cardAddCmd.Flags().StringP("column", "c", board.InboxColumnID, "Column to add the card to")
	cardAddCmd.Flags().String("raw", "", "Extract cards from annotation text in FILE (- for stdin)")
	for _, cmd := range []*cobra.Command{cardAddCmd, cardEditCmd} {
		cmd.Flags().StringP("source", "s", "", "Citation text")
		cmd.Flags().String("url", "", "Citation deep link")
		cmd.Flags().StringP("note", "n", "", "Your note")
		cmd.Flags().String("pdf", "", "PDF deep link")
		cmd.Flags().Int("page", 0, "PDF page")
	}
	cardEditCmd.Flags().StringP("quote", "q", "", "Quote text")
	cardEditCmd.Flags().Bool("clear-pdf", false, "Remove the PDF reference")
	cardMoveCmd.Flags().String("to", "", "Target column ID (required)")
	cardMoveCmd.Flags().IntP("position", "p", 0, "Target position (default: end of column)")
	cardMoveCmd.MarkFlagRequired("to")

	return cardCmd
}
