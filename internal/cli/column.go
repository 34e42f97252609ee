package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/annoboard/internal/wire"
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Manage board columns",
	Long:  "Add, rename, delete and reorder the columns of a board. The Inbox column is fixed.",
}

var columnAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Append a column",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID, err := resolveBoard(cmd)
		if err != nil {
			return err
		}
		title := ""
		if len(args) > 0 {
			title = args[0]
		}

		_, err = wire.BoardAdapter().AddColumn(ctx, boardID, title)
		return err
	},
}

var columnRenameCmd = &cobra.Command{
	Use:   "rename [column-id] [title]",
	Short: "Rename a column",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID, err := resolveBoard(cmd)
		if err != nil {
			return err
		}

		return wire.BoardAdapter().RenameColumn(ctx, boardID, args[0], args[1])
	},
}

var columnDeleteCmd = &cobra.Command{
	Use:   "delete [column-id]",
	Short: "Delete a column, moving its cards to the Inbox",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID, err := resolveBoard(cmd)
		if err != nil {
			return err
		}

		return wire.BoardAdapter().DeleteColumn(ctx, boardID, args[0])
	},
}

var columnMoveCmd = &cobra.Command{
	Use:   "move [column-id] [position]",
	Short: "Move a column to a new position",
	Long: `Move a column to a new position. Position 0 is the Inbox, which never moves.

Examples:
  annoboard column move col_01HXYZ 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID, err := resolveBoard(cmd)
		if err != nil {
			return err
		}
		position, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q: %w", args[1], err)
		}

		return wire.BoardAdapter().MoveColumn(ctx, boardID, args[0], position)
	},
}

// ColumnCmd returns the column command
func ColumnCmd() *cobra.Command {
	for _, cmd := range []*cobra.Command{columnAddCmd, columnRenameCmd, columnDeleteCmd, columnMoveCmd} {
		addBoardFlag(cmd)
		columnCmd.AddCommand(cmd)
	}

	return columnCmd
}
