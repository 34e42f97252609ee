// Package cli provides the annoboard commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/annoboard/internal/config"
	"github.com/example/annoboard/internal/wire"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage boards",
	Long:  "Create, list, show and select annotation boards",
}

var boardCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new board",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		title := ""
		if len(args) > 0 {
			title = args[0]
		}

		b, err := wire.BoardAdapter().Create(ctx, title)
		if err != nil {
			return err
		}

		use, _ := cmd.Flags().GetBool("use")
		if use || wire.Config().CurrentBoard == "" {
			return setCurrentBoard(b.ID)
		}
		return nil
	},
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards, most recently updated first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		_, err := wire.BoardAdapter().List(ctx, wire.Config().CurrentBoard)
		return err
	},
}

var boardShowCmd = &cobra.Command{
	Use:   "show [board-id]",
	Short: "Show a board with its columns and cards",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID, err := boardFromArgs(args)
		if err != nil {
			return err
		}

		_, err = wire.BoardAdapter().Show(ctx, boardID)
		return err
	},
}

var boardUseCmd = &cobra.Command{
	Use:   "use [board-id]",
	Short: "Select the board other commands act on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID := args[0]

		if _, err := wire.BoardService().GetBoard(ctx, boardID); err != nil {
			return fmt.Errorf("failed to get board: %w", err)
		}
		return setCurrentBoard(boardID)
	},
}

var boardRenameCmd = &cobra.Command{
	Use:   "rename [title]",
	Short: "Rename a board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID, err := resolveBoard(cmd)
		if err != nil {
			return err
		}

		return wire.BoardAdapter().Rename(ctx, boardID, args[0])
	},
}

var boardDeleteCmd = &cobra.Command{
	Use:   "delete [board-id]",
	Short: "Delete a board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID := args[0]

		if err := wire.BoardAdapter().Delete(ctx, boardID); err != nil {
			return err
		}
		if wire.Config().CurrentBoard == boardID {
			return setCurrentBoard("")
		}
		return nil
	},
}

// setCurrentBoard persists the selected board in the config file.
func setCurrentBoard(boardID string) error {
	dir, err := workingDir()
	if err != nil {
		return err
	}
	if err := config.SetCurrentBoard(dir, boardID); err != nil {
		return err
	}
	wire.Config().CurrentBoard = boardID

	if boardID != "" {
		fmt.Printf("✓ Current board: %s\n", boardID)
	}
	return nil
}

// boardFromArgs returns args[0] or the current board.
func boardFromArgs(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return currentBoard("")
}

// BoardCmd returns the board command
func BoardCmd() *cobra.Command {
	boardCreateCmd.Flags().Bool("use", false, "Make the new board the current board")
	addBoardFlag(boardRenameCmd)

	boardCmd.AddCommand(boardCreateCmd)
	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardUseCmd)
	boardCmd.AddCommand(boardRenameCmd)
	boardCmd.AddCommand(boardDeleteCmd)

	return boardCmd
}
