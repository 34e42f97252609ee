package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/annoboard/internal/wire"
)

const boardFlag = "board"

// addBoardFlag registers --board on cmd.
func addBoardFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(boardFlag, "b", "", "Board ID (default: current board)")
}

// resolveBoard returns the --board flag or the current board.
func resolveBoard(cmd *cobra.Command) (string, error) {
	flag, _ := cmd.Flags().GetString(boardFlag)
	return currentBoard(flag)
}

func currentBoard(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if id := wire.Config().CurrentBoard; id != "" {
		return id, nil
	}
	return "", fmt.Errorf("no board selected\nHint: pass --board or run: annoboard board use BOARD-ID")
}

func workingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dir, nil
}
