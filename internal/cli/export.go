package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/annoboard/internal/wire"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a board as Markdown",
	Long: `Render a board as Markdown: one section per non-empty column, cards in
board order. Prints to stdout unless --out or --copy is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID, err := resolveBoard(cmd)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		toClipboard, _ := cmd.Flags().GetBool("copy")

		return wire.ExportAdapter().Export(ctx, boardID, out, toClipboard)
	},
}

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	addBoardFlag(exportCmd)
	exportCmd.Flags().StringP("out", "o", "", "Write Markdown to this file")
	exportCmd.Flags().Bool("copy", false, "Copy Markdown to the clipboard")

	return exportCmd
}
