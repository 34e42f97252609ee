package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/annoboard/internal/wire"
)

var importCmd = &cobra.Command{
	Use:   "import [paper-id...]",
	Short: "Import annotations from the paper catalog into the Inbox",
	Long: `Extract annotations from paper notes and add them to the board's Inbox.

Annotations already on the board are skipped, so re-running an import only
adds what is new. With no paper IDs every paper in the catalog is imported.

The catalog is the JSON or YAML file named by papers_file in
.annoboard/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		boardID, err := resolveBoard(cmd)
		if err != nil {
			return err
		}

		_, err = wire.ImportAdapter().Import(ctx, boardID, args)
		return err
	},
}

var importScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List catalog papers with annotations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		all, _ := cmd.Flags().GetBool("all")

		_, err := wire.ImportAdapter().Scan(ctx, all)
		return err
	},
}

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	addBoardFlag(importCmd)
	importScanCmd.Flags().BoolP("all", "a", false, "Include papers without annotations")

	importCmd.AddCommand(importScanCmd)

	return importCmd
}
