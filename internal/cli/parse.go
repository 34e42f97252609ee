package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/annoboard/internal/ports/primary"
	"github.com/example/annoboard/internal/wire"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Preview the annotations found in a note",
	Long: `Run the extractor over a note file, or stdin when no file is given,
and print what would be imported, followed by every deep link found.
Nothing is written to any board.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		text, err := readInput(cmd, path)
		if err != nil {
			return err
		}

		var paper *primary.SourcePaper
		paperID, _ := cmd.Flags().GetString("paper-id")
		paperTitle, _ := cmd.Flags().GetString("paper-title")
		if paperID != "" || paperTitle != "" {
			paper = &primary.SourcePaper{ID: paperID, Title: paperTitle}
		}

		_, err = wire.ImportAdapter().Parse(ctx, text, paper)
		return err
	},
}

// readInput reads the file at path, or the command's stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read note: %w", err)
	}
	return string(data), nil
}

// ParseCmd returns the parse command
func ParseCmd() *cobra.Command {
	parseCmd.Flags().String("paper-id", "", "Paper ID to attach to each annotation")
	parseCmd.Flags().String("paper-title", "", "Paper title to attach to each annotation")

	return parseCmd
}
