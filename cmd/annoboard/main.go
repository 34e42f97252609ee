package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/annoboard/internal/cli"
	"github.com/example/annoboard/internal/version"
	"github.com/example/annoboard/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "annoboard",
		Short:   "annoboard - organize paper annotations on boards",
		Version: version.String(),
		Long: `annoboard extracts quoted annotations from reference-manager notes and
arranges them as cards on boards with ordered columns, ready to export as Markdown.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.BoardCmd())
	rootCmd.AddCommand(cli.ColumnCmd())
	rootCmd.AddCommand(cli.CardCmd())

	// Annotation pipeline
	rootCmd.AddCommand(cli.ParseCmd())
	rootCmd.AddCommand(cli.ImportCmd())
	rootCmd.AddCommand(cli.ExportCmd())

	err := rootCmd.Execute()
	if cerr := wire.Close(); cerr != nil {
		fmt.Fprintln(os.Stderr, cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
