package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/annoboard/internal/config"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize annoboard in the current directory",
		Long: `Write .annoboard/config.yaml with default settings. An existing config is
left alone unless --force is given, in which case it is replaced. Paths
derived from the project directory are not written, so the project can be
moved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workingDir()
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			backend, _ := cmd.Flags().GetString("backend")
			papers, _ := cmd.Flags().GetString("papers")

			path := config.Path(dir)
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Printf("Config already exists at %s\n", path)
				return nil
			}

			cfg := config.Defaults()
			if backend != "" {
				cfg.Backend = backend
			}
			if papers != "" {
				cfg.PapersFile = papers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveConfig(dir, cfg); err != nil {
				return err
			}

			fmt.Printf("✓ Config written to %s\n", path)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println(`  annoboard board create "Literature review"`)
			fmt.Println("  annoboard import scan")

			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config")
	cmd.Flags().String("backend", "", "Storage backend (sqlite or file)")
	cmd.Flags().String("papers", "", "Paper catalog file (JSON or YAML)")

	return cmd
}
