package cli

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// appFs is the filesystem configuration and TLS files are read from
	appFs afero.Fs = afero.NewOsFs()
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dbmigrate",
		Short: "dbmigrate - Resolve and check the databases of a migration",
		Long: `dbmigrate reads the configuration files of the legacy server and of its
modern replacement, and resolves a driver-ready connection descriptor for each,
including TLS material.

Examples:
  dbmigrate resolve --legacy-config legacy.yaml --modern-config modern.yaml
  dbmigrate resolve --json
  dbmigrate check
  dbmigrate config show`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to dbmigrate.yaml (default: search ., ./configs, ~/.config/dbmigrate)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add commands
	rootCmd.AddCommand(NewResolveCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
