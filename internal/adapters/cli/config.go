package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/dbmigrate/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect dbmigrate configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (DBMIGRATE_* prefix)
2. Config file (dbmigrate.yaml)
3. Default values

Example:
  dbmigrate config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfigFs(appFs, configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(cfg)
			}

			headerColor.Fprintln(out, "dbmigrate Configuration")
			fmt.Fprintln(out, "=======================")
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Sources:")
			fmt.Fprintf(out, "  Legacy Config:     %s\n", valueOrUnset(cfg.Legacy.ConfigPath))
			fmt.Fprintf(out, "  Modern Config:     %s\n", valueOrUnset(cfg.Modern.ConfigPath))
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Database:")
			fmt.Fprintf(out, "  Connect Timeout:   %s\n", cfg.Database.ConnectTimeout)
			fmt.Fprintf(out, "  Max Connections:   %d\n", cfg.Database.Pool.MaxOpen)
			fmt.Fprintf(out, "  Max Idle:          %d\n", cfg.Database.Pool.MaxIdle)
			fmt.Fprintf(out, "  Max Lifetime:      %s\n", cfg.Database.Pool.MaxLifetime)
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Logging:")
			fmt.Fprintf(out, "  Level:             %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:            %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:            %s\n", cfg.Logging.Output)
			fmt.Fprintln(out)

			fmt.Fprintln(out, "Metrics:")
			fmt.Fprintf(out, "  Enabled:           %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Textfile:          %s\n", cfg.Metrics.TextfilePath)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
