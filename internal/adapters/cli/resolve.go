package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	var (
		legacyConfig string
		modernConfig string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve connection descriptors for both databases",
		Long: `Read the legacy and modern configuration files and print the resolved
connection descriptors. Passwords and private keys are masked.

Examples:
  dbmigrate resolve --legacy-config legacy.yaml --modern-config modern.yaml
  dbmigrate resolve --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext("resolve")
			if err != nil {
				return err
			}
			defer rc.close()

			resolution, err := rc.resolveSources(cmd.Context(), legacyConfig, modernConfig)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(map[string]interface{}{
					"run_id": rc.runID,
					"legacy": newDescriptorView(resolution.Legacy),
					"modern": newDescriptorView(resolution.Modern),
				})
			}

			printDescriptor(out, "Legacy", resolution.Legacy)
			fmt.Fprintln(out)
			printDescriptor(out, "Modern", resolution.Modern)
			return nil
		},
	}

	cmd.Flags().StringVar(&legacyConfig, "legacy-config", "", "Path to the legacy server configuration file")
	cmd.Flags().StringVar(&modernConfig, "modern-config", "", "Path to the modern service configuration file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
