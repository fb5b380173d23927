package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
	"github.com/andrescamacho/dbmigrate/internal/infrastructure/database"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	var (
		legacyConfig string
		modernConfig string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve both databases and verify they are reachable",
		Long: `Resolve both connection descriptors, open a pooled connection for each
and ping it. No queries are executed.

Example:
  dbmigrate check --legacy-config legacy.yaml --modern-config modern.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext("check")
			if err != nil {
				return err
			}
			defer rc.close()

			resolution, err := rc.resolveSources(cmd.Context(), legacyConfig, modernConfig)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			legacyErr := rc.checkConnection(cmd.Context(), out, "legacy", resolution.Legacy)
			modernErr := rc.checkConnection(cmd.Context(), out, "modern", resolution.Modern)

			if legacyErr != nil {
				return legacyErr
			}
			return modernErr
		},
	}

	cmd.Flags().StringVar(&legacyConfig, "legacy-config", "", "Path to the legacy server configuration file")
	cmd.Flags().StringVar(&modernConfig, "modern-config", "", "Path to the modern service configuration file")

	return cmd
}

// checkConnection opens and pings one descriptor, reporting the outcome to out
func (rc *runContext) checkConnection(ctx context.Context, out io.Writer, name string, desc *connection.Descriptor) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, rc.cfg.Database.ConnectTimeout)
	defer cancel()

	err := ping(ctx, desc, rc)
	if err != nil {
		failColor.Fprintf(out, "✗ %s database (%s) unreachable: %v\n", name, desc.Driver, err)
		rc.logger.Error("database check failed", zap.String("source", name), zap.Error(err))
		return fmt.Errorf("%s database unreachable: %w", name, err)
	}

	okColor.Fprintf(out, "✓ %s database (%s) reachable\n", name, desc.Driver)
	rc.logger.Info("database check passed", zap.String("source", name))
	return nil
}

func ping(ctx context.Context, desc *connection.Descriptor, rc *runContext) error {
	db, err := database.NewConnection(desc, &rc.cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return database.Ping(ctx, db)
}
