package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/andrescamacho/dbmigrate/internal/adapters/metrics"
	"github.com/andrescamacho/dbmigrate/internal/application/resolver"
	"github.com/andrescamacho/dbmigrate/internal/infrastructure/config"
	"github.com/andrescamacho/dbmigrate/internal/infrastructure/logging"
	"github.com/andrescamacho/dbmigrate/pkg/utils"
)

// runContext holds what every command needs for one invocation
type runContext struct {
	cfg      *config.Config
	logger   *zap.Logger
	runID    string
	recorder resolver.Recorder
}

// newRunContext loads the tool configuration and sets up logging and metrics
func newRunContext(operation string) (*runContext, error) {
	cfg, err := config.LoadConfigFs(appFs, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging, verbose)
	if err != nil {
		return nil, err
	}

	runID := utils.GenerateRunID(operation)
	logger = logger.With(zap.String("run_id", runID))

	var recorder resolver.Recorder = resolver.NopRecorder{}
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewResolutionMetricsCollector()
		if err := collector.Register(); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		recorder = collector
	}

	return &runContext{
		cfg:      cfg,
		logger:   logger,
		runID:    runID,
		recorder: recorder,
	}, nil
}

// close flushes metrics and logs
func (rc *runContext) close() {
	if rc.cfg.Metrics.Enabled {
		if err := metrics.WriteTextfile(rc.cfg.Metrics.TextfilePath); err != nil {
			rc.logger.Warn("metrics not written", zap.Error(err))
		}
	}
	_ = rc.logger.Sync()
}

// resolveSources reads both foreign configuration files and resolves them.
// Empty paths fall back to the tool configuration.
func (rc *runContext) resolveSources(ctx context.Context, legacyPath, modernPath string) (*resolver.Resolution, error) {
	if legacyPath == "" {
		legacyPath = rc.cfg.Legacy.ConfigPath
	}
	if modernPath == "" {
		modernPath = rc.cfg.Modern.ConfigPath
	}
	if legacyPath == "" {
		return nil, fmt.Errorf("legacy config path not set: use --legacy-config or legacy.config_path")
	}
	if modernPath == "" {
		return nil, fmt.Errorf("modern config path not set: use --modern-config or modern.config_path")
	}

	rc.logger.Debug("loading source configuration",
		zap.String("legacy_config", legacyPath),
		zap.String("modern_config", modernPath))

	legacy, err := config.LoadLegacyDatabase(appFs, legacyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load legacy config: %w", err)
	}
	modern, err := config.LoadModernDatabase(appFs, modernPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load modern config: %w", err)
	}

	service := resolver.NewService(appFs, rc.logger, rc.recorder)
	return service.ResolveAll(ctx, legacy, modern)
}
