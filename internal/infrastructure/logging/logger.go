package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andrescamacho/dbmigrate/internal/infrastructure/config"
)

// NewLogger builds a zap logger from the logging configuration. The text
// format uses zap's development encoder; json uses the production one.
// verbose forces debug level.
func NewLogger(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	var z zap.Config
	if cfg.Format == "text" {
		z = zap.NewDevelopmentConfig()
	} else {
		z = zap.NewProductionConfig()
	}

	level := cfg.Level
	if verbose {
		level = "debug"
	}
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		z.Level = zap.NewAtomicLevelAt(lvl)
	}

	output, err := outputPath(cfg)
	if err != nil {
		return nil, err
	}
	z.OutputPaths = []string{output}
	z.ErrorOutputPaths = []string{"stderr"}
	z.DisableCaller = !cfg.IncludeCaller
	z.DisableStacktrace = !cfg.IncludeStacktrace

	logger, err := z.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func outputPath(cfg config.LoggingConfig) (string, error) {
	switch cfg.Output {
	case "", "stderr":
		return "stderr", nil
	case "stdout":
		return "stdout", nil
	case "file":
		if cfg.FilePath == "" {
			return "", fmt.Errorf("logging output is file but no file_path is set")
		}
		return cfg.FilePath, nil
	default:
		return "", fmt.Errorf("unsupported logging output %q", cfg.Output)
	}
}
