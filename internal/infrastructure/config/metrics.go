package config

// MetricsConfig holds metrics collection and export configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// TextfilePath is where the run's metrics are written in Prometheus text
	// format, for pickup by a node exporter textfile collector
	TextfilePath string `mapstructure:"textfile_path" validate:"required_if=Enabled true"`
}
