package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "dbmigrate"
	// Subsystem for connection resolution metrics
	subsystem = "resolver"
)

// Registry is the global Prometheus registry for all metrics
var Registry *prometheus.Registry

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// WriteTextfile writes all registered metrics to path in the Prometheus text
// format. It is a no-op when metrics are disabled.
func WriteTextfile(path string) error {
	if Registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
