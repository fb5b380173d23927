package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/dbmigrate/internal/domain/shared"
)

// Resolution outcomes
const (
	outcomeSuccess       = "success"
	outcomeNotConfigured = "not_configured"
	outcomePortParse     = "port_parse_error"
	outcomeFileRead      = "file_read_error"
	outcomeError         = "error"
)

// ResolutionMetricsCollector records connection resolution events. It
// implements resolver.Recorder.
type ResolutionMetricsCollector struct {
	resolutions  *prometheus.CounterVec
	tlsFileReads *prometheus.CounterVec
}

// NewResolutionMetricsCollector creates a new resolution metrics collector
func NewResolutionMetricsCollector() *ResolutionMetricsCollector {
	return &ResolutionMetricsCollector{
		// Resolution counter
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "resolutions_total",
				Help:      "Total number of connection descriptor resolutions by source, driver and outcome",
			},
			[]string{"source", "driver", "outcome"},
		),

		// TLS file reads
		tlsFileReads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "tls_file_reads_total",
				Help:      "Total number of TLS material files read by field and result",
			},
			[]string{"field", "result"},
		),
	}
}

// Register registers all metrics with the global registry
func (c *ResolutionMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	for _, metric := range []prometheus.Collector{c.resolutions, c.tlsFileReads} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordResolution counts one resolution
func (c *ResolutionMetricsCollector) RecordResolution(source string, driver string, err error) {
	if driver == "" {
		driver = "none"
	}
	c.resolutions.WithLabelValues(source, driver, outcome(err)).Inc()
}

// RecordTLSFileRead counts one TLS file read
func (c *ResolutionMetricsCollector) RecordTLSFileRead(field string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	c.tlsFileReads.WithLabelValues(field, result).Inc()
}

func outcome(err error) string {
	if err == nil {
		return outcomeSuccess
	}

	var notConfigured *shared.NotConfiguredError
	var portErr *shared.PortParseError
	var readErr *shared.FileReadError
	switch {
	case errors.As(err, &notConfigured):
		return outcomeNotConfigured
	case errors.As(err, &portErr):
		return outcomePortParse
	case errors.As(err, &readErr):
		return outcomeFileRead
	default:
		return outcomeError
	}
}
