package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dbmigrate/internal/domain/shared"
)

func TestResolutionMetricsCollector_Outcomes(t *testing.T) {
	// Arrange
	InitRegistry()
	t.Cleanup(func() { Registry = nil })
	c := NewResolutionMetricsCollector()
	require.NoError(t, c.Register())

	// Act
	c.RecordResolution("legacy", "sqlite", nil)
	c.RecordResolution("legacy", "", shared.NewNotConfiguredError("legacy"))
	c.RecordResolution("legacy", "", shared.NewPortParseError("legacy", "x", nil))
	c.RecordResolution("modern", "", shared.NewFileReadError("ca", "/ca.pem", os.ErrNotExist))
	c.RecordResolution("modern", "", errors.New("boom"))

	// Assert
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues("legacy", "sqlite", outcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues("legacy", "none", outcomeNotConfigured)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues("legacy", "none", outcomePortParse)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues("modern", "none", outcomeFileRead)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutions.WithLabelValues("modern", "none", outcomeError)))
}

func TestResolutionMetricsCollector_FileReads(t *testing.T) {
	c := NewResolutionMetricsCollector()

	c.RecordTLSFileRead("ca", true)
	c.RecordTLSFileRead("ca", true)
	c.RecordTLSFileRead("key", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.tlsFileReads.WithLabelValues("ca", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.tlsFileReads.WithLabelValues("key", "error")))
}

func TestWriteTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dbmigrate.prom")

	// disabled: nothing written
	Registry = nil
	require.NoError(t, WriteTextfile(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	InitRegistry()
	t.Cleanup(func() { Registry = nil })
	c := NewResolutionMetricsCollector()
	require.NoError(t, c.Register())
	c.RecordResolution("modern", "postgres", nil)

	require.NoError(t, WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dbmigrate_resolver_resolutions_total")
}

func TestResolutionMetricsCollector_GatheredFromRegistry(t *testing.T) {
	InitRegistry()
	t.Cleanup(func() { Registry = nil })
	c := NewResolutionMetricsCollector()
	require.NoError(t, c.Register())

	c.RecordResolution("legacy", "postgres", nil)
	c.RecordResolution("modern", "postgres", nil)

	families, err := GetRegistry().Gather()
	require.NoError(t, err)

	var resolutions *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == "dbmigrate_resolver_resolutions_total" {
			resolutions = mf
		}
	}
	require.NotNil(t, resolutions)
	assert.Equal(t, dto.MetricType_COUNTER, resolutions.GetType())
	assert.Len(t, resolutions.GetMetric(), 2)
}

func TestResolutionMetricsCollector_RegisterWithoutRegistry(t *testing.T) {
	Registry = nil

	assert.False(t, IsEnabled())
	assert.NoError(t, NewResolutionMetricsCollector().Register())
}
