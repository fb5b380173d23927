package resolver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dbmigrate/internal/application/resolver"
	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
	"github.com/andrescamacho/dbmigrate/internal/domain/shared"
	"github.com/andrescamacho/dbmigrate/internal/domain/source"
	"github.com/andrescamacho/dbmigrate/test/helpers"
)

func newModernResolver(fs *helpers.CountingFs, rec *helpers.MockRecorder) *resolver.ModernResolver {
	return resolver.NewModernResolver(resolver.NewTLSLoader(fs, rec), nil, rec)
}

func TestModernResolver_URIShortCircuitsFields(t *testing.T) {
	// Arrange
	r := newModernResolver(helpers.NewCountingFs(), helpers.NewMockRecorder())

	// Act
	desc, err := r.Resolve(source.ModernDatabaseConfig{
		Connection: source.ModernURI{URI: "postgres://u:p@h/db"},
		SSL:        source.ModernSSL{Mode: "require"},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, connection.DriverPostgres, desc.Driver)
	assert.Equal(t, &connection.PostgresConnection{ConnectionString: "postgres://u:p@h/db"}, desc.Postgres)
}

func TestModernResolver_DiscreteFields(t *testing.T) {
	r := newModernResolver(helpers.NewCountingFs(), helpers.NewMockRecorder())

	desc, err := r.Resolve(source.ModernDatabaseConfig{
		Connection: source.ModernFields{
			Database: "mas",
			Username: "mas_user",
			Password: "pw",
			Host:     "pg.internal",
			Port:     5433,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, &connection.PostgresConnection{
		Database: "mas",
		User:     "mas_user",
		Password: "pw",
		Host:     "pg.internal",
		Port:     5433,
	}, desc.Postgres)
}

func TestModernResolver_ZeroPortTreatedAsAbsent(t *testing.T) {
	r := newModernResolver(helpers.NewCountingFs(), helpers.NewMockRecorder())

	desc, err := r.Resolve(source.ModernDatabaseConfig{
		Connection: source.ModernFields{Host: "pg", Port: 0},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, desc.Postgres.Port)
	assert.Equal(t, "host=pg", desc.Postgres.DSN())
}

func TestModernResolver_NilConnectionIsEmptyFields(t *testing.T) {
	r := newModernResolver(helpers.NewCountingFs(), helpers.NewMockRecorder())

	desc, err := r.Resolve(source.ModernDatabaseConfig{})

	require.NoError(t, err)
	assert.Equal(t, &connection.PostgresConnection{}, desc.Postgres)
}

func TestModernResolver_NoSSLFieldsMeansNoBundle(t *testing.T) {
	fs := helpers.NewCountingFs()
	r := newModernResolver(fs, helpers.NewMockRecorder())

	desc, err := r.Resolve(source.ModernDatabaseConfig{Connection: source.ModernFields{Host: "pg"}})

	require.NoError(t, err)
	assert.Nil(t, desc.Postgres.TLS)
	assert.False(t, desc.HasTLS())
	assert.Equal(t, 0, fs.TotalReads())
}

func TestModernResolver_InlineWinsOverFile(t *testing.T) {
	// Arrange
	fs := helpers.NewCountingFs()
	fs.WriteFile(t, "/ca.pem", "FROM-FILE")
	r := newModernResolver(fs, helpers.NewMockRecorder())

	// Act
	desc, err := r.Resolve(source.ModernDatabaseConfig{
		Connection: source.ModernFields{Host: "pg"},
		SSL: source.ModernSSL{
			CA:     "INLINE-CA",
			CAFile: "/ca.pem",
		},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []byte("INLINE-CA"), desc.Postgres.TLS.CA)
	assert.Equal(t, 0, fs.Reads("/ca.pem"))
}

func TestModernResolver_InlineWinsEvenWhenFileMissing(t *testing.T) {
	r := newModernResolver(helpers.NewCountingFs(), helpers.NewMockRecorder())

	desc, err := r.Resolve(source.ModernDatabaseConfig{
		SSL: source.ModernSSL{Key: "INLINE-KEY", KeyFile: "/does/not/exist"},
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("INLINE-KEY"), desc.Postgres.TLS.Key)
}

func TestModernResolver_FilesRead(t *testing.T) {
	fs := helpers.NewCountingFs()
	fs.WriteFile(t, "/tls/ca.pem", "CA")
	fs.WriteFile(t, "/tls/cert.pem", "CERT")
	fs.WriteFile(t, "/tls/key.pem", "KEY")
	r := newModernResolver(fs, helpers.NewMockRecorder())

	desc, err := r.Resolve(source.ModernDatabaseConfig{
		Connection: source.ModernURI{URI: "postgres://h/db"},
		SSL: source.ModernSSL{
			CAFile:          "/tls/ca.pem",
			CertificateFile: "/tls/cert.pem",
			KeyFile:         "/tls/key.pem",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, &connection.TLSMaterial{CA: []byte("CA"), Cert: []byte("CERT"), Key: []byte("KEY")}, desc.Postgres.TLS)
	assert.Equal(t, 3, fs.TotalReads())
}

func TestModernResolver_UnreadableFile(t *testing.T) {
	rec := helpers.NewMockRecorder()
	r := newModernResolver(helpers.NewCountingFs(), rec)

	desc, err := r.Resolve(source.ModernDatabaseConfig{
		SSL: source.ModernSSL{CertificateFile: "/missing.pem"},
	})

	assert.Nil(t, desc)
	var readErr *shared.FileReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, "/missing.pem", readErr.Path)
	assert.Equal(t, 1, rec.FileReads["cert"])
}

func TestModernResolver_SSLModeOnlyForDiscreteFields(t *testing.T) {
	r := newModernResolver(helpers.NewCountingFs(), helpers.NewMockRecorder())

	desc, err := r.Resolve(source.ModernDatabaseConfig{
		Connection: source.ModernFields{Host: "pg"},
		SSL:        source.ModernSSL{Mode: "verify-ca"},
	})

	require.NoError(t, err)
	assert.Equal(t, "verify-ca", desc.Postgres.SSLMode)
}

func TestModernResolver_Idempotent(t *testing.T) {
	fs := helpers.NewCountingFs()
	fs.WriteFile(t, "/key.pem", "KEY")
	r := newModernResolver(fs, helpers.NewMockRecorder())
	cfg := source.ModernDatabaseConfig{
		Connection: source.ModernFields{Host: "pg", Port: 5432},
		SSL:        source.ModernSSL{KeyFile: "/key.pem"},
	}

	first, err := r.Resolve(cfg)
	require.NoError(t, err)
	second, err := r.Resolve(cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
