package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
	"github.com/andrescamacho/dbmigrate/internal/infrastructure/config"
	"github.com/andrescamacho/dbmigrate/internal/infrastructure/database"
	"github.com/andrescamacho/dbmigrate/test/helpers"
)

func poolConfig() *config.DatabaseConfig {
	return &config.DatabaseConfig{
		ConnectTimeout: time.Second,
		Pool:           config.PoolConfig{MaxOpen: 2, MaxIdle: 1, MaxLifetime: time.Minute},
	}
}

func TestNewConnection_SQLiteFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "homeserver.db")

	// Act
	db, err := database.NewConnection(connection.NewSQLiteDescriptor(path), poolConfig())

	// Assert
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Ping(context.Background(), db))

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestNewConnection_SQLiteEmptyPathIsInMemory(t *testing.T) {
	db := helpers.NewTestDB(t, connection.NewSQLiteDescriptor(""))

	assert.NoError(t, database.Ping(context.Background(), db))
}

func TestNewConnection_Rejects(t *testing.T) {
	_, err := database.NewConnection(nil, poolConfig())
	assert.Error(t, err)

	_, err = database.NewConnection(&connection.Descriptor{Driver: "mysql"}, poolConfig())
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = database.NewConnection(&connection.Descriptor{Driver: connection.DriverPostgres}, poolConfig())
	assert.Error(t, err)
}

func TestPgxConfig_DiscreteFields(t *testing.T) {
	cfg, err := database.PgxConfig(&connection.PostgresConnection{
		Host:     "db.example.com",
		Port:     6432,
		Database: "synapse",
		User:     "synapse_user",
		Password: "secret",
		SSLMode:  "disable",
	})

	require.NoError(t, err)
	assert.Equal(t, "db.example.com", cfg.Host)
	assert.Equal(t, uint16(6432), cfg.Port)
	assert.Equal(t, "synapse", cfg.Database)
	assert.Equal(t, "synapse_user", cfg.User)
	assert.Equal(t, "secret", cfg.Password)
	assert.Nil(t, cfg.TLSConfig)
}

func TestPgxConfig_ConnectionString(t *testing.T) {
	cfg, err := database.PgxConfig(&connection.PostgresConnection{
		ConnectionString: "postgres://mas:pw@pg.internal:5433/mas?sslmode=disable",
	})

	require.NoError(t, err)
	assert.Equal(t, "pg.internal", cfg.Host)
	assert.Equal(t, uint16(5433), cfg.Port)
	assert.Equal(t, "mas", cfg.Database)
}

func TestPgxConfig_AppliesTLSMaterial(t *testing.T) {
	// Arrange
	cert := helpers.NewTestCertificate(t, "db.example.com")

	// Act
	cfg, err := database.PgxConfig(&connection.PostgresConnection{
		Host:    "db.example.com",
		SSLMode: "disable",
		TLS: &connection.TLSMaterial{
			CA:   cert.CertPEM,
			Cert: cert.CertPEM,
			Key:  cert.KeyPEM,
		},
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg.TLSConfig)
	assert.Equal(t, "db.example.com", cfg.TLSConfig.ServerName)
	assert.NotNil(t, cfg.TLSConfig.RootCAs)
	assert.False(t, cfg.TLSConfig.InsecureSkipVerify)
	assert.Len(t, cfg.TLSConfig.Certificates, 1)
	assert.Empty(t, cfg.Fallbacks)
}

func TestPgxConfig_InvalidDSN(t *testing.T) {
	_, err := database.PgxConfig(&connection.PostgresConnection{ConnectionString: "postgres://h:notaport/db"})

	assert.Error(t, err)
}
