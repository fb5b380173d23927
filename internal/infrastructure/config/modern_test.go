package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/dbmigrate/internal/domain/source"
)

func TestLoadModernDatabase_URI(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/config.yaml", `
http:
  public_base: https://auth.example.com/
database:
  uri: postgres://u:p@h/db
  host: ignored
  username: ignored
  ssl_ca_file: /certs/ca.pem
`)

	cfg, err := LoadModernDatabase(fs, "/config.yaml")

	require.NoError(t, err)
	assert.Equal(t, source.ModernURI{URI: "postgres://u:p@h/db"}, cfg.Connection)
	assert.Equal(t, "/certs/ca.pem", cfg.SSL.CAFile)
}

func TestLoadModernDatabase_DiscreteFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/config.yaml", `
database:
  host: pg.internal
  port: 5433
  username: mas
  password: secret
  database: mas
  ssl_mode: verify-full
  ssl_certificate: |
    -----BEGIN CERTIFICATE-----
    AAAA
    -----END CERTIFICATE-----
  ssl_key_file: /certs/key.pem
`)

	cfg, err := LoadModernDatabase(fs, "/config.yaml")

	require.NoError(t, err)
	assert.Equal(t, source.ModernFields{
		Database: "mas",
		Username: "mas",
		Password: "secret",
		Host:     "pg.internal",
		Port:     5433,
	}, cfg.Connection)
	assert.Equal(t, "verify-full", cfg.SSL.Mode)
	assert.Contains(t, cfg.SSL.Certificate, "BEGIN CERTIFICATE")
	assert.Equal(t, "/certs/key.pem", cfg.SSL.KeyFile)
}

func TestLoadModernDatabase_NonStringURIIgnored(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/config.yaml", `
database:
  uri:
    nested: true
  host: pg
`)

	cfg, err := LoadModernDatabase(fs, "/config.yaml")

	require.NoError(t, err)
	assert.Equal(t, source.ModernFields{Host: "pg"}, cfg.Connection)
}

func TestLoadModernDatabase_MissingBlock(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/config.yaml", "http: {}\n")

	cfg, err := LoadModernDatabase(fs, "/config.yaml")

	require.NoError(t, err)
	assert.Equal(t, source.ModernFields{}, cfg.Connection)
}

func TestLoadModernDatabase_InvalidSSLMode(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/config.yaml", "database:\n  ssl_mode: sometimes\n")

	_, err := LoadModernDatabase(fs, "/config.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ssl_mode")
}
