package config

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/andrescamacho/dbmigrate/internal/domain/source"
)

// ModernDatabaseSection is the raw database block of the modern service's
// configuration file
type ModernDatabaseSection struct {
	// URI is only honoured when it is a string
	URI interface{} `mapstructure:"uri"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"min=0,max=65535"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`

	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	SSLCA              string `mapstructure:"ssl_ca"`
	SSLCAFile          string `mapstructure:"ssl_ca_file"`
	SSLCertificate     string `mapstructure:"ssl_certificate"`
	SSLCertificateFile string `mapstructure:"ssl_certificate_file"`
	SSLKey             string `mapstructure:"ssl_key"`
	SSLKeyFile         string `mapstructure:"ssl_key_file"`
}

// LoadModernDatabase reads the modern service's configuration file and
// returns its database block. A missing block yields an empty config, since
// the modern source is always considered configured.
func LoadModernDatabase(fs afero.Fs, path string) (source.ModernDatabaseConfig, error) {
	v, err := readSourceFile(fs, path)
	if err != nil {
		return source.ModernDatabaseConfig{}, fmt.Errorf("failed to load modern config: %w", err)
	}

	var section ModernDatabaseSection
	if err := v.UnmarshalKey("database", &section); err != nil {
		return source.ModernDatabaseConfig{}, fmt.Errorf("failed to unmarshal modern database config: %w", err)
	}
	if err := NewValidator().Validate(&section); err != nil {
		return source.ModernDatabaseConfig{}, fmt.Errorf("invalid modern config %s: %w", path, err)
	}

	return section.ToSource(), nil
}

// ToSource converts the raw section into the typed modern config
func (s ModernDatabaseSection) ToSource() source.ModernDatabaseConfig {
	cfg := source.ModernDatabaseConfig{
		SSL: source.ModernSSL{
			CA:              s.SSLCA,
			CAFile:          s.SSLCAFile,
			Certificate:     s.SSLCertificate,
			CertificateFile: s.SSLCertificateFile,
			Key:             s.SSLKey,
			KeyFile:         s.SSLKeyFile,
			Mode:            s.SSLMode,
		},
	}

	if uri, ok := s.URI.(string); ok {
		cfg.Connection = source.ModernURI{URI: uri}
		return cfg
	}

	cfg.Connection = source.ModernFields{
		Database: s.Database,
		Username: s.Username,
		Password: s.Password,
		Host:     s.Host,
		Port:     s.Port,
	}
	return cfg
}
