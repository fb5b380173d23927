package resolver

import (
	"go.uber.org/zap"

	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
	"github.com/andrescamacho/dbmigrate/internal/domain/source"
)

// ModernResolver turns the modern service's database block into a descriptor
type ModernResolver struct {
	tls     *TLSLoader
	logger  *zap.Logger
	metrics Recorder
}

// NewModernResolver creates a modern resolver. Nil logger and recorder are allowed.
func NewModernResolver(tls *TLSLoader, logger *zap.Logger, metrics Recorder) *ModernResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NopRecorder{}
	}
	return &ModernResolver{tls: tls, logger: logger.Named(SourceModern), metrics: metrics}
}

// Resolve builds the descriptor for cfg. It only fails when a referenced TLS
// file cannot be read.
func (r *ModernResolver) Resolve(cfg source.ModernDatabaseConfig) (*connection.Descriptor, error) {
	desc, err := r.resolve(cfg)
	driver := ""
	if desc != nil {
		driver = string(desc.Driver)
	}
	r.metrics.RecordResolution(SourceModern, driver, err)
	return desc, err
}

func (r *ModernResolver) resolve(cfg source.ModernDatabaseConfig) (*connection.Descriptor, error) {
	var conn connection.PostgresConnection

	switch c := cfg.Connection.(type) {
	case source.ModernURI:
		conn.ConnectionString = c.URI
	case *source.ModernURI:
		if c != nil {
			conn.ConnectionString = c.URI
		}
	case source.ModernFields:
		conn = fieldsConnection(c)
	case *source.ModernFields:
		if c != nil {
			conn = fieldsConnection(*c)
		}
	}
	if conn.ConnectionString == "" {
		conn.SSLMode = cfg.SSL.Mode
	}

	material, err := r.tls.Load(connection.TLSRequest{
		CA:   connection.TLSSource{Inline: inline(cfg.SSL.CA), File: cfg.SSL.CAFile},
		Cert: connection.TLSSource{Inline: inline(cfg.SSL.Certificate), File: cfg.SSL.CertificateFile},
		Key:  connection.TLSSource{Inline: inline(cfg.SSL.Key), File: cfg.SSL.KeyFile},
	})
	if err != nil {
		return nil, err
	}
	conn.TLS = material

	r.logger.Debug("resolved postgres database",
		zap.Bool("uri", conn.ConnectionString != ""),
		zap.String("host", conn.Host),
		zap.Int("port", conn.Port),
		zap.String("database", conn.Database),
		zap.Bool("tls", material != nil))

	return connection.NewPostgresDescriptor(conn), nil
}

// fieldsConnection copies the discrete fields. Zero values, a zero port
// included, are left absent.
func fieldsConnection(f source.ModernFields) connection.PostgresConnection {
	conn := connection.PostgresConnection{}
	if f.Database != "" {
		conn.Database = f.Database
	}
	if f.Username != "" {
		conn.User = f.Username
	}
	if f.Password != "" {
		conn.Password = f.Password
	}
	if f.Host != "" {
		conn.Host = f.Host
	}
	if f.Port != 0 {
		conn.Port = f.Port
	}
	return conn
}

func inline(v string) []byte {
	if v == "" {
		return nil
	}
	return []byte(v)
}
