package resolver

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
	"github.com/andrescamacho/dbmigrate/internal/domain/shared"
	"github.com/andrescamacho/dbmigrate/internal/domain/source"
)

// LegacyResolver turns the legacy server's database block into a descriptor
type LegacyResolver struct {
	tls     *TLSLoader
	logger  *zap.Logger
	metrics Recorder
}

// NewLegacyResolver creates a legacy resolver. Nil logger and recorder are allowed.
func NewLegacyResolver(tls *TLSLoader, logger *zap.Logger, metrics Recorder) *LegacyResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NopRecorder{}
	}
	return &LegacyResolver{tls: tls, logger: logger.Named(SourceLegacy), metrics: metrics}
}

// Resolve builds the descriptor for cfg. A nil cfg yields a NotConfiguredError.
func (r *LegacyResolver) Resolve(cfg source.LegacyDatabase) (*connection.Descriptor, error) {
	desc, err := r.resolve(cfg)
	driver := ""
	if desc != nil {
		driver = string(desc.Driver)
	}
	r.metrics.RecordResolution(SourceLegacy, driver, err)
	return desc, err
}

func (r *LegacyResolver) resolve(cfg source.LegacyDatabase) (*connection.Descriptor, error) {
	switch db := cfg.(type) {
	case nil:
		return nil, shared.NewNotConfiguredError(SourceLegacy)
	case source.LegacySQLite:
		r.logger.Debug("resolved sqlite database", zap.String("path", db.Database))
		return connection.NewSQLiteDescriptor(db.Database), nil
	case *source.LegacySQLite:
		if db == nil {
			return nil, shared.NewNotConfiguredError(SourceLegacy)
		}
		return r.resolve(*db)
	case source.LegacyPostgres:
		return r.resolvePostgres(db)
	case *source.LegacyPostgres:
		if db == nil {
			return nil, shared.NewNotConfiguredError(SourceLegacy)
		}
		return r.resolvePostgres(*db)
	default:
		return nil, shared.NewConfigurationError(SourceLegacy, "unsupported database block")
	}
}

func (r *LegacyResolver) resolvePostgres(db source.LegacyPostgres) (*connection.Descriptor, error) {
	conn := connection.PostgresConnection{
		Database: db.Database,
		User:     db.User,
		Password: db.Password,
		Host:     db.Host,
		SSLMode:  db.SSLMode,
	}
	if db.DBName != "" {
		conn.Database = db.DBName
	}

	port, err := legacyPort(db.Port)
	if err != nil {
		return nil, err
	}
	conn.Port = port

	material, err := r.tls.Load(connection.TLSRequest{
		CA:         connection.TLSSource{File: db.SSLRootCert},
		Cert:       connection.TLSSource{File: db.SSLCert},
		Key:        connection.TLSSource{File: db.SSLKey},
		Passphrase: db.SSLPassword,
	})
	if err != nil {
		return nil, err
	}
	conn.TLS = material

	r.logger.Debug("resolved postgres database",
		zap.String("engine", db.EngineName()),
		zap.String("host", conn.Host),
		zap.Int("port", conn.Port),
		zap.String("database", conn.Database),
		zap.Bool("tls", material != nil))

	return connection.NewPostgresDescriptor(conn), nil
}

// legacyPort copies a numeric port and parses a textual one. Only
// non-negative integers are accepted.
func legacyPort(p source.Port) (int, error) {
	if n, ok := p.Number(); ok {
		if n < 0 {
			return 0, shared.NewPortParseError(SourceLegacy, p.String(), nil)
		}
		return n, nil
	}
	if s, ok := p.Text(); ok {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, shared.NewPortParseError(SourceLegacy, s, err)
		}
		if n < 0 {
			return 0, shared.NewPortParseError(SourceLegacy, s, nil)
		}
		return n, nil
	}
	return 0, nil
}
