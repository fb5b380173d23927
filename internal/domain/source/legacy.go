// Package source models the database sections of the two systems-of-record
// as closed sum types.
package source

// Legacy engine names
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

// LegacyDatabase is the database block of the legacy server's configuration.
// It is implemented by LegacySQLite and LegacyPostgres only. A nil
// LegacyDatabase means the block is absent.
type LegacyDatabase interface {
	EngineName() string
	isLegacyDatabase()
}

// LegacySQLite is a file-based legacy database
type LegacySQLite struct {
	// Database is the sqlite file path
	Database string
}

func (LegacySQLite) EngineName() string { return EngineSQLite }
func (LegacySQLite) isLegacyDatabase()  {}

// LegacyPostgres is the argument bag of any non-sqlite legacy engine
type LegacyPostgres struct {
	// Engine is the engine name as declared, kept for diagnostics
	Engine string

	Database string
	DBName   string
	User     string
	Password string
	Host     string
	Port     Port

	// SSL file paths
	SSLCert     string
	SSLRootCert string
	SSLKey      string

	// SSLPassword is the inline passphrase for SSLKey
	SSLPassword string
	SSLMode     string
}

func (p LegacyPostgres) EngineName() string {
	if p.Engine == "" {
		return EnginePostgres
	}
	return p.Engine
}

func (LegacyPostgres) isLegacyDatabase() {}
