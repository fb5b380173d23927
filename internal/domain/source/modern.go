package source

// ModernDatabaseConfig is the database block of the modern service's
// configuration. It is always considered configured.
type ModernDatabaseConfig struct {
	// Connection is either ModernURI or ModernFields. nil behaves like an
	// empty ModernFields.
	Connection ModernConnection

	SSL ModernSSL
}

// ModernConnection is implemented by ModernURI and ModernFields only
type ModernConnection interface {
	isModernConnection()
}

// ModernURI is a single connection string. Its presence short-circuits
// inspection of every discrete field.
type ModernURI struct {
	URI string
}

func (ModernURI) isModernConnection() {}

// ModernFields are discrete connection fields. Zero values are treated as
// absent, including a zero port.
type ModernFields struct {
	Database string
	Username string
	Password string
	Host     string
	Port     int
}

func (ModernFields) isModernConnection() {}

// ModernSSL holds each TLS field as an inline value and a file reference.
// The inline value wins when both are set.
type ModernSSL struct {
	CA              string
	CAFile          string
	Certificate     string
	CertificateFile string
	Key             string
	KeyFile         string
	Mode            string
}
