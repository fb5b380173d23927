package connection

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Driver identifies the database driver a descriptor targets
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

const redactedValue = "********"

// Descriptor is the normalized, driver-ready description of how to reach a
// database. It owns no live connection.
type Descriptor struct {
	Driver Driver `json:"driver"`

	// Path is set for sqlite descriptors only
	Path string `json:"path,omitempty"`

	// Postgres is set for postgres descriptors only
	Postgres *PostgresConnection `json:"connection,omitempty"`
}

// PostgresConnection holds either a connection string or discrete fields,
// plus optional TLS material.
type PostgresConnection struct {
	ConnectionString string       `json:"connectionString,omitempty"`
	Host             string       `json:"host,omitempty"`
	Port             int          `json:"port,omitempty"`
	Database         string       `json:"database,omitempty"`
	User             string       `json:"user,omitempty"`
	Password         string       `json:"password,omitempty"`
	SSLMode          string       `json:"sslmode,omitempty"`
	TLS              *TLSMaterial `json:"tls,omitempty"`
}

// NewSQLiteDescriptor creates a descriptor for a file-based sqlite database
func NewSQLiteDescriptor(path string) *Descriptor {
	return &Descriptor{Driver: DriverSQLite, Path: path}
}

// NewPostgresDescriptor creates a descriptor for a networked postgres database
func NewPostgresDescriptor(conn PostgresConnection) *Descriptor {
	return &Descriptor{Driver: DriverPostgres, Postgres: &conn}
}

// HasTLS reports whether TLS material is attached to the descriptor
func (d *Descriptor) HasTLS() bool {
	return d.Postgres != nil && d.Postgres.TLS != nil
}

// Redacted returns a copy safe for display: passwords are masked, including
// the password component of a connection string.
func (d *Descriptor) Redacted() *Descriptor {
	out := *d
	if d.Postgres == nil {
		return &out
	}

	conn := *d.Postgres
	if conn.Password != "" {
		conn.Password = redactedValue
	}
	if conn.ConnectionString != "" {
		conn.ConnectionString = redactConnectionString(conn.ConnectionString)
	}
	if conn.TLS != nil {
		tls := *conn.TLS
		if len(tls.Passphrase) > 0 {
			tls.Passphrase = []byte(redactedValue)
		}
		if len(tls.Key) > 0 {
			tls.Key = []byte(redactedValue)
		}
		conn.TLS = &tls
	}
	out.Postgres = &conn
	return &out
}

// DSN renders the discrete fields as a keyword/value connection string.
// A descriptor built from a URI returns the URI unchanged.
func (c *PostgresConnection) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}

	params := map[string]string{}
	if c.Host != "" {
		params["host"] = c.Host
	}
	if c.Port != 0 {
		params["port"] = fmt.Sprintf("%d", c.Port)
	}
	if c.Database != "" {
		params["dbname"] = c.Database
	}
	if c.User != "" {
		params["user"] = c.User
	}
	if c.Password != "" {
		params["password"] = c.Password
	}
	if c.SSLMode != "" {
		params["sslmode"] = c.SSLMode
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+quoteDSNValue(params[k]))
	}
	return strings.Join(parts, " ")
}

// quoteDSNValue quotes a value when it is empty or contains spaces, quotes or
// backslashes, following libpq keyword/value rules.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v)
	return "'" + escaped + "'"
}

func redactConnectionString(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, hasPassword := u.User.Password(); !hasPassword {
		return raw
	}
	return u.Redacted()
}
