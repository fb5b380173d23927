package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cast"

	"github.com/andrescamacho/dbmigrate/internal/domain/shared"
	"github.com/andrescamacho/dbmigrate/internal/domain/source"
)

// sqliteEngines are the engine names that select a file-based database.
// Every other name is treated as postgres.
var sqliteEngines = map[string]bool{
	"sqlite":  true,
	"sqlite3": true,
}

// LoadLegacyDatabase reads the legacy server's configuration file and
// returns its database block. A file without a database block yields nil,
// which resolves to a NotConfiguredError.
func LoadLegacyDatabase(fs afero.Fs, path string) (source.LegacyDatabase, error) {
	v, err := readSourceFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load legacy config: %w", err)
	}

	if !v.IsSet("database") {
		return nil, nil
	}

	db, err := LegacyDatabaseFromArgs(v.GetString("database.name"), v.GetStringMap("database.args"))
	if err != nil {
		return nil, fmt.Errorf("invalid legacy config %s: %w", path, err)
	}
	return db, nil
}

// LegacyDatabaseFromArgs converts an engine name and argument bag into the
// typed legacy database block
func LegacyDatabaseFromArgs(engine string, args map[string]interface{}) (source.LegacyDatabase, error) {
	if sqliteEngines[strings.ToLower(engine)] {
		path, err := stringArg(args, "database")
		if err != nil {
			return nil, err
		}
		return source.LegacySQLite{Database: path}, nil
	}

	db := source.LegacyPostgres{Engine: engine}
	fields := []struct {
		key string
		dst *string
	}{
		{"database", &db.Database},
		{"dbname", &db.DBName},
		{"user", &db.User},
		{"password", &db.Password},
		{"host", &db.Host},
		{"sslcert", &db.SSLCert},
		{"sslrootcert", &db.SSLRootCert},
		{"sslkey", &db.SSLKey},
		{"sslpassword", &db.SSLPassword},
		{"sslmode", &db.SSLMode},
	}
	for _, f := range fields {
		value, err := stringArg(args, f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = value
	}

	port, err := portArg(args["port"])
	if err != nil {
		return nil, err
	}
	db.Port = port

	return db, nil
}

// stringArg returns a scalar argument as a string. Missing and null
// arguments are empty.
func stringArg(args map[string]interface{}, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", nil
	}
	switch raw.(type) {
	case map[string]interface{}, map[interface{}]interface{}, []interface{}:
		return "", shared.NewValidationError("database.args."+key, "must be a scalar value")
	}
	value, err := cast.ToStringE(raw)
	if err != nil {
		return "", shared.NewValidationError("database.args."+key, err.Error())
	}
	return value, nil
}

// portArg keeps the port as configured: numbers stay numbers and strings are
// parsed later, at resolution time
func portArg(raw interface{}) (source.Port, error) {
	switch v := raw.(type) {
	case nil:
		return source.Port{}, nil
	case string:
		return source.PortString(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return source.Port{}, shared.NewValidationError("database.args.port", fmt.Sprintf("%v is not an integer", v))
		}
		return source.PortNumber(int(v)), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := cast.ToIntE(v)
		if err != nil {
			return source.Port{}, shared.NewValidationError("database.args.port", err.Error())
		}
		return source.PortNumber(n), nil
	default:
		return source.Port{}, shared.NewValidationError("database.args.port", fmt.Sprintf("unsupported type %T", raw))
	}
}
