package steps

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/andrescamacho/dbmigrate/internal/application/resolver"
	"github.com/andrescamacho/dbmigrate/internal/domain/connection"
	"github.com/andrescamacho/dbmigrate/internal/domain/shared"
	"github.com/andrescamacho/dbmigrate/internal/domain/source"
	"github.com/andrescamacho/dbmigrate/internal/infrastructure/config"
	"github.com/andrescamacho/dbmigrate/test/helpers"
)

// resolverContext holds state for connection resolution scenarios
type resolverContext struct {
	fs          *helpers.CountingFs
	recorder    *helpers.MockRecorder
	configFiles []string

	legacy source.LegacyDatabase
	modern source.ModernDatabaseConfig

	descriptor *connection.Descriptor
	second     *connection.Descriptor
	err        error
}

func (ctx *resolverContext) reset() {
	ctx.fs = helpers.NewCountingFs()
	ctx.recorder = helpers.NewMockRecorder()
	ctx.configFiles = nil
	ctx.legacy = nil
	ctx.modern = source.ModernDatabaseConfig{}
	ctx.descriptor = nil
	ctx.second = nil
	ctx.err = nil
}

func InitializeResolverScenario(sc *godog.ScenarioContext) {
	rc := &resolverContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		rc.reset()
		return ctx, nil
	})

	// Given
	sc.Step(`^an empty filesystem$`, rc.anEmptyFilesystem)
	sc.Step(`^a file "([^"]*)" containing "([^"]*)"$`, rc.aFileContaining)
	sc.Step(`^a legacy database with engine "([^"]*)" and args:$`, rc.aLegacyDatabaseWithEngineAndArgs)
	sc.Step(`^the legacy config file "([^"]*)":$`, rc.theLegacyConfigFile)
	sc.Step(`^the modern config file "([^"]*)":$`, rc.theModernConfigFile)

	// When
	sc.Step(`^I resolve the legacy database$`, rc.iResolveTheLegacyDatabase)
	sc.Step(`^I resolve the legacy database twice$`, rc.iResolveTheLegacyDatabaseTwice)
	sc.Step(`^I resolve the modern database$`, rc.iResolveTheModernDatabase)

	// Then
	sc.Step(`^resolution should succeed$`, rc.resolutionShouldSucceed)
	sc.Step(`^the descriptor driver should be "([^"]*)"$`, rc.theDescriptorDriverShouldBe)
	sc.Step(`^the descriptor path should be "([^"]*)"$`, rc.theDescriptorPathShouldBe)
	sc.Step(`^the descriptor connection should be exactly:$`, rc.theDescriptorConnectionShouldBeExactly)
	sc.Step(`^the descriptor should have no TLS material$`, rc.theDescriptorShouldHaveNoTLSMaterial)
	sc.Step(`^the TLS "([^"]*)" should be "([^"]*)"$`, rc.theTLSFieldShouldBe)
	sc.Step(`^the file "([^"]*)" should have been read (\d+) times?$`, rc.theFileShouldHaveBeenRead)
	sc.Step(`^no certificate files should have been read$`, rc.noCertificateFilesShouldHaveBeenRead)
	sc.Step(`^resolution should fail with a port parse error$`, rc.resolutionShouldFailWithPortParseError)
	sc.Step(`^resolution should fail with a not configured error$`, rc.resolutionShouldFailWithNotConfiguredError)
	sc.Step(`^resolution should fail with a file read error for "([^"]*)"$`, rc.resolutionShouldFailWithFileReadError)
	sc.Step(`^the failure should be a configuration error$`, rc.theFailureShouldBeAConfigurationError)
	sc.Step(`^both descriptors should be equal$`, rc.bothDescriptorsShouldBeEqual)
}

// ============================================================================
// Given
// ============================================================================

func (ctx *resolverContext) anEmptyFilesystem() error {
	ctx.reset()
	return nil
}

func (ctx *resolverContext) aFileContaining(path, content string) error {
	return afero.WriteFile(ctx.fs, path, []byte(content), 0o600)
}

func (ctx *resolverContext) aLegacyDatabaseWithEngineAndArgs(engine string, table *godog.Table) error {
	args := make(map[string]interface{})
	for _, row := range table.Rows[1:] {
		args[getCellValueFromTable(table, row, "key")] = getCellValueFromTable(table, row, "value")
	}

	db, err := config.LegacyDatabaseFromArgs(engine, args)
	if err != nil {
		return fmt.Errorf("failed to build legacy database: %w", err)
	}
	ctx.legacy = db
	return nil
}

func (ctx *resolverContext) theLegacyConfigFile(path string, doc *godog.DocString) error {
	if err := ctx.writeConfigFile(path, doc.Content); err != nil {
		return err
	}
	db, err := config.LoadLegacyDatabase(ctx.fs, path)
	if err != nil {
		return fmt.Errorf("failed to load legacy config: %w", err)
	}
	ctx.legacy = db
	return nil
}

func (ctx *resolverContext) theModernConfigFile(path string, doc *godog.DocString) error {
	if err := ctx.writeConfigFile(path, doc.Content); err != nil {
		return err
	}
	cfg, err := config.LoadModernDatabase(ctx.fs, path)
	if err != nil {
		return fmt.Errorf("failed to load modern config: %w", err)
	}
	ctx.modern = cfg
	return nil
}

func (ctx *resolverContext) writeConfigFile(path, content string) error {
	ctx.configFiles = append(ctx.configFiles, path)
	return afero.WriteFile(ctx.fs, path, []byte(content), 0o600)
}

// ============================================================================
// When
// ============================================================================

func (ctx *resolverContext) service() *resolver.Service {
	return resolver.NewService(ctx.fs, zap.NewNop(), ctx.recorder)
}

func (ctx *resolverContext) iResolveTheLegacyDatabase() error {
	ctx.descriptor, ctx.err = ctx.service().Legacy().Resolve(ctx.legacy)
	return nil
}

func (ctx *resolverContext) iResolveTheLegacyDatabaseTwice() error {
	svc := ctx.service()
	ctx.descriptor, ctx.err = svc.Legacy().Resolve(ctx.legacy)
	if ctx.err != nil {
		return ctx.err
	}
	ctx.second, ctx.err = svc.Legacy().Resolve(ctx.legacy)
	return nil
}

func (ctx *resolverContext) iResolveTheModernDatabase() error {
	ctx.descriptor, ctx.err = ctx.service().Modern().Resolve(ctx.modern)
	return nil
}

// ============================================================================
// Then
// ============================================================================

func (ctx *resolverContext) resolutionShouldSucceed() error {
	if ctx.err != nil {
		return fmt.Errorf("expected resolution to succeed, got: %w", ctx.err)
	}
	if ctx.descriptor == nil {
		return fmt.Errorf("expected a descriptor, got nil")
	}
	return nil
}

func (ctx *resolverContext) theDescriptorDriverShouldBe(driver string) error {
	if err := ctx.resolutionShouldSucceed(); err != nil {
		return err
	}
	if string(ctx.descriptor.Driver) != driver {
		return fmt.Errorf("expected driver %q, got %q", driver, ctx.descriptor.Driver)
	}
	return nil
}

func (ctx *resolverContext) theDescriptorPathShouldBe(path string) error {
	if err := ctx.resolutionShouldSucceed(); err != nil {
		return err
	}
	if ctx.descriptor.Path != path {
		return fmt.Errorf("expected path %q, got %q", path, ctx.descriptor.Path)
	}
	if ctx.descriptor.Postgres != nil {
		return fmt.Errorf("sqlite descriptor should carry no postgres connection")
	}
	return nil
}

func (ctx *resolverContext) theDescriptorConnectionShouldBeExactly(table *godog.Table) error {
	if err := ctx.resolutionShouldSucceed(); err != nil {
		return err
	}
	if ctx.descriptor.Postgres == nil {
		return fmt.Errorf("descriptor has no postgres connection")
	}

	var expected connection.PostgresConnection
	for _, row := range table.Rows[1:] {
		field := getCellValueFromTable(table, row, "field")
		value := getCellValueFromTable(table, row, "value")
		switch field {
		case "connection_string":
			expected.ConnectionString = value
		case "host":
			expected.Host = value
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid port in table: %w", err)
			}
			expected.Port = port
		case "database":
			expected.Database = value
		case "user":
			expected.User = value
		case "password":
			expected.Password = value
		case "sslmode":
			expected.SSLMode = value
		default:
			return fmt.Errorf("unknown connection field %q", field)
		}
	}

	if actual := *ctx.descriptor.Postgres; !reflect.DeepEqual(expected, actual) {
		return fmt.Errorf("expected connection %+v, got %+v", expected, actual)
	}
	return nil
}

func (ctx *resolverContext) theDescriptorShouldHaveNoTLSMaterial() error {
	if err := ctx.resolutionShouldSucceed(); err != nil {
		return err
	}
	if ctx.descriptor.HasTLS() {
		return fmt.Errorf("expected no TLS material, got %+v", ctx.descriptor.Postgres.TLS)
	}
	return nil
}

func (ctx *resolverContext) theTLSFieldShouldBe(field, expected string) error {
	if err := ctx.resolutionShouldSucceed(); err != nil {
		return err
	}
	if !ctx.descriptor.HasTLS() {
		return fmt.Errorf("descriptor has no TLS material")
	}

	material := ctx.descriptor.Postgres.TLS
	var actual []byte
	switch field {
	case "ca":
		actual = material.CA
	case "cert":
		actual = material.Cert
	case "key":
		actual = material.Key
	case "passphrase":
		actual = material.Passphrase
	default:
		return fmt.Errorf("unknown TLS field %q", field)
	}

	if string(actual) != expected {
		return fmt.Errorf("expected TLS %s %q, got %q", field, expected, actual)
	}
	return nil
}

func (ctx *resolverContext) theFileShouldHaveBeenRead(path string, times int) error {
	if reads := ctx.fs.Reads(path); reads != times {
		return fmt.Errorf("expected %s to be read %d times, got %d", path, times, reads)
	}
	return nil
}

func (ctx *resolverContext) noCertificateFilesShouldHaveBeenRead() error {
	reads := ctx.fs.TotalReads()
	for _, path := range ctx.configFiles {
		reads -= ctx.fs.Reads(path)
	}
	if reads != 0 {
		return fmt.Errorf("expected no certificate reads, got %d", reads)
	}
	return nil
}

func (ctx *resolverContext) resolutionShouldFailWithPortParseError() error {
	var portErr *shared.PortParseError
	if !errors.As(ctx.err, &portErr) {
		return fmt.Errorf("expected port parse error, got: %v", ctx.err)
	}
	return ctx.noDescriptor()
}

func (ctx *resolverContext) resolutionShouldFailWithNotConfiguredError() error {
	var notConfigured *shared.NotConfiguredError
	if !errors.As(ctx.err, &notConfigured) {
		return fmt.Errorf("expected not configured error, got: %v", ctx.err)
	}
	return ctx.noDescriptor()
}

func (ctx *resolverContext) resolutionShouldFailWithFileReadError(path string) error {
	var readErr *shared.FileReadError
	if !errors.As(ctx.err, &readErr) {
		return fmt.Errorf("expected file read error, got: %v", ctx.err)
	}
	if readErr.Path != path {
		return fmt.Errorf("expected failing path %q, got %q", path, readErr.Path)
	}
	return ctx.noDescriptor()
}

func (ctx *resolverContext) theFailureShouldBeAConfigurationError() error {
	var cfgErr *shared.ConfigurationError
	if !errors.As(ctx.err, &cfgErr) {
		return fmt.Errorf("expected configuration error, got: %v", ctx.err)
	}
	return nil
}

func (ctx *resolverContext) bothDescriptorsShouldBeEqual() error {
	if err := ctx.resolutionShouldSucceed(); err != nil {
		return err
	}
	if !reflect.DeepEqual(ctx.descriptor, ctx.second) {
		return fmt.Errorf("descriptors differ: %+v vs %+v", ctx.descriptor, ctx.second)
	}
	return nil
}

func (ctx *resolverContext) noDescriptor() error {
	if ctx.descriptor != nil {
		return fmt.Errorf("expected no descriptor on failure, got %+v", ctx.descriptor)
	}
	return nil
}

// ============================================================================
// Helper Functions
// ============================================================================

// getCellValueFromTable gets a cell value from a table row by column name
// It uses the first row (table.Rows[0]) as the header to find the column index
func getCellValueFromTable(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	headerRow := table.Rows[0]
	for i, headerCell := range headerRow.Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}

	return ""
}
