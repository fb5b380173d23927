package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Configuration errors

// ConfigurationError reports a source whose database configuration cannot be
// turned into a connection descriptor.
type ConfigurationError struct {
	*DomainError
	Source string
}

func NewConfigurationError(source, message string) *ConfigurationError {
	return &ConfigurationError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s database: %s", source, message)},
		Source:      source,
	}
}

// NotConfiguredError is returned when a source has no database block at all.
type NotConfiguredError struct {
	*ConfigurationError
}

func NewNotConfiguredError(source string) *NotConfiguredError {
	return &NotConfiguredError{ConfigurationError: NewConfigurationError(source, "not configured")}
}

func (e *NotConfiguredError) Unwrap() error {
	return e.ConfigurationError
}

// PortParseError is returned when a textual port is not a non-negative integer.
type PortParseError struct {
	*ConfigurationError
	Value string
	Err   error
}

func NewPortParseError(source, value string, err error) *PortParseError {
	return &PortParseError{
		ConfigurationError: NewConfigurationError(source, fmt.Sprintf("invalid port %q", value)),
		Value:              value,
		Err:                err,
	}
}

func (e *PortParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.ConfigurationError}
	}
	return []error{e.ConfigurationError, e.Err}
}

// File errors

// FileReadError is returned when a certificate, key or CA file referenced by
// configuration cannot be read.
type FileReadError struct {
	*DomainError
	Field string
	Path  string
	Err   error
}

func NewFileReadError(field, path string, err error) *FileReadError {
	return &FileReadError{
		DomainError: &DomainError{Message: fmt.Sprintf("failed to read %s file %q: %v", field, path, err)},
		Field:       field,
		Path:        path,
		Err:         err,
	}
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
