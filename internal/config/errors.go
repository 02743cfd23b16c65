package config

import "fmt"

// ErrorType represents the type of configuration error.
type ErrorType int

const (
	// ErrNotFound indicates the configuration file was not found.
	ErrNotFound ErrorType = iota
	// ErrInvalid indicates the configuration file has invalid syntax or structure.
	ErrInvalid
	// ErrValidationFailed indicates a configuration value was rejected.
	ErrValidationFailed
)

// ConfigError represents a configuration-related error.
type ConfigError struct {
	// Type is the error type.
	Type ErrorType
	// Message is the error message.
	Message string
	// File is the configuration file path, empty for flag values.
	File string
	// Field is the configuration field that caused the error.
	Field string
	// Cause is the underlying error if any.
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	where := "configuration error"
	if e.File != "" {
		where = fmt.Sprintf("configuration error in %s", e.File)
	}
	if e.Field != "" {
		where = fmt.Sprintf("%s [field: %s]", where, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

func fieldError(field string, cause error) *ConfigError {
	return &ConfigError{
		Type:    ErrValidationFailed,
		Field:   field,
		Message: "invalid value",
		Cause:   cause,
	}
}
