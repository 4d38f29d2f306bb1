package domain

import "fmt"

// ConfigurationError is fatal: the run cannot proceed without usable input/output locations
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for %q: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ParseError reports a structurally malformed file (Line == 0) or row
type ParseError struct {
	File   string
	Line   int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse error in %s: %s", e.File, e.Reason)
	}
	return fmt.Sprintf("parse error in %s line %d: %s", e.File, e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a semantically invalid field in an otherwise well-formed row
type ValidationError struct {
	File   string
	Line   int
	Field  ColumnName
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s in %s line %d: %s", e.Field, e.File, e.Line, e.Reason)
}
