// Package pipelineerror defines the typed errors raised by the analysis
// pipeline. All failures are whole-batch: a function either augments every
// record it was given or returns one of these errors before mutating anything.
package pipelineerror

import "fmt"

// InvalidInputError reports a record that violates a pipeline precondition,
// such as a purchase with no timestamp.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: field '%s': %s", e.Field, e.Reason)
}

// ConfigError reports a configuration parameter that violates its documented
// constraint, such as a minimum occurrence count below 2.
type ConfigError struct {
	Param  string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v: %s", e.Param, e.Value, e.Reason)
}

// LoadError reports a failure to read purchase data from an external source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load purchases from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
