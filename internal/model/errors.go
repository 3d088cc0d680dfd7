package model

import "fmt"

// InvalidInputError reports malformed, non-text request input. The request
// is rejected before any oracle call is made.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports an out-of-range request or engine parameter.
// The request is rejected before any processing happens.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// OracleError wraps a failed or timed-out scoring call. Position is the
// original token position whose perturbation was being scored, or -1 for
// the base call. The engine never retries: retry policy belongs to whoever
// owns the oracle. No partial report is produced.
type OracleError struct {
	Position int
	Err      error
}

func (e *OracleError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("oracle: base score: %v", e.Err)
	}
	return fmt.Sprintf("oracle: position %d: %v", e.Position, e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }
