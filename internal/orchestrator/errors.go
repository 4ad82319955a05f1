package orchestrator

import "fmt"

// ConfigurationError reports missing or invalid orchestrator configuration.
// It is returned before any node I/O starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}
