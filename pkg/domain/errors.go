package domain

import "fmt"

// ConfigError reports an invalid component configuration. These are
// programmer errors surfaced at construction time and are never produced
// for bad data.
type ConfigError struct {
	Component string
	Field     string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Component, e.Field, e.Reason)
}

// NewConfigError builds a ConfigError.
func NewConfigError(component, field, reason string) error {
	return &ConfigError{Component: component, Field: field, Reason: reason}
}

// LimitError reports that a batch exceeded a configured hard limit. The
// engine refuses the work explicitly instead of degrading.
type LimitError struct {
	Limit  int
	Actual int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("scale limit exceeded: batch of %d items over configured maximum %d", e.Actual, e.Limit)
}
