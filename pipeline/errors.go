package pipeline

import "fmt"

// ConfigError reports an invalid pipeline configuration. It is fatal at
// construction time: running with a meaningless configuration would produce
// meaningless output.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("pipeline config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
