package configuration

import "fmt"

// ConfigError is returned for any malformed or missing configuration
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func newConfigError(format string, a ...interface{}) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, a...)}
}
