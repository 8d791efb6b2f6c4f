package gateway

import (
	"errors"
	"fmt"
)

// ConfigurationError means a provider has no usable credential. It is fatal
// to calls on that provider only.
type ConfigurationError struct {
	Provider string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: API key not configured", e.Provider)
}

// ServiceError is a transport failure, non-2xx status, error envelope or
// unusable body from a provider. HTTPStatus is 0 when no response arrived.
type ServiceError struct {
	Provider   string
	HTTPStatus int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// IsConfiguration reports whether err carries a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
