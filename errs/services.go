package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-party service errors (notification channels, object storage)
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrConfigMissing      = errors.New("configuration missing")
	ErrConfigInvalid      = errors.New("configuration invalid")
)

func NewServiceUnavailableError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		kind:       ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s is not available", service),
		Cause:      cause,
	}
}

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		kind:       ErrConfigMissing,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
		Field:      "config",
	}
}

func NewInvalidConfigError(configName, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		kind:       ErrConfigInvalid,
		Details:    fmt.Sprintf("Invalid configuration %s: %s", configName, reason),
		Field:      "config",
	}
}

func IsServiceUnavailableError(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing) || errors.Is(err, ErrConfigInvalid)
}
