package bind

import (
	"errors"
	"fmt"
)

var (
	// ErrNotObservable is reported when a field exists outside the container's
	// change-notification mechanism.
	ErrNotObservable = errors.New("bind: field is not observable")
	// ErrNilUpdatable is reported when binding a nil wrapper.
	ErrNilUpdatable = errors.New("bind: updatable is nil")
)

// ConfigError reports a programmer error detected while constructing a
// binding or while parsing an input. It is never used for validation
// rejections.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bind: %v", e.Err)
	}
	return fmt.Sprintf("bind: field %q: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
