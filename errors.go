package hashgrid

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hashgrid/geom"
	"github.com/hupe1980/hashgrid/resource"
	"github.com/hupe1980/hashgrid/sh"
)

var (
	// ErrInvalidConfig is matched by every construction error.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrClosed is returned when encoding with a closed encoder.
	ErrClosed = errors.New("encoder is closed")
)

// ConfigError indicates an invalid construction parameter.
//
// errors.Is(err, ErrInvalidConfig) is true for every ConfigError. The
// underlying error (if any) can be accessed via errors.Unwrap.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
	cause  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

func (e *ConfigError) Unwrap() error { return e.cause }

// ErrOutputSize indicates a destination buffer of the wrong length.
type ErrOutputSize struct {
	Expected int
	Actual   int
}

func (e *ErrOutputSize) Error() string {
	return fmt.Sprintf("output size mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ide *sh.ErrInvalidDegree
	if errors.As(err, &ide) {
		return &ConfigError{Field: "degree", Value: ide.Degree, Reason: "must be in [1, 5]", cause: err}
	}
	if errors.Is(err, geom.ErrInvalidBox) {
		return &ConfigError{Field: "bounding_box", Value: "", Reason: err.Error(), cause: err}
	}
	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return &ConfigError{Field: "memory", Value: "", Reason: "feature tables exceed the memory limit", cause: err}
	}

	return err
}
