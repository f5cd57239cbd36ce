package toolchain

import (
	"errors"
	"fmt"
)

// Kinds of configuration errors. Use errors.Is to match them against a returned error.
var (
	ErrMissingBuildOption = errors.New("missing build option")
	ErrModuleUnavailable  = errors.New("module unavailable")
	ErrFlagTable          = errors.New("incomplete flag table")
	ErrMissingFlag        = errors.New("no flag mapping for option")
	ErrUnknownOption      = errors.New("unknown toolchain option")
	ErrLifecycle          = errors.New("invalid lifecycle transition")
)

// A ConfigError reports a toolchain configuration defect. Configuration errors
// are never transient: the user or the site configuration must be corrected.
type ConfigError struct {
	// Kind is one of the Err* values of this package.
	Kind error
	// Message describes the defect.
	Message string
}

// NewConfigError creates a ConfigError of the given kind with a formatted message.
func NewConfigError(kind error, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Kind
}
