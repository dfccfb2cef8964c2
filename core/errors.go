package core

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the class of every error that must abort setup.
	ErrConfiguration = errors.New("configuration error")

	// ErrUsage is the class of every error that is reported but not fatal.
	ErrUsage = errors.New("usage error")
)

// Configuration errors.
var (
	// ErrDuplicateFamily is returned when a second definition of an already
	// registered module family is registered.
	ErrDuplicateFamily = configError("module family already registered")

	// ErrAbstractModule is returned when the abstract module root itself is registered.
	ErrAbstractModule = configError("abstract module root cannot be registered")

	// ErrNotAModule is returned when a definition does not descend from the module root.
	ErrNotAModule = configError("definition does not descend from the module root")

	// ErrRegistryLocked is returned when registering after the registry was instantiated.
	ErrRegistryLocked = configError("module registry is locked")

	// ErrAlreadyConstructed is returned when a second application root is built.
	ErrAlreadyConstructed = configError("application root already constructed")
)

// Usage errors.
var (
	// ErrUndeclaredLifecycle is returned when triggering a name the host never declared.
	ErrUndeclaredLifecycle = usageError("lifecycle not declared by host")

	// ErrInvalidLifecycle is returned for lifecycle names without the "On" prefix.
	ErrInvalidLifecycle = usageError("lifecycle name must begin with 'On'")

	// ErrReservedLifecycle is returned for OnActive and OnDestroy.
	ErrReservedLifecycle = usageError("lifecycle name is reserved")

	// ErrSecondaryDestroy is returned when a secondary manager is asked to destroy its behaviors.
	ErrSecondaryDestroy = usageError("behaviors can only be destroyed by a primary manager")

	// ErrNoPrimaryHost is returned when an inactive behavior triggers a lifecycle.
	ErrNoPrimaryHost = usageError("behavior has no primary host")

	// ErrArgumentMismatch is returned when lifecycle arguments do not fit a handler signature.
	ErrArgumentMismatch = usageError("lifecycle argument mismatch")

	// ErrNodeDestroyed is returned when a destroyed node is mutated.
	ErrNodeDestroyed = usageError("node destroyed")
)

type classifiedError struct {
	class error
	msg   string
}

func (e *classifiedError) Error() string { return e.msg }

// Unwrap exposes the class so errors.Is(err, ErrUsage) works.
func (e *classifiedError) Unwrap() error { return e.class }

func configError(msg string) error { return &classifiedError{class: ErrConfiguration, msg: msg} }

func usageError(msg string) error { return &classifiedError{class: ErrUsage, msg: msg} }

// IsConfiguration reports whether err belongs to the configuration class.
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }

// IsUsage reports whether err belongs to the usage class.
func IsUsage(err error) bool { return errors.Is(err, ErrUsage) }

// Errorf wraps a sentinel with formatted context, keeping it matchable.
func Errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
