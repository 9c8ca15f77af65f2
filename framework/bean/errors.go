package bean

import "errors"

var (
	// ErrInvalidDefinition is returned when a definition cannot be built from
	// the supplied type and options.
	ErrInvalidDefinition = errors.New("invalid bean definition")

	// ErrInvalidScope is returned by ParseScope for anything other than
	// singleton or prototype.
	ErrInvalidScope = errors.New("invalid scope")

	// ErrNoSuitableConstructor is returned when a type has neither an
	// autowired constructor nor a constructor without parameters.
	ErrNoSuitableConstructor = errors.New("no suitable constructor")
)
