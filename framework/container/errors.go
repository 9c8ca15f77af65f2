package container

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/km-arc/simsim/framework/bean"
)

var (
	// ErrDefinitionNotFound is returned for a name lookup with no definition.
	ErrDefinitionNotFound = errors.New("bean definition not found")

	// ErrNoBeanOfType is returned for a type lookup with no candidate.
	ErrNoBeanOfType = errors.New("no bean of type")

	// ErrAmbiguousType is returned for a type lookup with more than one candidate.
	ErrAmbiguousType = errors.New("ambiguous bean type")

	// ErrNoSuitableConstructor is returned when a definition has neither an
	// autowired constructor nor a parameterless one.
	ErrNoSuitableConstructor = bean.ErrNoSuitableConstructor

	// ErrCyclicDependency is returned when resolving a bean requires the bean
	// itself. The message carries the chain, e.g. "a -> b -> a".
	ErrCyclicDependency = errors.New("cyclic dependency")

	// ErrBeanCreationFailed matches every *CreationError.
	ErrBeanCreationFailed = errors.New("bean creation failed")

	// ErrUnresolvedFieldDependency matches every *FieldError.
	ErrUnresolvedFieldDependency = errors.New("unresolved field dependency")

	// ErrContainerClosed is returned by every operation after Close.
	ErrContainerClosed = errors.New("container closed")

	// ErrDefinitionInUse is returned when registering over a name whose
	// singleton has already been created.
	ErrDefinitionInUse = errors.New("bean definition in use")

	// ErrInvalidDefinition is returned when registering a nil definition.
	ErrInvalidDefinition = bean.ErrInvalidDefinition
)

// Creation phases reported by CreationError.
const (
	PhaseResolve       = "resolve"
	PhaseInstantiate   = "instantiate"
	PhaseInject        = "inject"
	PhasePostConstruct = "post-construct"
)

// CreationError wraps any failure raised while creating a bean.
type CreationError struct {
	Bean  string
	Phase string
	Err   error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("create bean %q: %s: %v", e.Bean, e.Phase, e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// Is makes every CreationError match ErrBeanCreationFailed.
func (e *CreationError) Is(target error) bool { return target == ErrBeanCreationFailed }

// FieldError reports a field whose dependency could not be resolved.
type FieldError struct {
	Bean  string
	Field string
	Type  reflect.Type
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("bean %q field %s (%s): %v", e.Bean, e.Field, e.Type, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Is makes every FieldError match ErrUnresolvedFieldDependency.
func (e *FieldError) Is(target error) bool { return target == ErrUnresolvedFieldDependency }

func cycleError(path []string, name string) error {
	chain := make([]string, 0, len(path)+1)
	chain = append(chain, path...)
	chain = append(chain, name)
	return fmt.Errorf("%w: %s", ErrCyclicDependency, strings.Join(chain, " -> "))
}

// panicError converts a recovered panic value into an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
