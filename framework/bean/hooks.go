package bean

import (
	"fmt"
	"io"
	"reflect"
)

// PostConstructor is implemented by beans that need initialization after
// their fields have been injected.
type PostConstructor interface {
	PostConstruct() error
}

// PreDestroyer is implemented by singleton beans that release resources when
// the container shuts down.
type PreDestroyer interface {
	PreDestroy() error
}

// Hook is a named lifecycle callback.
type Hook struct {
	Name   string
	Invoke func(instance any) error
}

var (
	postConstructorType = reflect.TypeOf((*PostConstructor)(nil)).Elem()
	preDestroyerType    = reflect.TypeOf((*PreDestroyer)(nil)).Elem()
	closerType          = reflect.TypeOf((*io.Closer)(nil)).Elem()
)

// typedHook wraps fn so it can be invoked with an untyped instance.
func typedHook[T any](name string, fn func(T) error) Hook {
	return Hook{
		Name: name,
		Invoke: func(instance any) error {
			typed, ok := instance.(T)
			if !ok {
				var zero T
				return fmt.Errorf("hook %s: instance %T is not %T", name, instance, zero)
			}
			return fn(typed)
		},
	}
}

// interfaceHooks returns the hooks t declares through the lifecycle
// interfaces, in the order they run.
func interfaceHooks(t reflect.Type) (post, pre []Hook) {
	if t.Implements(postConstructorType) {
		post = append(post, typedHook("PostConstruct", PostConstructor.PostConstruct))
	}
	if t.Implements(preDestroyerType) {
		pre = append(pre, typedHook("PreDestroy", PreDestroyer.PreDestroy))
	}
	if t.Implements(closerType) {
		pre = append(pre, typedHook("Close", io.Closer.Close))
	}
	return post, pre
}
