package bean

import (
	"errors"
	"reflect"
)

// Option configures a definition while it is being built.
type Option func(*options)

type ctorSpec struct {
	fn        any
	autowired bool
	built     Constructor
}

type options struct {
	name          string
	scope         string
	lazy          bool
	ctors         []ctorSpec
	exposes       []reflect.Type
	postConstruct []Hook
	preDestroy    []Hook
	values        []any
	prebuilt      bool
	errs          []error
}

// WithName overrides the default decapitalized type name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithScope sets the scope by name ("singleton" or "prototype", any case).
func WithScope(scope string) Option {
	return func(o *options) { o.scope = scope }
}

// WithLazy excludes a singleton from eager initialization; it is created on
// first lookup instead.
func WithLazy() Option {
	return func(o *options) { o.lazy = true }
}

// WithConstructor declares a plain constructor. It is only selected when it
// takes no parameters and no autowired constructor is declared.
func WithConstructor(fn any) Option {
	return func(o *options) { o.ctors = append(o.ctors, ctorSpec{fn: fn}) }
}

// WithAutowiredConstructor declares the constructor used for instantiation.
// Each parameter is resolved from the container by type.
//
//	bean.WithAutowiredConstructor(func(repo Repository, log *zap.Logger) *OrderService {
//	    return &OrderService{repo: repo, log: log}
//	})
func WithAutowiredConstructor(fn any) Option {
	return func(o *options) { o.ctors = append(o.ctors, ctorSpec{fn: fn, autowired: true}) }
}

// WithFactory declares an autowired constructor without reflection: params are
// resolved in order and passed to fn.
func WithFactory(fn func(args []any) (any, error), params ...reflect.Type) Option {
	return func(o *options) {
		if fn == nil {
			o.errs = append(o.errs, errors.New("factory is nil"))
			return
		}
		o.ctors = append(o.ctors, ctorSpec{built: Constructor{
			Params:    append([]reflect.Type(nil), params...),
			Autowired: true,
			call:      fn,
		}})
	}
}

// As additionally indexes the bean under the interface type I, so it can be
// looked up or injected as I.
func As[I any]() Option {
	return func(o *options) { o.exposes = append(o.exposes, TypeOf[I]()) }
}

// WithPostConstruct adds an initialization hook. Hooks run after field
// injection, in the order they were declared.
func WithPostConstruct[T any](name string, fn func(T) error) Option {
	return func(o *options) {
		if fn == nil {
			o.errs = append(o.errs, errors.New("post-construct hook "+name+" is nil"))
			return
		}
		o.postConstruct = append(o.postConstruct, typedHook(name, fn))
	}
}

// WithPreDestroy adds a destruction hook, run when the container closes.
// Only singletons are destroyed.
func WithPreDestroy[T any](name string, fn func(T) error) Option {
	return func(o *options) {
		if fn == nil {
			o.errs = append(o.errs, errors.New("pre-destroy hook "+name+" is nil"))
			return
		}
		o.preDestroy = append(o.preDestroy, typedHook(name, fn))
	}
}
