package bean

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Definition describes one component: its type, scope, name, the constructor
// chosen for it and the injection and lifecycle descriptors derived from the
// type. A Definition is immutable once New returns it.
type Definition struct {
	name          string
	typ           reflect.Type
	scope         Scope
	lazy          bool
	constructor   Constructor
	exposes       []reflect.Type
	fields        []Injection
	postConstruct []Hook
	preDestroy    []Hook
}

// Dependency is one static edge of the bean graph: a constructor parameter or
// an injected field.
type Dependency struct {
	Type      reflect.Type
	Qualifier string
	Field     string
}

// TypeOf returns the type token for T.
//
//	bean.TypeOf[*OrderService]()
//	bean.TypeOf[Repository]()   // interface types work too
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// New builds the definition of a component of type T.
//
//	def, err := bean.New[*OrderService](
//	    bean.WithScope("prototype"),
//	    bean.WithAutowiredConstructor(NewOrderService),
//	)
//
// Constructor selection happens here and only here: the first autowired
// constructor wins, otherwise the first constructor without parameters. When T
// is a pointer to a struct and no constructor is supplied, the zero value of
// the struct is used.
func New[T any](opts ...Option) (*Definition, error) {
	return build(TypeOf[T](), opts)
}

// Instance wraps an already constructed value as a singleton definition.
// Fields of v are not injected; lifecycle hooks still apply.
func Instance[T any](v T, opts ...Option) (*Definition, error) {
	all := make([]Option, 0, len(opts)+1)
	all = append(all, func(o *options) {
		o.values = append(o.values, any(v))
		o.prebuilt = true
	})
	all = append(all, opts...)
	return build(TypeOf[T](), all)
}

// MustNew is like New but panics on error. Intended for static declarations.
func MustNew[T any](opts ...Option) *Definition {
	def, err := New[T](opts...)
	if err != nil {
		panic(err)
	}
	return def
}

func build(typ reflect.Type, opts []Option) (*Definition, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.errs) > 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, typ, errors.Join(o.errs...))
	}

	name := strings.TrimSpace(o.name)
	if name == "" {
		name = DefaultName(typ)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: %s has no simple name, use WithName", ErrInvalidDefinition, typ)
	}

	scope, err := ParseScope(o.scope)
	if err != nil {
		return nil, fmt.Errorf("%w: bean %q: %w", ErrInvalidDefinition, name, err)
	}

	def := &Definition{
		name:  name,
		typ:   typ,
		scope: scope,
		lazy:  o.lazy,
	}

	var ctors []Constructor
	if o.prebuilt {
		if scope != Singleton {
			return nil, fmt.Errorf("%w: instance bean %q must be singleton", ErrInvalidDefinition, name)
		}
		v := o.values[0]
		ctors = append(ctors, Constructor{
			Autowired: true,
			call:      func([]any) (any, error) { return v, nil },
		})
	}
	for _, cs := range o.ctors {
		if cs.built.Valid() {
			ctors = append(ctors, cs.built)
			continue
		}
		c, err := funcConstructor(cs.fn, typ, cs.autowired)
		if err != nil {
			return nil, fmt.Errorf("%w: bean %q: %w", ErrInvalidDefinition, name, err)
		}
		ctors = append(ctors, c)
	}
	if len(ctors) == 0 && typ.Kind() == reflect.Pointer && typ.Elem().Kind() == reflect.Struct {
		ctors = append(ctors, zeroConstructor(typ))
	}

	def.constructor, err = selectConstructor(ctors)
	if err != nil {
		return nil, fmt.Errorf("bean %q (%s): %w", name, typ, err)
	}

	for _, exposed := range o.exposes {
		if !typ.AssignableTo(exposed) {
			return nil, fmt.Errorf("%w: bean %q: %s does not implement %s", ErrInvalidDefinition, name, typ, exposed)
		}
		if exposed != typ {
			def.exposes = append(def.exposes, exposed)
		}
	}

	if !o.prebuilt {
		def.fields = scanInjections(typ)
	}

	post, pre := interfaceHooks(typ)
	def.postConstruct = append(post, o.postConstruct...)
	def.preDestroy = append(pre, o.preDestroy...)

	return def, nil
}

// Name is the unique logical identifier of the bean.
func (d *Definition) Name() string { return d.name }

// Type is the concrete component type.
func (d *Definition) Type() reflect.Type { return d.typ }

// Scope is the lifetime policy.
func (d *Definition) Scope() Scope { return d.scope }

// IsSingleton reports whether one instance is shared per container.
func (d *Definition) IsSingleton() bool { return d.scope == Singleton }

// IsPrototype reports whether a new instance is built per lookup.
func (d *Definition) IsPrototype() bool { return d.scope == Prototype }

// Lazy reports whether the bean is skipped by eager initialization.
func (d *Definition) Lazy() bool { return d.lazy }

// Constructor returns the constructor selected when the definition was built.
func (d *Definition) Constructor() Constructor { return d.constructor }

// Types returns every type token the bean is indexed under: its own type
// first, then the types added with As.
func (d *Definition) Types() []reflect.Type {
	out := make([]reflect.Type, 0, len(d.exposes)+1)
	out = append(out, d.typ)
	return append(out, d.exposes...)
}

// Fields returns the field injection points in declaration order.
func (d *Definition) Fields() []Injection { return append([]Injection(nil), d.fields...) }

// PostConstruct returns the initialization hooks in invocation order.
func (d *Definition) PostConstruct() []Hook { return append([]Hook(nil), d.postConstruct...) }

// PreDestroy returns the destruction hooks in invocation order.
func (d *Definition) PreDestroy() []Hook { return append([]Hook(nil), d.preDestroy...) }

// Dependencies lists constructor parameters followed by injected fields.
func (d *Definition) Dependencies() []Dependency {
	out := make([]Dependency, 0, len(d.constructor.Params)+len(d.fields))
	for _, p := range d.constructor.Params {
		out = append(out, Dependency{Type: p})
	}
	for _, f := range d.fields {
		out = append(out, Dependency{Type: f.Type, Qualifier: f.Qualifier, Field: f.Field})
	}
	return out
}

func (d *Definition) String() string {
	return fmt.Sprintf("%s(%s, %s)", d.name, d.typ, d.scope)
}
