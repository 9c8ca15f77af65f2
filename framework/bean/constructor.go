package bean

import (
	"errors"
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Constructor is the instantiation step of a definition: the parameter types
// the container must resolve, and the function that builds the instance from
// the resolved arguments.
type Constructor struct {
	// Params are resolved by type, in order, before Invoke is called.
	Params []reflect.Type

	// Autowired marks the constructor as the designated injection point.
	Autowired bool

	call func(args []any) (any, error)
}

// Valid reports whether the constructor can be invoked.
func (c Constructor) Valid() bool { return c.call != nil }

// Invoke builds a new instance. len(args) must equal len(c.Params).
func (c Constructor) Invoke(args []any) (any, error) {
	if c.call == nil {
		return nil, ErrNoSuitableConstructor
	}
	if len(args) != len(c.Params) {
		return nil, fmt.Errorf("constructor expects %d arguments, got %d", len(c.Params), len(args))
	}
	return c.call(args)
}

// funcConstructor adapts a Go function with the signature func(deps...) T or
// func(deps...) (T, error) into a Constructor producing values assignable to out.
func funcConstructor(fn any, out reflect.Type, autowired bool) (Constructor, error) {
	if fn == nil {
		return Constructor{}, errors.New("constructor is nil")
	}

	val := reflect.ValueOf(fn)
	typ := val.Type()

	if typ.Kind() != reflect.Func {
		return Constructor{}, fmt.Errorf("constructor must be a function, got %s", typ)
	}
	if typ.IsVariadic() {
		return Constructor{}, fmt.Errorf("constructor %s must not be variadic", typ)
	}
	if typ.NumOut() == 0 || typ.NumOut() > 2 {
		return Constructor{}, fmt.Errorf("constructor %s must return (T) or (T, error)", typ)
	}
	if typ.NumOut() == 2 && !typ.Out(1).Implements(errorType) {
		return Constructor{}, fmt.Errorf("constructor %s: second return value must implement error", typ)
	}
	if !typ.Out(0).AssignableTo(out) {
		return Constructor{}, fmt.Errorf("constructor %s returns %s, not assignable to %s", typ, typ.Out(0), out)
	}

	params := make([]reflect.Type, typ.NumIn())
	for i := range params {
		params[i] = typ.In(i)
	}

	call := func(args []any) (any, error) {
		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			if arg == nil {
				in[i] = reflect.Zero(params[i])
				continue
			}
			v := reflect.ValueOf(arg)
			if !v.Type().AssignableTo(params[i]) {
				return nil, fmt.Errorf("argument %d: %s is not assignable to %s", i, v.Type(), params[i])
			}
			in[i] = v
		}

		results := val.Call(in)
		if len(results) == 2 && !results[1].IsNil() {
			return nil, results[1].Interface().(error)
		}
		return results[0].Interface(), nil
	}

	return Constructor{Params: params, Autowired: autowired, call: call}, nil
}

// zeroConstructor allocates a zero value of the struct a pointer type points to.
func zeroConstructor(t reflect.Type) Constructor {
	elem := t.Elem()
	return Constructor{
		call: func([]any) (any, error) {
			return reflect.New(elem).Interface(), nil
		},
	}
}

// selectConstructor picks the first autowired constructor, falling back to the
// first constructor without parameters.
func selectConstructor(ctors []Constructor) (Constructor, error) {
	for _, c := range ctors {
		if c.Autowired {
			return c, nil
		}
	}
	for _, c := range ctors {
		if len(c.Params) == 0 {
			return c, nil
		}
	}
	return Constructor{}, ErrNoSuitableConstructor
}
