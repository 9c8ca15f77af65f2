package bean

import (
	"fmt"
	"reflect"
	"unsafe"
)

// TagAutowired marks a struct field as an injection point. The tag value, if
// any, names the bean that must be injected:
//
//	type OrderService struct {
//	    Repo   Repository `autowired:""`
//	    Mailer Mailer     `autowired:"smtpMailer"`
//	}
const TagAutowired = "autowired"

// Injection is one field injection point of a bean.
type Injection struct {
	// Field is the Go field name.
	Field string

	// Type is the declared field type, used for type-based lookup.
	Type reflect.Type

	// Qualifier, when set, names the bean to inject instead of a type lookup.
	Qualifier string

	index []int
}

// Set assigns dep to the field on instance. Unexported fields are written
// as well.
func (in Injection) Set(instance, dep any) error {
	v := reflect.ValueOf(instance)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("field %s: target must be a non-nil pointer, got %T", in.Field, instance)
	}

	field := v.Elem().FieldByIndex(in.index)
	if !field.CanSet() {
		field = reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
	}

	if dep == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	dv := reflect.ValueOf(dep)
	if !dv.Type().AssignableTo(field.Type()) {
		return fmt.Errorf("field %s: %s is not assignable to %s", in.Field, dv.Type(), field.Type())
	}
	field.Set(dv)
	return nil
}

// scanInjections collects the autowired fields declared directly on the struct
// t points to, in declaration order. Embedded structs are not descended into.
func scanInjections(t reflect.Type) []Injection {
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil
	}

	st := t.Elem()
	var out []Injection
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		qualifier, ok := f.Tag.Lookup(TagAutowired)
		if !ok {
			continue
		}
		out = append(out, Injection{
			Field:     f.Name,
			Type:      f.Type,
			Qualifier: qualifier,
			index:     f.Index,
		})
	}
	return out
}
