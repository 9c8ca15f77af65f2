package bean

import (
	"reflect"
	"unicode"
)

// DefaultName derives a bean name from a type: pointers are dereferenced and
// the simple type name is decapitalized.
//
//	DefaultName(reflect.TypeOf(&OrderService{})) // "orderService"
//	DefaultName(reflect.TypeOf(&URLParser{}))    // "URLParser"
func DefaultName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return Decapitalize(t.Name())
}

// Decapitalize lower-cases the first rune of s, unless the first two runes are
// both upper case, in which case s is returned unchanged.
func Decapitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	if len(runes) > 1 && unicode.IsUpper(runes[0]) && unicode.IsUpper(runes[1]) {
		return s
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
