package assert

import (
	"fmt"
	"reflect"
)

// NotNil panics when `value` is nil, including a nil pointer, map, slice,
// func or chan stored in an interface.
func NotNil(value any, name string) {
	if value == nil {
		panic(fmt.Sprintf("%s must not be nil", name))
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			panic(fmt.Sprintf("%s must not be nil (got nil %s)", name, rv.Type()))
		}
	}
}
