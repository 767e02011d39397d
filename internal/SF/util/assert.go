package util

import (
	"fmt"
	"reflect"
)

// Assert panics with a formatted message if the condition is false. It
// guards internal invariants of the storage and executor layers; user input
// errors are returned, never asserted.
func Assert(condition bool, format string, args ...interface{}) {
	if !condition {
		panic(fmt.Sprintf("Assertion failed: "+format, args...))
	}
}

// AssertNotNil panics if value is nil, including typed nil pointers, maps
// and slices.
func AssertNotNil(value interface{}, name string) {
	if value == nil {
		panic(fmt.Sprintf("Assertion failed: %s must not be nil", name))
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		if v.IsNil() {
			panic(fmt.Sprintf("Assertion failed: %s must not be nil", name))
		}
	}
}
