// Package helpers holds fail-fast checks used by constructors when wiring reeferlink components.
package helpers

import (
	"reflect"
	"time"
)

// StrPanic panics with panicMessage if s is empty, otherwise returns s.
//
// Called from constructors that need a non-empty setting (service type, device token, bucket scope).
func StrPanic(s string, panicMessage string) string {
	if s == "" {
		panic(panicMessage)
	}
	return s
}

// NilPanic panics with panicMessage if v is nil, including typed nil pointers, slices, maps, chans,
// funcs and interfaces; otherwise returns v unchanged.
//
// Called from service and adapter constructors for their required collaborators.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

// DurationPanic panics with panicMessage unless d is positive.
//
// Called from service.NewOrchestrator for the deadline budgets and probe timeouts.
func DurationPanic(d time.Duration, panicMessage string) time.Duration {
	if d <= 0 {
		panic(panicMessage)
	}
	return d
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
