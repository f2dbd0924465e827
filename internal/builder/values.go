package builder

import (
	"errors"
	"reflect"

	"github.com/mohae/deepcopy"
)

var errCyclicValue = errors.New("value contains a reference cycle")

func cloneValue(v any) any {
	if v == nil {
		return nil
	}
	return deepcopy.Copy(v)
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return deepcopy.Copy(m).(map[string]any)
}

// isComposite reports whether v is anything other than a primitive
// (nil, string, bool or number).
func isComposite(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct,
		reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// checkAcyclic fails if v reaches itself through maps, slices or pointers.
// deepcopy does not track visited values, so copying a cycle would never end.
func checkAcyclic(v any) error {
	if v == nil {
		return nil
	}
	if !walkAcyclic(reflect.ValueOf(v), make(map[uintptr]bool)) {
		return errCyclicValue
	}
	return nil
}

func walkAcyclic(v reflect.Value, active map[uintptr]bool) bool {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return true
		}
		return walkAcyclic(v.Elem(), active)
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() || (v.Kind() == reflect.Slice && v.Len() == 0) {
			return true
		}
		ptr := v.Pointer()
		if active[ptr] {
			return false
		}
		active[ptr] = true
		defer delete(active, ptr)

		switch v.Kind() {
		case reflect.Pointer:
			return walkAcyclic(v.Elem(), active)
		case reflect.Map:
			iter := v.MapRange()
			for iter.Next() {
				if !walkAcyclic(iter.Value(), active) {
					return false
				}
			}
		default:
			for i := 0; i < v.Len(); i++ {
				if !walkAcyclic(v.Index(i), active) {
					return false
				}
			}
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !walkAcyclic(v.Index(i), active) {
				return false
			}
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !walkAcyclic(v.Field(i), active) {
				return false
			}
		}
	}
	return true
}
