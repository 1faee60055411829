package persistent

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"
)

// mappableCache memoizes layout checks per element type.
var mappableCache sync.Map // reflect.Type -> error

// sizeOf validates that T is safe to map and returns its byte size.
// The check runs before any file I/O.
func sizeOf[T any](path string) (int64, error) {
	var zero T
	size := int64(unsafe.Sizeof(zero))
	if size == 0 {
		return 0, &ConstraintError{Path: path, Reason: "zero-size types cannot be mapped"}
	}
	if err := mappable(reflect.TypeFor[T]()); err != nil {
		return 0, &ConstraintError{Path: path, Reason: err.Error()}
	}
	return size, nil
}

// mappable reports whether t is indirection-free: no member anywhere in
// its structure may hold a process-local address, since the bytes are
// reinterpreted across process lifetimes.
func mappable(t reflect.Type) error {
	if cached, ok := mappableCache.Load(t); ok {
		if cached == nil {
			return nil
		}
		return cached.(error)
	}

	err := checkFlat(t, t)
	if err == nil {
		mappableCache.Store(t, nil)
	} else {
		mappableCache.Store(t, err)
	}
	return err
}

func checkFlat(root, t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return checkFlat(root, t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if err := checkFlat(root, t.Field(i).Type); err != nil {
				return err
			}
		}
		return nil
	default:
		if root == t {
			return fmt.Errorf("type %s contains indirections and cannot be mapped", root)
		}
		return fmt.Errorf("type %s contains indirections (%s) and cannot be mapped", root, t)
	}
}
