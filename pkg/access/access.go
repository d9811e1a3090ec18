// Package access is the runtime used by generated mimics to read and write
// fields their package cannot name. Every call resolves the field again; no
// lookups are cached.
package access

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unsafe"
)

var (
	ErrNilTarget    = errors.New("target is nil")
	ErrNotStruct    = errors.New("not a pointer to a struct")
	ErrNoField      = errors.New("no such field")
	ErrTypeMismatch = errors.New("field type mismatch")
)

// Error is raised, as a panic, by Get and Set when the field cannot be reached.
// A missing field means the mimic is older than the type it wraps.
type Error struct {
	Op   string // "get" or "set"
	Type reflect.Type
	Path []string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("mimic %s %v.%s: %v", e.Op, e.Type, strings.Join(e.Path, "."), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Get returns the field reached from target through path. The last element of
// path is the field name, the elements before it name embedded structs.
func Get[T any](target any, path ...string) T {
	p := pointer[T]("get", target, path)
	return *p
}

// Set stores value in the field reached from target through path.
func Set[T any](target any, value T, path ...string) {
	p := pointer[T]("set", target, path)
	*p = value
}

func pointer[T any](op string, target any, path []string) *T {
	v, err := resolve(target, path)
	if err == nil {
		if want := reflect.TypeFor[T](); v.Type() != want {
			err = fmt.Errorf("%w: field is %v, accessor expects %v", ErrTypeMismatch, v.Type(), want)
		}
	}
	if err != nil {
		panic(&Error{Op: op, Type: reflect.TypeOf(target), Path: path, Err: err})
	}
	// UnsafeAddr sidesteps the read-only flag reflect puts on unexported fields.
	return (*T)(unsafe.Pointer(v.UnsafeAddr()))
}

func resolve(target any, path []string) (reflect.Value, error) {
	if len(path) == 0 {
		return reflect.Value{}, fmt.Errorf("%w: empty path", ErrNoField)
	}
	v := reflect.ValueOf(target)
	if !v.IsValid() {
		return reflect.Value{}, ErrNilTarget
	}
	if v.Kind() != reflect.Pointer {
		return reflect.Value{}, fmt.Errorf("%w: got %v", ErrNotStruct, v.Type())
	}
	if v.IsNil() {
		return reflect.Value{}, ErrNilTarget
	}
	v = v.Elem()
	for _, name := range path {
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("%w: %v has no field %q", ErrNotStruct, v.Type(), name)
		}
		i := fieldIndex(v.Type(), name)
		if i < 0 {
			return reflect.Value{}, fmt.Errorf("%w: %v.%s", ErrNoField, v.Type(), name)
		}
		v = v.Field(i)
	}
	return v, nil
}

// fieldIndex finds a field declared directly on t. Promoted fields are not
// considered; the embedding path is spelled out by the caller.
func fieldIndex(t reflect.Type, name string) int {
	for i := range t.NumField() {
		if t.Field(i).Name == name {
			return i
		}
	}
	return -1
}
