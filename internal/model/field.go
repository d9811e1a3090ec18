package model

import (
	"go/types"
	"reflect"
	"strings"
)

// Source tells which metadata source a descriptor was built from.
type Source int

const (
	SourceRuntime     Source = iota // reflect
	SourceCompileTime               // go/types
)

func (s Source) String() string {
	switch s {
	case SourceRuntime:
		return "runtime"
	case SourceCompileTime:
		return "compile-time"
	}
	return "unknown"
}

type Visibility int

const (
	NonPublic Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "non-public"
}

// FieldDescriptor is one field of a target type as seen by the generator,
// independent of the metadata source it was read from.
type FieldDescriptor struct {
	Name          string
	DeclaredType  *TypeRef
	DeclaringType *TypeRef
	Visibility    Visibility
	IsFinal       bool // always false for Go struct fields
	IsConstant    bool // always false for Go struct fields

	// Path holds the embedded field names leading from the target type to the
	// declaring type; empty for fields the target declares itself.
	Path []string

	Source Source
	id     fieldID
}

// fieldID identifies the underlying metadata handle. Exactly one of the handle
// halves is set, depending on Source.
type fieldID struct {
	declaring reflect.Type
	index     int
	variable  *types.Var
	path      string
}

// NewRuntimeField builds a descriptor from a reflect.StructField declared on
// declaring and reached through path.
func NewRuntimeField(declaring reflect.Type, sf reflect.StructField, path []string) FieldDescriptor {
	vis := NonPublic
	if sf.IsExported() {
		vis = Public
	}
	return FieldDescriptor{
		Name:          sf.Name,
		DeclaredType:  TypeRefFromReflect(sf.Type),
		DeclaringType: TypeRefFromReflect(declaring),
		Visibility:    vis,
		Path:          clonePath(path),
		Source:        SourceRuntime,
		id: fieldID{
			declaring: declaring,
			index:     sf.Index[len(sf.Index)-1],
			path:      strings.Join(path, "."),
		},
	}
}

// NewCompileTimeField builds a descriptor from a struct field variable declared
// on declaring and reached through path.
func NewCompileTimeField(declaring *types.Named, v *types.Var, path []string) FieldDescriptor {
	vis := NonPublic
	if v.Exported() {
		vis = Public
	}
	return FieldDescriptor{
		Name:          v.Name(),
		DeclaredType:  TypeRefFromTypes(v.Type()),
		DeclaringType: TypeRefFromTypes(declaring),
		Visibility:    vis,
		Path:          clonePath(path),
		Source:        SourceCompileTime,
		id: fieldID{
			variable: v,
			path:     strings.Join(path, "."),
		},
	}
}

// Same reports whether f and o were built from the same metadata handle reached
// through the same embedding path.
func (f FieldDescriptor) Same(o FieldDescriptor) bool {
	return f.Source == o.Source && f.id == o.id
}

// Depth is the number of embedding steps between the target and the declaring type.
func (f FieldDescriptor) Depth() int {
	return len(f.Path)
}

// Selector is the dotted path used to reach the field from the target, e.g. "Base.name".
func (f FieldDescriptor) Selector() string {
	if len(f.Path) == 0 {
		return f.Name
	}
	return strings.Join(f.Path, ".") + "." + f.Name
}

func (f FieldDescriptor) String() string {
	return f.Selector() + " " + f.DeclaredType.String() + " (" + f.Visibility.String() + ", " + f.Source.String() + ")"
}

func clonePath(path []string) []string {
	if len(path) == 0 {
		return nil
	}
	return append([]string(nil), path...)
}
