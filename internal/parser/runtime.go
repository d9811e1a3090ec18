package parser

import (
	"fmt"
	"reflect"

	"github.com/cmmoran/mimicgen/internal/model"
)

// FromReflect builds the TypeDescriptor of a named struct type from its runtime
// description. Both T and *T are accepted.
func FromReflect(t reflect.Type) (*model.TypeDescriptor, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrNotStruct)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t.Name() == "" {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}

	set := &fieldSet{}
	collectReflect(set, t, nil)

	return &model.TypeDescriptor{
		Source:     model.SourceRuntime,
		SimpleName: t.Name(),
		PkgPath:    t.PkgPath(),
		TypeRef:    model.PointerTo(model.TypeRefFromReflect(t)),
		Fields:     set.sorted(),
	}, nil
}

// collectReflect adds the fields declared on t and, for each struct embedded by
// value, the fields of that struct.
func collectReflect(set *fieldSet, t reflect.Type, path []string) {
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			collectReflect(set, sf.Type, extend(path, sf.Name))
			continue
		}
		set.add(model.NewRuntimeField(t, sf, path))
	}
}
