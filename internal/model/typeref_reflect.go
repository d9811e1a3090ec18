package model

import (
	"reflect"
	"strings"
)

// TypeRefFromReflect converts a runtime type description into a TypeRef.
func TypeRefFromReflect(t reflect.Type) *TypeRef {
	if t == nil {
		return Invalid("nil reflect.Type")
	}
	if name := t.Name(); name != "" {
		if strings.ContainsRune(name, '[') {
			return Invalid("generic instantiation " + t.String() + " is not supported by the runtime source")
		}
		if t.PkgPath() == "" {
			return Basic(name)
		}
		// function-local types look package-level here; pkg/mimic checks targets
		// against their declaration
		return Named(t.PkgPath(), name)
	}

	switch t.Kind() {
	case reflect.Pointer:
		return PointerTo(TypeRefFromReflect(t.Elem()))
	case reflect.Slice:
		return &TypeRef{Kind: KindSlice, Elem: TypeRefFromReflect(t.Elem())}
	case reflect.Array:
		return &TypeRef{Kind: KindArray, Len: int64(t.Len()), Elem: TypeRefFromReflect(t.Elem())}
	case reflect.Map:
		return &TypeRef{Kind: KindMap, Key: TypeRefFromReflect(t.Key()), Elem: TypeRefFromReflect(t.Elem())}
	case reflect.Chan:
		dir := ChanBoth
		switch t.ChanDir() {
		case reflect.SendDir:
			dir = ChanSend
		case reflect.RecvDir:
			dir = ChanRecv
		}
		return &TypeRef{Kind: KindChan, Dir: dir, Elem: TypeRefFromReflect(t.Elem())}
	case reflect.Func:
		return signatureFromReflect(t)
	case reflect.Interface:
		out := &TypeRef{Kind: KindInterface}
		for i := range t.NumMethod() {
			m := t.Method(i)
			out.Methods = append(out.Methods, &MethodRef{
				Name:    m.Name,
				PkgPath: m.PkgPath,
				Sig:     signatureFromReflect(m.Type),
			})
		}
		return out
	case reflect.Struct:
		out := &TypeRef{Kind: KindStruct}
		for i := range t.NumField() {
			sf := t.Field(i)
			out.Fields = append(out.Fields, &FieldRef{
				Name:     sf.Name,
				PkgPath:  sf.PkgPath,
				Type:     TypeRefFromReflect(sf.Type),
				Tag:      string(sf.Tag),
				Embedded: sf.Anonymous,
			})
		}
		return out
	}
	return Invalid("unsupported kind " + t.Kind().String())
}

func signatureFromReflect(t reflect.Type) *TypeRef {
	out := &TypeRef{Kind: KindFunc, Variadic: t.IsVariadic()}
	for i := range t.NumIn() {
		out.Params = append(out.Params, TypeRefFromReflect(t.In(i)))
	}
	for i := range t.NumOut() {
		out.Results = append(out.Results, TypeRefFromReflect(t.Out(i)))
	}
	return out
}
