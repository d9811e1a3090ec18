package model

import (
	"go/types"
)

// TypeRefFromTypes converts a compile-time type description into a TypeRef.
// Predeclared aliases are normalised so the result matches TypeRefFromReflect
// for the same type: byte becomes uint8, rune becomes int32 and any becomes
// interface{}.
func TypeRefFromTypes(t types.Type) *TypeRef {
	if t == nil {
		return Invalid("nil types.Type")
	}
	t = types.Unalias(t)

	switch tt := t.(type) {
	case *types.Basic:
		if tt.Kind() == types.UnsafePointer {
			return Named("unsafe", "Pointer")
		}
		if tt.Info()&types.IsUntyped != 0 || tt.Kind() == types.Invalid {
			return Invalid("untyped or invalid basic type " + tt.String())
		}
		return Basic(types.Typ[tt.Kind()].Name())
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil {
			return Basic(obj.Name())
		}
		var args []*TypeRef
		if targs := tt.TypeArgs(); targs != nil {
			for i := range targs.Len() {
				args = append(args, TypeRefFromTypes(targs.At(i)))
			}
		} else if tt.TypeParams().Len() > 0 {
			return Invalid("generic type " + obj.Name() + " is not instantiated")
		}
		if obj.Parent() != nil && obj.Parent() != obj.Pkg().Scope() {
			return Invalid("type " + obj.Name() + " is declared inside a function")
		}
		return Named(obj.Pkg().Path(), obj.Name(), args...)
	case *types.TypeParam:
		return Invalid("type parameter " + tt.Obj().Name())
	case *types.Pointer:
		return PointerTo(TypeRefFromTypes(tt.Elem()))
	case *types.Slice:
		return &TypeRef{Kind: KindSlice, Elem: TypeRefFromTypes(tt.Elem())}
	case *types.Array:
		return &TypeRef{Kind: KindArray, Len: tt.Len(), Elem: TypeRefFromTypes(tt.Elem())}
	case *types.Map:
		return &TypeRef{Kind: KindMap, Key: TypeRefFromTypes(tt.Key()), Elem: TypeRefFromTypes(tt.Elem())}
	case *types.Chan:
		dir := ChanBoth
		switch tt.Dir() {
		case types.SendOnly:
			dir = ChanSend
		case types.RecvOnly:
			dir = ChanRecv
		}
		return &TypeRef{Kind: KindChan, Dir: dir, Elem: TypeRefFromTypes(tt.Elem())}
	case *types.Signature:
		return signatureFromTypes(tt)
	case *types.Interface:
		if !tt.IsMethodSet() {
			return Invalid("constraint interface " + tt.String())
		}
		out := &TypeRef{Kind: KindInterface}
		for i := range tt.NumMethods() {
			m := tt.Method(i)
			ref := &MethodRef{Name: m.Name(), Sig: signatureFromTypes(m.Type().(*types.Signature))}
			if !m.Exported() && m.Pkg() != nil {
				ref.PkgPath = m.Pkg().Path()
			}
			out.Methods = append(out.Methods, ref)
		}
		return out
	case *types.Struct:
		out := &TypeRef{Kind: KindStruct}
		for i := range tt.NumFields() {
			v := tt.Field(i)
			ref := &FieldRef{
				Name:     v.Name(),
				Type:     TypeRefFromTypes(v.Type()),
				Tag:      tt.Tag(i),
				Embedded: v.Embedded(),
			}
			if !v.Exported() && v.Pkg() != nil {
				ref.PkgPath = v.Pkg().Path()
			}
			out.Fields = append(out.Fields, ref)
		}
		return out
	}
	return Invalid("unsupported type " + t.String())
}

func signatureFromTypes(sig *types.Signature) *TypeRef {
	out := &TypeRef{Kind: KindFunc, Variadic: sig.Variadic()}
	for i := range sig.Params().Len() {
		out.Params = append(out.Params, TypeRefFromTypes(sig.Params().At(i).Type()))
	}
	for i := range sig.Results().Len() {
		out.Results = append(out.Results, TypeRefFromTypes(sig.Results().At(i).Type()))
	}
	return out
}
