package emitter

import (
	"bytes"

	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/mimicgen/internal/model"
)

const (
	// AccessPkg is imported by mimics that need reflective accessors.
	AccessPkg = "github.com/cmmoran/mimicgen/pkg/access"

	Header = "Code generated by mimicgen. DO NOT EDIT."
)

// Render validates spec and renders it as a file of package pkgName at import
// path pkgPath.
func Render(spec *model.WrapperSpec, pkgPath, pkgName string) (*jen.File, error) {
	if err := Validate(spec, pkgPath); err != nil {
		return nil, err
	}

	f := jen.NewFilePathName(pkgPath, pkgName)
	f.HeaderComment(Header)
	f.ImportName(AccessPkg, "access")

	f.Commentf("%s exposes the fields of %s through typed accessors.", spec.Name, spec.Target.QualifiedName())
	f.Type().Id(spec.Name).Struct(
		jen.Id(spec.Instance.Name).Add(spec.Instance.Type.Jen()),
	)
	f.Line()

	ctor := spec.Constructor
	f.Commentf("%s wraps %s.", ctor.Name, ctor.Param)
	f.Func().Id(ctor.Name).Params(jen.Id(ctor.Param).Add(ctor.Type.Jen())).Op("*").Id(spec.Name).Block(
		jen.Return(jen.Op("&").Id(spec.Name).Values(jen.Dict{
			jen.Id(spec.Instance.Name): jen.Id(ctor.Param),
		})),
	)

	for _, a := range spec.Accessors {
		f.Line()
		renderGetter(f, spec, a)
		f.Line()
		renderSetter(f, spec, a)
	}
	return f, nil
}

// Source renders spec to formatted Go source.
func Source(spec *model.WrapperSpec, pkgPath, pkgName string) ([]byte, error) {
	f, err := Render(spec, pkgPath, pkgName)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err = f.Render(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderGetter(f *jen.File, spec *model.WrapperSpec, a model.Accessor) {
	typ := a.Field.DeclaredType
	var body jen.Code
	if a.Strategy == model.StrategyDirect {
		body = jen.Return(selector(spec, a.Field))
	} else {
		args := append([]jen.Code{instance(spec)}, pathLits(a.Field)...)
		body = jen.Return(jen.Qual(AccessPkg, "Get").Types(typ.Jen()).Call(args...))
	}
	f.Func().Params(receiver(spec)).Id(a.Getter).Params().Add(typ.Jen()).Block(body)
}

func renderSetter(f *jen.File, spec *model.WrapperSpec, a model.Accessor) {
	typ := a.Field.DeclaredType
	var body jen.Code
	if a.Strategy == model.StrategyDirect {
		body = selector(spec, a.Field).Op("=").Id(a.Param)
	} else {
		args := append([]jen.Code{instance(spec), jen.Id(a.Param)}, pathLits(a.Field)...)
		body = jen.Qual(AccessPkg, "Set").Types(typ.Jen()).Call(args...)
	}
	f.Func().Params(receiver(spec)).Id(a.Setter).Params(jen.Id(a.Param).Add(typ.Jen())).Block(body)
}

func receiver(spec *model.WrapperSpec) jen.Code {
	return jen.Id(spec.Receiver).Op("*").Id(spec.Name)
}

func instance(spec *model.WrapperSpec) *jen.Statement {
	return jen.Id(spec.Receiver).Dot(spec.Instance.Name)
}

// selector spells out the embedding path so that shadowed and promoted fields
// resolve to the declaring struct.
func selector(spec *model.WrapperSpec, fd model.FieldDescriptor) *jen.Statement {
	s := instance(spec)
	for _, step := range fd.Path {
		s = s.Dot(step)
	}
	return s.Dot(fd.Name)
}

func pathLits(fd model.FieldDescriptor) []jen.Code {
	out := make([]jen.Code, 0, len(fd.Path)+1)
	for _, step := range fd.Path {
		out = append(out, jen.Lit(step))
	}
	return append(out, jen.Lit(fd.Name))
}
