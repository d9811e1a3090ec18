package model

import (
	"github.com/dave/jennifer/jen"
)

// Jen renders t as a jen type expression. Named types are emitted with jen.Qual
// so the file's import block is managed by jen.
func (t *TypeRef) Jen() *jen.Statement {
	if t == nil {
		return jen.Id("any")
	}
	switch t.Kind {
	case KindBasic:
		return jen.Id(t.Name)
	case KindNamed:
		s := jen.Qual(t.PkgPath, t.Name)
		if len(t.TypeArgs) > 0 {
			args := make([]jen.Code, 0, len(t.TypeArgs))
			for _, a := range t.TypeArgs {
				args = append(args, a.Jen())
			}
			s = s.Types(args...)
		}
		return s
	case KindPointer:
		return jen.Op("*").Add(t.Elem.Jen())
	case KindSlice:
		return jen.Index().Add(t.Elem.Jen())
	case KindArray:
		return jen.Index(jen.Lit(int(t.Len))).Add(t.Elem.Jen())
	case KindMap:
		return jen.Map(t.Key.Jen()).Add(t.Elem.Jen())
	case KindChan:
		switch t.Dir {
		case ChanSend:
			return jen.Chan().Op("<-").Add(t.Elem.Jen())
		case ChanRecv:
			return jen.Op("<-").Chan().Add(t.Elem.Jen())
		}
		return jen.Chan().Add(t.Elem.Jen())
	case KindFunc:
		return t.jenSignature(jen.Func())
	case KindInterface:
		methods := make([]jen.Code, 0, len(t.Methods))
		for _, m := range t.Methods {
			methods = append(methods, m.Sig.jenSignature(jen.Id(m.Name)))
		}
		return jen.Interface(methods...)
	case KindStruct:
		fields := make([]jen.Code, 0, len(t.Fields))
		for _, f := range t.Fields {
			var s *jen.Statement
			if f.Embedded {
				s = f.Type.Jen()
			} else {
				s = jen.Id(f.Name).Add(f.Type.Jen())
			}
			if f.Tag != "" {
				// a quoted literal keeps the tag byte-for-byte, jen.Tag would reorder keys
				s = s.Lit(f.Tag)
			}
			fields = append(fields, s)
		}
		return jen.Struct(fields...)
	}
	return jen.Id("any")
}

func (t *TypeRef) jenSignature(s *jen.Statement) *jen.Statement {
	params := make([]jen.Code, 0, len(t.Params))
	for i, p := range t.Params {
		if t.Variadic && i == len(t.Params)-1 && p.Kind == KindSlice {
			params = append(params, jen.Op("...").Add(p.Elem.Jen()))
			continue
		}
		params = append(params, p.Jen())
	}
	s = s.Params(params...)
	switch len(t.Results) {
	case 0:
		return s
	case 1:
		return s.Add(t.Results[0].Jen())
	}
	results := make([]jen.Code, 0, len(t.Results))
	for _, r := range t.Results {
		results = append(results, r.Jen())
	}
	return s.Params(results...)
}
