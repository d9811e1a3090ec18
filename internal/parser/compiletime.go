package parser

import (
	"fmt"
	"go/types"

	"github.com/cmmoran/mimicgen/internal/model"
)

// FromNamed builds the TypeDescriptor of a named struct type from its
// compile-time description.
func FromNamed(n *types.Named) (*model.TypeDescriptor, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil type", ErrNotStruct)
	}
	if _, ok := n.Underlying().(*types.Struct); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, n.Obj().Name())
	}

	set := &fieldSet{}
	collectTypes(set, n, nil)

	pkgPath := ""
	if n.Obj().Pkg() != nil {
		pkgPath = n.Obj().Pkg().Path()
	}
	return &model.TypeDescriptor{
		Source:     model.SourceCompileTime,
		SimpleName: n.Obj().Name(),
		PkgPath:    pkgPath,
		TypeRef:    model.PointerTo(model.TypeRefFromTypes(n)),
		Fields:     set.sorted(),
	}, nil
}

func collectTypes(set *fieldSet, n *types.Named, path []string) {
	st := n.Underlying().(*types.Struct)
	for i := range st.NumFields() {
		v := st.Field(i)
		if v.Name() == "_" {
			continue
		}
		if v.Embedded() {
			if embedded, ok := embeddedStruct(v.Type()); ok {
				collectTypes(set, embedded, extend(path, v.Name()))
				continue
			}
		}
		set.add(model.NewCompileTimeField(n, v, path))
	}
}

// embeddedStruct reports whether an embedded field's type is a named struct
// value, which is what the collector treats as an ancestor.
func embeddedStruct(t types.Type) (*types.Named, bool) {
	n, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil, false
	}
	if _, ok = n.Underlying().(*types.Struct); !ok {
		return nil, false
	}
	return n, true
}
