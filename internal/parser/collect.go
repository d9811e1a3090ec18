package parser

import (
	"errors"
	"sort"
	"strings"

	"github.com/cmmoran/mimicgen/internal/model"
)

var ErrNotStruct = errors.New("target is not a named struct type")

// fieldSet accumulates descriptors with set semantics: a descriptor is added
// once per underlying handle. Same-named fields from different hierarchy
// levels are different handles and are all kept.
type fieldSet struct {
	fields []model.FieldDescriptor
}

func (s *fieldSet) add(f model.FieldDescriptor) {
	for _, have := range s.fields {
		if have.Same(f) {
			return
		}
	}
	s.fields = append(s.fields, f)
}

// sorted returns the fields ordered by depth, declaring type, embedding path
// and name so that generated output does not depend on collection order.
func (s *fieldSet) sorted() []model.FieldDescriptor {
	out := append([]model.FieldDescriptor(nil), s.fields...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Depth() != b.Depth() {
			return a.Depth() < b.Depth()
		}
		if da, db := a.DeclaringType.String(), b.DeclaringType.String(); da != db {
			return da < db
		}
		if pa, pb := strings.Join(a.Path, "."), strings.Join(b.Path, "."); pa != pb {
			return pa < pb
		}
		return a.Name < b.Name
	})
	return out
}

// extend returns path with name appended, never sharing the backing array.
func extend(path []string, name string) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, path...)
	return append(out, name)
}
