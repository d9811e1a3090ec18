package model

// TypeDescriptor is the target type being mimicked.
type TypeDescriptor struct {
	Source     Source
	SimpleName string   // "Widget"
	PkgPath    string   // "github.com/acme/app/model"
	TypeRef    *TypeRef // *model.Widget, used for the instance field and constructor parameter
	Fields     []FieldDescriptor
}

// Contains reports whether a descriptor built from the same handle as f is
// already present.
func (t *TypeDescriptor) Contains(f FieldDescriptor) bool {
	for _, have := range t.Fields {
		if have.Same(f) {
			return true
		}
	}
	return false
}

// FieldsNamed returns every field called name, across all hierarchy levels.
func (t *TypeDescriptor) FieldsNamed(name string) []FieldDescriptor {
	var out []FieldDescriptor
	for _, f := range t.Fields {
		if f.Name == name {
			out = append(out, f)
		}
	}
	return out
}

// QualifiedName is "pkg/path.Name".
func (t *TypeDescriptor) QualifiedName() string {
	if t.PkgPath == "" {
		return t.SimpleName
	}
	return t.PkgPath + "." + t.SimpleName
}
