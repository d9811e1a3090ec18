package model

import (
	"go/token"
	"strconv"
	"strings"
)

type Kind int

const (
	KindInvalid   Kind = iota
	KindBasic          // string, int, bool, error, etc.
	KindNamed          // pkg.Name or pkg.Name[Args]
	KindPointer        // *T
	KindSlice          // []T
	KindArray          // [N]T
	KindMap            // map[K]V
	KindChan           // chan T, <-chan T, chan<- T
	KindFunc           // func(...) (...)
	KindInterface      // interface{ ... }
	KindStruct         // struct{ ... }
)

type ChanDir int

const (
	ChanBoth ChanDir = iota
	ChanSend
	ChanRecv
)

// TypeRef is a source independent reference to a Go type. Both metadata sources
// (reflect and go/types) normalise into it, and the emitter renders it with jen.
type TypeRef struct {
	Kind Kind

	// Identity ------------------------------------------------------------
	PkgPath  string     // "" for builtins
	Name     string     // "string", "UUID", "Widget"
	TypeArgs []*TypeRef // for instantiated generic named types

	// Structure ------------------------------------------------------------
	Elem     *TypeRef // pointer, slice, array, map value and chan element
	Key      *TypeRef // map key
	Len      int64    // array length
	Dir      ChanDir
	Params   []*TypeRef
	Results  []*TypeRef
	Variadic bool // last entry of Params is a slice
	Methods  []*MethodRef
	Fields   []*FieldRef

	Reason string // why the type is KindInvalid
}

// MethodRef is one method of an interface literal.
type MethodRef struct {
	Name    string
	PkgPath string // set for unexported methods
	Sig     *TypeRef
}

// FieldRef is one field of a struct literal.
type FieldRef struct {
	Name     string
	PkgPath  string // set for unexported fields
	Type     *TypeRef
	Tag      string
	Embedded bool
}

func Invalid(reason string) *TypeRef {
	return &TypeRef{Kind: KindInvalid, Reason: reason}
}

func Basic(name string) *TypeRef {
	return &TypeRef{Kind: KindBasic, Name: name}
}

func Named(pkgPath, name string, args ...*TypeRef) *TypeRef {
	return &TypeRef{Kind: KindNamed, PkgPath: pkgPath, Name: name, TypeArgs: args}
}

func PointerTo(elem *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindPointer, Elem: elem}
}

// Deref returns the pointed-to type for pointers and t otherwise.
func (t *TypeRef) Deref() *TypeRef {
	if t != nil && t.Kind == KindPointer && t.Elem != nil {
		return t.Elem
	}
	return t
}

// Valid reports whether t and every type it refers to can be rendered.
func (t *TypeRef) Valid() bool {
	return t.firstInvalid() == nil
}

// Problem returns the reason of the first invalid type found inside t, or "".
func (t *TypeRef) Problem() string {
	if bad := t.firstInvalid(); bad != nil {
		if bad.Reason == "" {
			return "invalid type"
		}
		return bad.Reason
	}
	return ""
}

func (t *TypeRef) firstInvalid() *TypeRef {
	if t == nil {
		return Invalid("missing type")
	}
	if t.Kind == KindInvalid {
		return t
	}
	var bad *TypeRef
	t.walk(func(c *TypeRef) bool {
		if c == nil || c.Kind == KindInvalid {
			if c == nil {
				c = Invalid("missing type")
			}
			bad = c
			return false
		}
		return true
	})
	return bad
}

// Packages returns the import paths of the named types t refers to, t included,
// in first-seen order.
func (t *TypeRef) Packages() []string {
	var out []string
	seen := map[string]bool{}
	visit := func(c *TypeRef) bool {
		if c != nil && c.Kind == KindNamed && c.PkgPath != "" && !seen[c.PkgPath] {
			seen[c.PkgPath] = true
			out = append(out, c.PkgPath)
		}
		return true
	}
	visit(t)
	t.walk(visit)
	return out
}

// walk visits every type referenced by t (not t itself) until fn returns false.
func (t *TypeRef) walk(fn func(*TypeRef) bool) bool {
	children := make([]*TypeRef, 0, 4)
	children = append(children, t.TypeArgs...)
	switch t.Kind {
	case KindPointer, KindSlice, KindArray, KindChan:
		children = append(children, t.Elem)
	case KindMap:
		children = append(children, t.Key, t.Elem)
	case KindFunc:
		children = append(children, t.Params...)
		children = append(children, t.Results...)
	case KindInterface:
		for _, m := range t.Methods {
			children = append(children, m.Sig)
		}
	case KindStruct:
		for _, f := range t.Fields {
			children = append(children, f.Type)
		}
	}
	for _, c := range children {
		if !fn(c) {
			return false
		}
		if c != nil && !c.walk(fn) {
			return false
		}
	}
	return true
}

// Accessible reports whether t can be spelled in source code of package pkgPath.
// Unexported names of other packages cannot.
func (t *TypeRef) Accessible(pkgPath string) bool {
	if !t.Valid() {
		return false
	}
	ok := t.accessibleSelf(pkgPath)
	t.walk(func(c *TypeRef) bool {
		ok = ok && c.accessibleSelf(pkgPath)
		return ok
	})
	return ok
}

func (t *TypeRef) accessibleSelf(pkgPath string) bool {
	switch t.Kind {
	case KindNamed:
		return t.PkgPath == "" || t.PkgPath == pkgPath || token.IsExported(t.Name)
	case KindInterface:
		for _, m := range t.Methods {
			if !token.IsExported(m.Name) && m.PkgPath != pkgPath {
				return false
			}
		}
	case KindStruct:
		for _, f := range t.Fields {
			if !token.IsExported(f.Name) && f.PkgPath != pkgPath {
				return false
			}
		}
	}
	return true
}

// String renders t with full import paths, e.g. "map[string]*github.com/x/y.Widget".
func (t *TypeRef) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *TypeRef) write(b *strings.Builder) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	switch t.Kind {
	case KindInvalid:
		b.WriteString("invalid(" + t.Reason + ")")
	case KindBasic:
		b.WriteString(t.Name)
	case KindNamed:
		if t.PkgPath != "" {
			b.WriteString(t.PkgPath + ".")
		}
		b.WriteString(t.Name)
		if len(t.TypeArgs) > 0 {
			b.WriteByte('[')
			writeList(b, t.TypeArgs, false)
			b.WriteByte(']')
		}
	case KindPointer:
		b.WriteByte('*')
		t.Elem.write(b)
	case KindSlice:
		b.WriteString("[]")
		t.Elem.write(b)
	case KindArray:
		b.WriteString("[" + strconv.FormatInt(t.Len, 10) + "]")
		t.Elem.write(b)
	case KindMap:
		b.WriteString("map[")
		t.Key.write(b)
		b.WriteByte(']')
		t.Elem.write(b)
	case KindChan:
		switch t.Dir {
		case ChanSend:
			b.WriteString("chan<- ")
		case ChanRecv:
			b.WriteString("<-chan ")
		default:
			b.WriteString("chan ")
		}
		t.Elem.write(b)
	case KindFunc:
		b.WriteString("func")
		t.writeSignature(b)
	case KindInterface:
		b.WriteString("interface{")
		for i, m := range t.Methods {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(m.Name)
			m.Sig.writeSignature(b)
		}
		b.WriteByte('}')
	case KindStruct:
		b.WriteString("struct{")
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString("; ")
			}
			if !f.Embedded {
				b.WriteString(f.Name + " ")
			}
			f.Type.write(b)
			if f.Tag != "" {
				b.WriteString(" " + strconv.Quote(f.Tag))
			}
		}
		b.WriteByte('}')
	}
}

func (t *TypeRef) writeSignature(b *strings.Builder) {
	b.WriteByte('(')
	writeList(b, t.Params, t.Variadic)
	b.WriteByte(')')
	switch len(t.Results) {
	case 0:
	case 1:
		b.WriteByte(' ')
		t.Results[0].write(b)
	default:
		b.WriteString(" (")
		writeList(b, t.Results, false)
		b.WriteByte(')')
	}
}

func writeList(b *strings.Builder, list []*TypeRef, variadic bool) {
	for i, t := range list {
		if i > 0 {
			b.WriteString(", ")
		}
		if variadic && i == len(list)-1 && t != nil && t.Kind == KindSlice {
			b.WriteString("...")
			t.Elem.write(b)
			continue
		}
		t.write(b)
	}
}
