// Package fixtures holds the types the generator tests mimic from both the
// runtime and the compile-time source.
package fixtures

import (
	"fmt"
	"time"

	"github.com/cmmoran/mimicgen/internal/fixtures/m"
	"github.com/cmmoran/mimicgen/internal/fixtures/value"
)

// Widget has one exported and one unexported field.
//
//mimic:generate
type Widget struct {
	Count int
	name  string
}

func NewWidget() *Widget {
	return &Widget{Count: 1, name: "test"}
}

type Base struct {
	Count int
	name  string
}

// Derived declares no fields of its own.
//
//mimic:generate package=github.com/cmmoran/mimicgen/internal/fixtures/mimics
type Derived struct {
	Base
}

func NewDerived() *Derived {
	return &Derived{Base: Base{Count: 1, name: "test"}}
}

// Shadowing redeclares a field of its embedded struct.
type Shadowing struct {
	Base
	name string
}

type hidden struct {
	secret string
	Shown  int
}

type Complex struct {
	hidden
	Tags   []string
	Lookup map[string]*Widget
	Ch     <-chan int
	Send   chan<- error
	Fn     func(int, ...string) (bool, error)
	Any    any
	Iface  fmt.Stringer
	Anon   struct {
		X int `json:"x"`
	}
	Arr  [4]byte
	Ptr  *Base
	Err  error
	Char rune
	When time.Time
	_    int
}

// Opaque has a field whose type no other package can name.
type Opaque struct {
	h hidden
}

// Collide has two fields that map to the same accessor names.
type Collide struct {
	name string
	Name string
}

type Box[T any] struct {
	Value T
}

type UsesBox struct {
	Box Box[int]
}

type NotAStruct int

// Holder refers to packages named like the locals of a mimic.
type Holder struct {
	v     value.T
	Gauge m.Meter
}

