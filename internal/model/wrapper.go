package model

// Strategy selects how a generated accessor reaches its field.
type Strategy int

const (
	StrategyDirect     Strategy = iota // m.instance.Field
	StrategyReflective                 // access.Get / access.Set
)

func (s Strategy) String() string {
	if s == StrategyDirect {
		return "direct"
	}
	return "reflective"
}

// WrapperSpec describes a generated mimic independently of how it is rendered.
type WrapperSpec struct {
	Name        string // "WidgetMimic"
	Receiver    string // method receiver, never the name of an imported package
	Target      *TypeDescriptor
	Instance    InstanceField
	Constructor Constructor
	Accessors   []Accessor
}

type InstanceField struct {
	Name    string
	Type    *TypeRef
	Private bool
	Final   bool // Go has no final fields; the renderer never assigns it after construction
}

type Constructor struct {
	Name  string // "NewWidgetMimic"
	Param string
	Type  *TypeRef
}

// Accessor is the getter/setter pair of one field.
type Accessor struct {
	Field    FieldDescriptor
	Getter   string
	Setter   string
	Param    string
	Strategy Strategy
}

// Collisions returns method names emitted more than once, in first-seen order.
func (w *WrapperSpec) Collisions() []string {
	seen := make(map[string]int, len(w.Accessors)*2)
	var out []string
	for _, a := range w.Accessors {
		for _, name := range []string{a.Getter, a.Setter} {
			seen[name]++
			if seen[name] == 2 {
				out = append(out, name)
			}
		}
	}
	return out
}
