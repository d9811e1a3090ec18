package emitter

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/mimicgen/internal/fixtures"
	"github.com/cmmoran/mimicgen/internal/model"
	mparser "github.com/cmmoran/mimicgen/internal/parser"
)

const (
	fixturesPkg = "github.com/cmmoran/mimicgen/internal/fixtures"
	mimicsPkg   = "github.com/cmmoran/mimicgen/internal/fixtures/mimics"
)

func emitFor(t *testing.T, v any) *model.WrapperSpec {
	t.Helper()
	td, err := mparser.FromReflect(reflect.TypeOf(v))
	require.NoError(t, err)
	return Emit(td)
}

type accessorView struct {
	Getter, Setter string
	Strategy       model.Strategy
	Type           string
}

func accessors(spec *model.WrapperSpec) []accessorView {
	out := make([]accessorView, 0, len(spec.Accessors))
	for _, a := range spec.Accessors {
		out = append(out, accessorView{a.Getter, a.Setter, a.Strategy, a.Field.DeclaredType.String()})
	}
	return out
}

func TestEmit(ttt *testing.T) {
	ttt.Run("structure", func(t *testing.T) {
		spec := emitFor(t, fixtures.Widget{})
		require.Equal(t, "WidgetMimic", spec.Name)
		require.Equal(t, "instance", spec.Instance.Name)
		require.True(t, spec.Instance.Private)
		require.True(t, spec.Instance.Final)
		require.Equal(t, spec.Target.TypeRef, spec.Instance.Type)
		require.Equal(t, "NewWidgetMimic", spec.Constructor.Name)
		require.Equal(t, "m", spec.Receiver)
		require.Equal(t, spec.Instance.Type, spec.Constructor.Type)
		require.Equal(t, []accessorView{
			{"GetCount", "SetCount", model.StrategyDirect, "int"},
			{"GetName", "SetName", model.StrategyReflective, "string"},
		}, accessors(spec))
		require.Empty(t, spec.Collisions())
	})
	ttt.Run("inherited fields", func(t *testing.T) {
		spec := emitFor(t, fixtures.Derived{})
		require.Equal(t, []accessorView{
			{"GetCount", "SetCount", model.StrategyDirect, "int"},
			{"GetName", "SetName", model.StrategyReflective, "string"},
		}, accessors(spec))
	})
	ttt.Run("exported field behind unexported embedding", func(t *testing.T) {
		spec := emitFor(t, fixtures.Complex{})
		for _, a := range spec.Accessors {
			if a.Field.Selector() == "hidden.Shown" {
				require.Equal(t, model.StrategyReflective, a.Strategy)
				return
			}
		}
		t.Fatal("hidden.Shown not emitted")
	})
	ttt.Run("shadowed fields keep both accessor pairs", func(t *testing.T) {
		spec := emitFor(t, fixtures.Shadowing{})
		require.Len(t, spec.Accessors, 3)
		require.Equal(t, []string{"GetName", "SetName"}, spec.Collisions())
		names := 0
		for _, a := range spec.Accessors {
			if a.Getter == "GetName" {
				names++
			}
		}
		require.Equal(t, 2, names)
	})
}

func TestValidate(ttt *testing.T) {
	tests := []struct {
		name    string
		value   any
		pkgPath string
		wantErr error
	}{
		{name: "widget", value: fixtures.Widget{}, pkgPath: mimicsPkg},
		{name: "complex", value: fixtures.Complex{}, pkgPath: mimicsPkg},
		{name: "shadowing", value: fixtures.Shadowing{}, pkgPath: mimicsPkg, wantErr: ErrAccessorCollision},
		{name: "case collision", value: fixtures.Collide{}, pkgPath: mimicsPkg, wantErr: ErrAccessorCollision},
		{name: "unexported field type", value: fixtures.Opaque{}, pkgPath: mimicsPkg, wantErr: ErrInaccessibleType},
		{name: "unexported field type same package", value: fixtures.Opaque{}, pkgPath: fixturesPkg},
		{name: "runtime generic", value: fixtures.UsesBox{}, pkgPath: mimicsPkg, wantErr: ErrInaccessibleType},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			err := Validate(emitFor(t, tt.value), tt.pkgPath)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func parseSource(t *testing.T, src []byte) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "mimic.go", src, parser.ParseComments)
	require.NoError(t, err, string(src))
	return f
}

func methods(f *ast.File) map[string]*ast.FuncDecl {
	out := map[string]*ast.FuncDecl{}
	for _, d := range f.Decls {
		if fn, ok := d.(*ast.FuncDecl); ok {
			out[fn.Name.Name] = fn
		}
	}
	return out
}

func TestSource(ttt *testing.T) {
	ttt.Run("widget", func(t *testing.T) {
		src, err := Source(emitFor(t, fixtures.Widget{}), mimicsPkg, "mimics")
		require.NoError(t, err)
		text := string(src)
		require.True(t, strings.HasPrefix(text, "// "+Header))
		require.Contains(t, text, "package mimics")
		require.Contains(t, text, "instance *fixtures.Widget")
		require.Contains(t, text, "return m.instance.Count")
		require.Contains(t, text, "m.instance.Count = value")
		require.Contains(t, text, `access.Get[string](m.instance, "name")`)
		require.Contains(t, text, `access.Set[string](m.instance, value, "name")`)

		f := parseSource(t, src)
		require.Equal(t, "mimics", f.Name.Name)
		fns := methods(f)
		for _, name := range []string{"NewWidgetMimic", "GetCount", "SetCount", "GetName", "SetName"} {
			require.Contains(t, fns, name)
		}
		require.Nil(t, fns["NewWidgetMimic"].Recv)
		require.NotNil(t, fns["GetName"].Recv)
	})
	ttt.Run("inherited fields", func(t *testing.T) {
		src, err := Source(emitFor(t, fixtures.Derived{}), mimicsPkg, "mimics")
		require.NoError(t, err)
		text := string(src)
		require.Contains(t, text, "return m.instance.Base.Count")
		require.Contains(t, text, `access.Get[string](m.instance, "Base", "name")`)
		parseSource(t, src)
	})
	ttt.Run("complex types", func(t *testing.T) {
		src, err := Source(emitFor(t, fixtures.Complex{}), mimicsPkg, "mimics")
		require.NoError(t, err)
		text := string(src)
		require.Contains(t, text, "func (m *ComplexMimic) GetFn() func(int, ...string) (bool, error)")
		require.Contains(t, text, "func (m *ComplexMimic) GetCh() <-chan int")
		require.Contains(t, text, "func (m *ComplexMimic) SetSend(value chan<- error)")
		require.Contains(t, text, "map[string]*fixtures.Widget")
		require.Contains(t, text, "time.Time")
		require.Contains(t, text, `access.Get[string](m.instance, "hidden", "secret")`)
		parseSource(t, src)
	})
	ttt.Run("same package needs no import of the target", func(t *testing.T) {
		src, err := Source(emitFor(t, fixtures.Opaque{}), fixturesPkg, "fixtures")
		require.NoError(t, err)
		text := string(src)
		require.Contains(t, text, "instance *Opaque")
		require.Contains(t, text, "access.Get[hidden](m.instance, \"h\")")
	})
	ttt.Run("locals do not shadow imports", func(t *testing.T) {
		spec := emitFor(t, fixtures.Holder{})
		require.Equal(t, "mm", spec.Receiver)
		for _, a := range spec.Accessors {
			require.Equal(t, "v", a.Param)
		}
		src, err := Source(spec, mimicsPkg, "mimics")
		require.NoError(t, err)
		text := string(src)
		require.Contains(t, text, `access.Set[value.T](mm.instance, v, "v")`)
		require.Contains(t, text, "func (mm *HolderMimic) SetGauge(v m.Meter)")

		f := parseSource(t, src)
		imported := map[string]bool{}
		for _, imp := range f.Imports {
			name := path.Base(strings.Trim(imp.Path.Value, `"`))
			if imp.Name != nil {
				name = imp.Name.Name
			}
			imported[name] = true
		}
		require.True(t, imported["value"])
		require.True(t, imported["m"])
		for _, fn := range methods(f) {
			var idents []*ast.Ident
			if fn.Recv != nil {
				idents = append(idents, fn.Recv.List[0].Names...)
			}
			for _, p := range fn.Type.Params.List {
				idents = append(idents, p.Names...)
			}
			for _, id := range idents {
				require.False(t, imported[id.Name], "%s declares %s", fn.Name.Name, id.Name)
			}
		}
	})
	ttt.Run("rejected", func(t *testing.T) {
		_, err := Source(emitFor(t, fixtures.Shadowing{}), mimicsPkg, "mimics")
		require.ErrorIs(t, err, ErrAccessorCollision)
	})
}
