package mimic

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/mimicgen/internal/fixtures"
	iparser "github.com/cmmoran/mimicgen/internal/parser"
	"github.com/cmmoran/mimicgen/pkg/action/generate"
	"github.com/cmmoran/mimicgen/pkg/manifest"
	"github.com/cmmoran/mimicgen/pkg/parser"
)

const mimicPkg = "example.com/app/mimics"

func TestGenerate(ttt *testing.T) {
	ttt.Run("values pointers and types", func(t *testing.T) {
		opts := parser.Apply(parser.WithOutDir(t.TempDir()), parser.WithPackage(mimicPkg))
		files, err := Generate(context.Background(), opts,
			fixtures.Widget{},
			&fixtures.Derived{},
			reflect.TypeFor[fixtures.Complex](),
		)
		require.NoError(t, err)
		require.Len(t, files, 3)

		m, err := manifest.Load(opts.ManifestFile)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"widget_mimic.go", "derived_mimic.go", "complex_mimic.go"}, m.Files())
		for _, e := range m.Entries {
			require.Equal(t, "runtime", e.Source)
		}
	})
	ttt.Run("function-local type", func(t *testing.T) {
		type Widget struct {
			Count int
		}
		opts := parser.Apply(parser.WithOutDir(t.TempDir()), parser.WithPackage(mimicPkg))
		_, err := Generate(context.Background(), opts, Widget{})
		require.ErrorIs(t, err, ErrUndeclaredType)

		_, err = Source(mimicPkg, &Widget{})
		require.ErrorIs(t, err, ErrUndeclaredType)
	})
	ttt.Run("not a struct", func(t *testing.T) {
		opts := parser.Apply(parser.WithOutDir(t.TempDir()), parser.WithPackage(mimicPkg))
		_, err := Generate(context.Background(), opts, fixtures.NotAStruct(1))
		require.ErrorIs(t, err, iparser.ErrNotStruct)
	})
}

func TestSourceMatchesCompileTime(t *testing.T) {
	fromRuntime, err := Source(mimicPkg, fixtures.Complex{})
	require.NoError(t, err)

	opts := parser.Apply(
		parser.WithInDir("."),
		parser.WithOutDir(t.TempDir()),
		parser.WithPackage(mimicPkg),
		parser.WithTypes("github.com/cmmoran/mimicgen/internal/fixtures.Complex"),
	)
	reqs, err := generate.Discover(opts)
	require.NoError(t, err)
	files, err := generate.NewProcessor(opts).Render(context.Background(), reqs...)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, string(files[0].Content), string(fromRuntime))
}
