package check

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/mimicgen/internal/fixtures"
	"github.com/cmmoran/mimicgen/pkg/action/generate"
	"github.com/cmmoran/mimicgen/pkg/manifest"
	"github.com/cmmoran/mimicgen/pkg/mimic"
	"github.com/cmmoran/mimicgen/pkg/parser"
)

const fixturesPkg = "github.com/cmmoran/mimicgen/internal/fixtures"

func statuses(reports []Report) map[string]Status {
	out := make(map[string]Status, len(reports))
	for _, r := range reports {
		out[r.Target] = r.Status
	}
	return out
}

func TestCheck(ttt *testing.T) {
	opts := parser.Apply(
		parser.WithInDir("."),
		parser.WithOutDir(ttt.TempDir()),
		parser.WithPackage("example.com/app/mimics"),
		parser.WithTypes(fixturesPkg+".Widget", fixturesPkg+".Derived"),
	)
	ctx := context.Background()

	ttt.Run("missing before generate", func(t *testing.T) {
		reports, err := Check(ctx, opts)
		require.NoError(t, err)
		require.Equal(t, map[string]Status{
			fixturesPkg + ".Derived": StatusMissing,
			fixturesPkg + ".Widget":  StatusMissing,
		}, statuses(reports))
		require.True(t, Dirty(reports))
	})
	ttt.Run("current after generate", func(t *testing.T) {
		_, err := generate.Generate(ctx, opts)
		require.NoError(t, err)
		reports, err := Check(ctx, opts)
		require.NoError(t, err)
		require.False(t, Dirty(reports))
	})
	ttt.Run("edited file is stale", func(t *testing.T) {
		path := filepath.Join(opts.OutDir, "widget_mimic.go")
		require.NoError(t, os.WriteFile(path, []byte("package mimics\n"), 0o644))
		reports, err := Check(ctx, opts)
		require.NoError(t, err)
		for _, r := range reports {
			if r.Target == fixturesPkg+".Widget" {
				require.Equal(t, StatusStale, r.Status)
				require.Contains(t, r.Diff, "WidgetMimic")
			}
		}
	})
	ttt.Run("dropped target is orphaned", func(t *testing.T) {
		m, err := manifest.Load(opts.ManifestFile)
		require.NoError(t, err)
		m.Record(manifest.Entry{Target: fixturesPkg + ".Gone", File: "gone_mimic.go"})
		require.NoError(t, m.Save(opts.ManifestFile))

		reports, err := Check(ctx, opts)
		require.NoError(t, err)
		got := statuses(reports)
		require.Equal(t, StatusOrphaned, got[fixturesPkg+".Gone"])
		for _, r := range reports {
			if r.Status == StatusOrphaned {
				require.Equal(t, filepath.Join(opts.OutDir, "gone_mimic.go"), r.File)
			}
		}
	})
}

func TestCheckRuntimeMimics(t *testing.T) {
	opts := parser.Apply(
		parser.WithInDir("."),
		parser.WithOutDir(t.TempDir()),
		parser.WithPackage("example.com/app/mimics"),
		parser.WithTypes(fixturesPkg+".Derived"),
	)
	ctx := context.Background()

	_, err := mimic.Generate(ctx, opts, fixtures.Widget{})
	require.NoError(t, err)
	_, err = generate.Generate(ctx, opts)
	require.NoError(t, err)

	m, err := manifest.Load(opts.ManifestFile)
	require.NoError(t, err)
	require.Len(t, m.Entries, 2)

	reports, err := Check(ctx, opts)
	require.NoError(t, err)
	require.Equal(t, map[string]Status{fixturesPkg + ".Derived": StatusCurrent}, statuses(reports))
	require.False(t, Dirty(reports))
}

func TestExampleIsCurrent(t *testing.T) {
	opts := parser.Apply(
		parser.WithInDir(filepath.Join("..", "..", "..", "examples", "widget")),
		parser.WithOutDir("mimics"),
		parser.WithPatterns("."),
	)
	reports, err := Check(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	for _, r := range reports {
		require.Equal(t, StatusCurrent, r.Status, "%s %s\n%s", r.Target, r.File, r.Diff)
	}
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "orphaned", StatusOrphaned.String())
	require.Equal(t, "unknown", Status(42).String())
}
