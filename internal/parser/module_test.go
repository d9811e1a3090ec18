package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModule(ttt *testing.T) {
	root := ttt.TempDir()
	require.NoError(ttt, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/app\n\ngo 1.24\n"), 0o644))
	nested := filepath.Join(root, "internal", "mimics")
	require.NoError(ttt, os.MkdirAll(nested, 0o755))

	ttt.Run("find from nested dir", func(t *testing.T) {
		m, err := FindModule(nested)
		require.NoError(t, err)
		require.Equal(t, "example.com/app", m.Path)

		path, err := m.ImportPath(nested)
		require.NoError(t, err)
		require.Equal(t, "example.com/app/internal/mimics", path)

		path, err = m.ImportPath(root)
		require.NoError(t, err)
		require.Equal(t, "example.com/app", path)
	})
	ttt.Run("package dir", func(t *testing.T) {
		m, err := FindModule(root)
		require.NoError(t, err)
		dir, err := m.PackageDir("example.com/app/internal/mimics")
		require.NoError(t, err)
		require.Equal(t, nested, dir)
		_, err = m.PackageDir("example.com/other")
		require.Error(t, err)
		_, err = m.ImportPath(filepath.Dir(root))
		require.Error(t, err)
	})
	ttt.Run("this module", func(t *testing.T) {
		m, err := FindModule(".")
		require.NoError(t, err)
		require.Equal(t, "github.com/cmmoran/mimicgen", m.Path)
	})
}

func TestPackageName(t *testing.T) {
	require.Equal(t, "mimics", PackageName("example.com/app/mimics"))
	require.Equal(t, "app", PackageName("example.com/app/v2"))
	require.Equal(t, "go_mimic", PackageName("example.com/go-mimic"))
	require.Equal(t, "_3d", PackageName("example.com/3d"))
}
