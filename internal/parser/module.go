package parser

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

var ErrNoModule = errors.New("no go.mod found")

// Module is the main module enclosing a directory.
type Module struct {
	Path string // module path from go.mod
	Dir  string // directory holding go.mod
}

// FindModule walks up from dir until it finds go.mod.
func FindModule(dir string) (*Module, error) {
	from, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		data, err := os.ReadFile(filepath.Join(from, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return nil, fmt.Errorf("%w: %s has no module directive", ErrNoModule, filepath.Join(from, "go.mod"))
			}
			return &Module{Path: modPath, Dir: from}, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		parent := filepath.Dir(from)
		if parent == from {
			return nil, fmt.Errorf("%w: above %s", ErrNoModule, dir)
		}
		from = parent
	}
}

// ImportPath returns the import path of dir, which must be inside the module.
func (m *Module) ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(m.Dir, abs)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return m.Path, nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside module %s", dir, m.Path)
	}
	return path.Join(m.Path, filepath.ToSlash(rel)), nil
}

// PackageDir returns the directory of a package inside the module.
func (m *Module) PackageDir(importPath string) (string, error) {
	if importPath == m.Path {
		return m.Dir, nil
	}
	sub, ok := strings.CutPrefix(importPath, m.Path+"/")
	if !ok {
		return "", fmt.Errorf("package %s is not part of module %s", importPath, m.Path)
	}
	return filepath.Join(m.Dir, filepath.FromSlash(sub)), nil
}

// PackageName derives a package name from the last element of an import path.
func PackageName(importPath string) string {
	base := path.Base(importPath)
	if major := strings.TrimPrefix(base, "v"); base != major && major != "" && strings.Trim(major, "0123456789") == "" {
		base = path.Base(path.Dir(importPath))
	}
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, base)
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "_" + name
	}
	return strings.ToLower(name)
}
