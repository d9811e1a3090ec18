package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode is what the compile-time source needs from go/packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

var (
	ErrTypeNotFound = errors.New("configured type not found")
	ErrPackageLoad  = errors.New("package errors")
)

// Target is a type a mimic has been requested for.
type Target struct {
	Named      *types.Named
	Package    string // target package from the directive, "" for the configured default
	Configured bool   // listed by name rather than marked with a directive
	Pos        token.Position
}

// QualifiedName is "import/path.Type".
func (t *Target) QualifiedName() string {
	obj := t.Named.Obj()
	return obj.Pkg().Path() + "." + obj.Name()
}

// Parser loads Go packages and finds mimic targets in them.
type Parser struct {
	Dir      string
	Patterns []string
	Types    []string // "import/path.Type"
	// Skip lists directories whose packages are ignored, typically the
	// generated mimic packages, which may not type check while stale.
	Skip []string

	Fset    *token.FileSet
	Targets []*Target

	pkgs map[string]*packages.Package
}

func New(dir string, patterns []string, typeNames []string) *Parser {
	return &Parser{
		Dir:      dir,
		Patterns: patterns,
		Types:    typeNames,
		Fset:     token.NewFileSet(),
		pkgs:     make(map[string]*packages.Package),
	}
}

// Parse loads the packages and collects targets: every struct type carrying a
// mimic directive in the pattern packages, plus every configured type.
// Packages loaded only for configured types are not scanned for directives.
func (p *Parser) Parse() error {
	configured := make(map[string][]string) // pkg path -> type names
	for _, qn := range p.Types {
		pkgPath, name, err := splitQualified(qn)
		if err != nil {
			return err
		}
		configured[pkgPath] = append(configured[pkgPath], name)
	}

	seen := make(map[*types.Named]bool)
	if len(p.Patterns) > 0 {
		pkgs, err := p.load(p.Patterns...)
		if err != nil {
			return err
		}
		for _, pkg := range pkgs {
			if err = p.collectAnnotated(pkg, seen); err != nil {
				return err
			}
		}
	}

	pkgPaths := make([]string, 0, len(configured))
	missing := make([]string, 0, len(configured))
	for pkgPath := range configured {
		pkgPaths = append(pkgPaths, pkgPath)
		if _, ok := p.pkgs[pkgPath]; !ok {
			missing = append(missing, pkgPath)
		}
	}
	sort.Strings(pkgPaths)
	if len(missing) > 0 {
		if _, err := p.load(missing...); err != nil {
			return err
		}
	}

	for _, pkgPath := range pkgPaths {
		for _, name := range configured[pkgPath] {
			n, err := p.Lookup(pkgPath, name)
			if err != nil {
				return err
			}
			if seen[n] {
				continue
			}
			seen[n] = true
			p.Targets = append(p.Targets, &Target{
				Named:      n,
				Configured: true,
				Pos:        p.Fset.Position(n.Obj().Pos()),
			})
		}
	}
	return nil
}

// load runs go/packages for patterns and registers the result, sorted by path.
func (p *Parser) load(patterns ...string) ([]*packages.Package, error) {
	pkgs, err := packages.Load(&packages.Config{
		Mode: LoadMode,
		Dir:  p.Dir,
		Fset: p.Fset,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	pkgs = slices.DeleteFunc(pkgs, p.skipped)
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrPackageLoad, errors.Join(errs...))
	}

	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].PkgPath < pkgs[j].PkgPath })
	for _, pkg := range pkgs {
		p.pkgs[pkg.PkgPath] = pkg
	}
	return pkgs, nil
}

func (p *Parser) skipped(pkg *packages.Package) bool {
	files := append(append([]string(nil), pkg.GoFiles...), pkg.CompiledGoFiles...)
	if len(files) == 0 {
		return false
	}
	dir := filepath.Dir(files[0])
	for _, skip := range p.Skip {
		if rel, err := filepath.Rel(skip, dir); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Lookup resolves a named struct type in a loaded package.
func (p *Parser) Lookup(pkgPath, name string) (*types.Named, error) {
	pkg, ok := p.pkgs[pkgPath]
	if !ok || pkg.Types == nil {
		return nil, fmt.Errorf("%w: %s.%s (package not loaded)", ErrTypeNotFound, pkgPath, name)
	}
	obj, ok := pkg.Types.Scope().Lookup(name).(*types.TypeName)
	if !ok || obj == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrTypeNotFound, pkgPath, name)
	}
	n, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotStruct, pkgPath, name)
	}
	if _, ok = n.Underlying().(*types.Struct); !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotStruct, pkgPath, name)
	}
	if n.TypeParams().Len() > 0 {
		return nil, fmt.Errorf("%w: generic type %s.%s needs an instantiation", ErrNotStruct, pkgPath, name)
	}
	return n, nil
}

func (p *Parser) collectAnnotated(pkg *packages.Package, seen map[*types.Named]bool) error {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				groups := []*ast.CommentGroup{ts.Doc}
				if len(gen.Specs) == 1 {
					groups = append(groups, gen.Doc)
				}
				d, err := FindDirective(groups...)
				if err != nil {
					return fmt.Errorf("%s: %w", p.Fset.Position(ts.Pos()), err)
				}
				if d == nil {
					continue
				}
				n, err := p.namedStruct(pkg, ts)
				if err != nil {
					return err
				}
				if seen[n] {
					continue
				}
				seen[n] = true
				p.Targets = append(p.Targets, &Target{
					Named:   n,
					Package: d.Package(),
					Pos:     p.Fset.Position(ts.Pos()),
				})
			}
		}
	}
	return nil
}

func (p *Parser) namedStruct(pkg *packages.Package, ts *ast.TypeSpec) (*types.Named, error) {
	pos := p.Fset.Position(ts.Pos())
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok || obj == nil || ts.Assign.IsValid() {
		return nil, fmt.Errorf("%s: %w: %s", pos, ErrNotStruct, ts.Name.Name)
	}
	n, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", pos, ErrNotStruct, ts.Name.Name)
	}
	if _, ok = n.Underlying().(*types.Struct); !ok {
		return nil, fmt.Errorf("%s: %w: %s", pos, ErrNotStruct, ts.Name.Name)
	}
	if n.TypeParams().Len() > 0 {
		return nil, fmt.Errorf("%s: %w: generic type %s needs an instantiation", pos, ErrNotStruct, ts.Name.Name)
	}
	return n, nil
}

func splitQualified(qn string) (pkgPath, name string, err error) {
	qn = strings.TrimSpace(qn)
	i := strings.LastIndex(qn, ".")
	if i <= 0 || i == len(qn)-1 || strings.Contains(qn[i+1:], "/") {
		return "", "", fmt.Errorf("%w: %q is not of the form import/path.Type", ErrTypeNotFound, qn)
	}
	return qn[:i], qn[i+1:], nil
}
