// Package mimic generates mimics from runtime type information. It is meant
// for small programs run by go:generate:
//
//	//go:build ignore
//
//	func main() {
//		opts := parser.Apply(parser.WithOutDir("mimics"))
//		if _, err := mimic.Generate(context.Background(), opts, model.Widget{}); err != nil {
//			log.Fatal(err)
//		}
//	}
package mimic

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/cmmoran/mimicgen/internal/emitter"
	"github.com/cmmoran/mimicgen/internal/model"
	iparser "github.com/cmmoran/mimicgen/internal/parser"
	"github.com/cmmoran/mimicgen/pkg/action/generate"
	"github.com/cmmoran/mimicgen/pkg/parser"
)

// ErrUndeclaredType is returned for targets that are not declared at package
// level, such as types declared inside a function.
var ErrUndeclaredType = errors.New("target type is not declared at package level")

// Generate writes a mimic for every target into the package configured by
// opts and records them in its manifest. A target is a struct value, a
// pointer to one, or its reflect.Type.
func Generate(ctx context.Context, opts *parser.Options, targets ...any) ([]*generate.File, error) {
	opts.Normalize()
	reqs, err := requests(targets)
	if err != nil {
		return nil, err
	}
	if err = declared(opts.InDir, reqs); err != nil {
		return nil, err
	}
	return generate.Write(ctx, opts, reqs...)
}

// Source renders the mimic of target for package pkgPath without writing it.
func Source(pkgPath string, target any) ([]byte, error) {
	reqs, err := requests([]any{target})
	if err != nil {
		return nil, err
	}
	if err = declared(".", reqs); err != nil {
		return nil, err
	}
	return emitter.Source(emitter.Emit(reqs[0].Type), pkgPath, iparser.PackageName(pkgPath))
}

// declared checks each target against the package-level declaration of the
// same name. Runtime type information does not tell a function-local type
// from a package-level one, but generated code can only name the latter.
func declared(dir string, reqs []generate.Request) error {
	names := make([]string, 0, len(reqs))
	for _, r := range reqs {
		// generic instantiations are rejected when rendering
		if r.Type.TypeRef.Valid() {
			names = append(names, r.Type.QualifiedName())
		}
	}
	if len(names) == 0 {
		return nil
	}

	p := iparser.New(dir, nil, names)
	if err := p.Parse(); err != nil {
		if errors.Is(err, iparser.ErrTypeNotFound) {
			return fmt.Errorf("%w: %w", ErrUndeclaredType, err)
		}
		return err
	}
	byName := make(map[string]*iparser.Target, len(p.Targets))
	for _, t := range p.Targets {
		byName[t.QualifiedName()] = t
	}
	for _, r := range reqs {
		t, ok := byName[r.Type.QualifiedName()]
		if !ok {
			continue
		}
		ct, err := iparser.FromNamed(t.Named)
		if err != nil {
			return err
		}
		if !slices.Equal(fieldSignatures(ct), fieldSignatures(r.Type)) {
			return fmt.Errorf("%w: %s differs from the package-level type of that name", ErrUndeclaredType, r.Type.QualifiedName())
		}
	}
	return nil
}

func fieldSignatures(td *model.TypeDescriptor) []string {
	out := make([]string, 0, len(td.Fields))
	for _, f := range td.Fields {
		out = append(out, f.Selector()+" "+f.DeclaredType.String())
	}
	return out
}

func requests(targets []any) ([]generate.Request, error) {
	reqs := make([]generate.Request, 0, len(targets))
	for i, target := range targets {
		t, ok := target.(reflect.Type)
		if !ok {
			t = reflect.TypeOf(target)
		}
		td, err := iparser.FromReflect(t)
		if err != nil {
			return nil, fmt.Errorf("target %d: %w", i, err)
		}
		reqs = append(reqs, generate.Request{Type: td, Origin: td.QualifiedName()})
	}
	return reqs, nil
}
