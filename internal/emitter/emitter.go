// Package emitter turns a TypeDescriptor into a WrapperSpec and renders it as
// Go source.
package emitter

import (
	"go/token"
	"path"
	"strings"
	"unicode"

	"github.com/cmmoran/mimicgen/internal/model"
	"github.com/cmmoran/mimicgen/pkg/naming"
)

const instanceName = "instance"

var (
	receiverNames = []string{"m", "mm", "mimic"}
	valueNames    = []string{"value", "v", "val"}
)

// Emit builds the wrapper structure for td: the instance field, the
// constructor and one accessor pair per field, in the order of td.Fields.
// Final and constant fields get setters like any other field.
func Emit(td *model.TypeDescriptor) *model.WrapperSpec {
	taken := importNames(td)
	receiver := pickName(taken, receiverNames)
	taken[receiver] = true
	value := pickName(taken, valueNames)

	spec := &model.WrapperSpec{
		Name:     naming.WrapperName(td.SimpleName),
		Receiver: receiver,
		Target:   td,
		Instance: model.InstanceField{
			Name:    instanceName,
			Type:    td.TypeRef,
			Private: true,
			Final:   true,
		},
		Constructor: model.Constructor{
			Name:  naming.ConstructorName(td.SimpleName),
			Param: instanceName,
			Type:  td.TypeRef,
		},
		Accessors: make([]model.Accessor, 0, len(td.Fields)),
	}
	for _, f := range td.Fields {
		spec.Accessors = append(spec.Accessors, model.Accessor{
			Field:    f,
			Getter:   naming.GetterName(f.Name),
			Setter:   naming.SetterName(f.Name),
			Param:    value,
			Strategy: strategyFor(f),
		})
	}
	return spec
}

// importNames returns every name the rendered file may give to an imported
// package. Method bodies refer to types through these names, so receivers and
// parameters must not shadow them.
func importNames(td *model.TypeDescriptor) map[string]bool {
	paths := append([]string{AccessPkg}, td.TypeRef.Packages()...)
	for _, f := range td.Fields {
		paths = append(paths, f.DeclaredType.Packages()...)
	}
	taken := map[string]bool{instanceName: true}
	for _, p := range paths {
		for _, name := range packageNameGuesses(p) {
			taken[name] = true
		}
	}
	return taken
}

// packageNameGuesses over-approximates the identifiers an import of p can be
// known by: the last path element as written, lowercased, and reduced to
// letters and digits, with "go-"/"-go" trimmed and major version suffixes
// skipped.
func packageNameGuesses(p string) []string {
	base := path.Base(p)
	if strings.HasPrefix(base, "v") && len(base) > 1 && strings.Trim(base[1:], "0123456789") == "" {
		base = path.Base(path.Dir(p))
	}
	var out []string
	for _, b := range []string{base, strings.TrimPrefix(base, "go-"), strings.TrimSuffix(base, "-go"), strings.TrimSuffix(base, ".go")} {
		lower := strings.ToLower(b)
		clean := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
				return r
			}
			return -1
		}, lower)
		out = append(out, b, lower, clean)
	}
	return out
}

// pickName returns the first candidate not taken, or the last candidate
// padded with underscores until it is free.
func pickName(taken map[string]bool, candidates []string) string {
	for _, c := range candidates {
		if !taken[c] {
			return c
		}
	}
	name := candidates[len(candidates)-1]
	for taken[name] {
		name += "_"
	}
	return name
}

// strategyFor picks direct access only when the whole selector can be written
// in another package: the field is exported and so is every embedded field on
// the way to it.
func strategyFor(f model.FieldDescriptor) model.Strategy {
	if f.Visibility != model.Public {
		return model.StrategyReflective
	}
	for _, step := range f.Path {
		if !token.IsExported(step) {
			return model.StrategyReflective
		}
	}
	return model.StrategyDirect
}
