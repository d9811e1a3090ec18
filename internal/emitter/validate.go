package emitter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cmmoran/mimicgen/internal/model"
)

var (
	ErrAccessorCollision = errors.New("accessor name collision")
	ErrInaccessibleType  = errors.New("type cannot be referenced from the mimic package")
)

// Validate reports why spec cannot be rendered into package pkgPath. Shadowed
// fields and fields differing only in the case of their first letter produce
// duplicate accessor names, and Go rejects duplicate methods. Types that the
// mimic package cannot name are rejected as well.
func Validate(spec *model.WrapperSpec, pkgPath string) error {
	var errs []error
	if c := spec.Collisions(); len(c) > 0 {
		errs = append(errs, fmt.Errorf("%w in %s: %s (%s)", ErrAccessorCollision, spec.Name, strings.Join(c, ", "), describeCollisions(spec, c)))
	}
	if !spec.Instance.Type.Accessible(pkgPath) {
		errs = append(errs, fmt.Errorf("%w: target %s: %s", ErrInaccessibleType, spec.Instance.Type, reason(spec.Instance.Type)))
	}
	for _, a := range spec.Accessors {
		if !a.Field.DeclaredType.Accessible(pkgPath) {
			errs = append(errs, fmt.Errorf("%w: field %s of %s has type %s: %s", ErrInaccessibleType, a.Field.Selector(), spec.Target.SimpleName, a.Field.DeclaredType, reason(a.Field.DeclaredType)))
		}
	}
	return errors.Join(errs...)
}

func reason(t *model.TypeRef) string {
	if p := t.Problem(); p != "" {
		return p
	}
	return "unexported outside its package"
}

func describeCollisions(spec *model.WrapperSpec, names []string) string {
	clash := make(map[string]bool, len(names))
	for _, n := range names {
		clash[n] = true
	}
	var fields []string
	for _, a := range spec.Accessors {
		if clash[a.Getter] || clash[a.Setter] {
			fields = append(fields, a.Field.Selector())
		}
	}
	return "fields " + strings.Join(fields, ", ")
}
