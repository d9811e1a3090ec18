package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// DirectiveMarker is the comment that requests a mimic for the type it documents:
//
//	//mimic:generate
//	//mimic:generate package=github.com/acme/app/internal/mimics
const DirectiveMarker = "//mimic:generate"

var ErrDirective = errors.New("invalid mimic directive")

// Directive is a parsed DirectiveMarker comment.
type Directive struct {
	Marker  string             `parser:"@Marker"`
	Options []*DirectiveOption `parser:"@@*"`
}

type DirectiveOption struct {
	Key   string `parser:"@Word '='"`
	Value string `parser:"(@String | @Word)"`
}

var directiveKeys = map[string]bool{
	"package": true,
}

var directiveParser = participle.MustBuild[Directive](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Marker", Pattern: `//mimic:generate\b`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Word", Pattern: `[^\s="]+`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)

// ParseDirective parses a single comment line. ok is false when the line is
// not a mimic directive at all.
func ParseDirective(line string) (d *Directive, ok bool, err error) {
	line = strings.TrimSpace(line)
	if !isDirective(line) {
		return nil, false, nil
	}
	d, err = directiveParser.ParseString("", line)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %q: %w", ErrDirective, line, err)
	}
	seen := map[string]bool{}
	for _, o := range d.Options {
		if !directiveKeys[o.Key] {
			return nil, true, fmt.Errorf("%w: unknown option %q in %q", ErrDirective, o.Key, line)
		}
		if seen[o.Key] {
			return nil, true, fmt.Errorf("%w: option %q repeated in %q", ErrDirective, o.Key, line)
		}
		seen[o.Key] = true
	}
	return d, true, nil
}

// Get returns the value of option key, or "".
func (d *Directive) Get(key string) string {
	for _, o := range d.Options {
		if o.Key == key {
			return o.Value
		}
	}
	return ""
}

// Package is the target package requested by the directive, or "" to use the
// configured one.
func (d *Directive) Package() string {
	return d.Get("package")
}

// FindDirective scans comment groups (type spec doc first, then the enclosing
// declaration doc) for a mimic directive.
func FindDirective(groups ...*ast.CommentGroup) (*Directive, error) {
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			d, ok, err := ParseDirective(c.Text)
			if !ok {
				continue
			}
			return d, err
		}
	}
	return nil, nil
}

func isDirective(line string) bool {
	if !strings.HasPrefix(line, DirectiveMarker) {
		return false
	}
	rest := line[len(DirectiveMarker):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}
