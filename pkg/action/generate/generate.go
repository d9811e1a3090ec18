// Package generate discovers mimic targets and writes their wrappers.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/cmmoran/mimicgen/internal/emitter"
	"github.com/cmmoran/mimicgen/internal/model"
	iparser "github.com/cmmoran/mimicgen/internal/parser"
	"github.com/cmmoran/mimicgen/pkg/manifest"
	"github.com/cmmoran/mimicgen/pkg/naming"
	"github.com/cmmoran/mimicgen/pkg/parser"
)

const Generator = "mimicgen"

var (
	ErrMissingPackage  = errors.New("mimic package not configured")
	ErrDuplicateOutput = errors.New("two targets render to the same file")
)

// Request asks for a mimic of Type. Package overrides the configured mimic
// package when set.
type Request struct {
	Type    *model.TypeDescriptor
	Package string
	Origin  string // where the request came from, for messages
}

// File is a rendered mimic.
type File struct {
	Target  string // "import/path.Type"
	Wrapper string // "mimic/package.TypeMimic"
	Package string
	Path    string // absolute
	Source  model.Source
	Content []byte
}

// Processor renders requests and keeps the set of targets it has already
// handled, so that repeated rounds never emit a type twice.
type Processor struct {
	opts *parser.Options

	mu        sync.Mutex
	processed map[string]bool
	module    *iparser.Module
	moduleErr error
	moduleSet bool
}

func NewProcessor(opts *parser.Options) *Processor {
	return &Processor{
		opts:      opts,
		processed: make(map[string]bool),
	}
}

// Processed reports whether target ("import/path.Type") has been handled.
func (p *Processor) Processed(target string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed[target]
}

// Render produces the files for reqs without writing them. Requests for
// targets already processed, or repeated within reqs, are skipped.
func (p *Processor) Render(ctx context.Context, reqs ...Request) ([]*File, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderAll(ctx, reqs)
}

func (p *Processor) renderAll(ctx context.Context, reqs []Request) ([]*File, error) {
	var (
		files []*File
		errs  []error
		paths = make(map[string]string)
		round = make(map[string]bool)
	)
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		target := req.Type.QualifiedName()
		if p.processed[target] || round[target] {
			slog.Debug("skipping processed target", "target", target)
			continue
		}
		round[target] = true

		f, err := p.render(req)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", req.Origin, err))
			continue
		}
		if other, ok := paths[f.Path]; ok {
			errs = append(errs, fmt.Errorf("%w: %s and %s both render %s", ErrDuplicateOutput, other, target, f.Path))
			continue
		}
		paths[f.Path] = target
		files = append(files, f)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return files, nil
}

// Process renders reqs, writes the files and marks the targets processed.
func (p *Processor) Process(ctx context.Context, reqs ...Request) ([]*File, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	files, err := p.renderAll(ctx, reqs)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if err = os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create mimic directory: %w", err)
		}
		if err = os.WriteFile(f.Path, f.Content, 0o644); err != nil {
			return nil, fmt.Errorf("write mimic: %w", err)
		}
		p.processed[f.Target] = true
		slog.Info("generated mimic", "target", f.Target, "wrapper", f.Wrapper, "file", f.Path, "source", f.Source.String())
	}
	return files, nil
}

func (p *Processor) render(req Request) (*File, error) {
	pkgPath, dir, err := p.destination(req.Package)
	if err != nil {
		return nil, err
	}

	td := req.Type
	spec := emitter.Emit(td)
	if c := spec.Collisions(); len(c) > 0 {
		slog.Warn("accessor names collide", "target", td.QualifiedName(), "names", c)
	}
	content, err := emitter.Source(spec, pkgPath, iparser.PackageName(pkgPath))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", td.QualifiedName(), err)
	}
	return &File{
		Target:  td.QualifiedName(),
		Wrapper: naming.QualifiedWrapperName(pkgPath, td.SimpleName),
		Package: pkgPath,
		Path:    filepath.Join(dir, naming.FileName(td.SimpleName)),
		Source:  td.Source,
		Content: content,
	}, nil
}

// destination resolves the import path and directory of the mimic package.
// The requested package wins over the configured one; without either, the
// package is derived from OutDir and the enclosing module. The configured
// package is written to OutDir, any other package to its directory in the
// main module.
func (p *Processor) destination(requested string) (pkgPath, dir string, err error) {
	configured := p.opts.Package
	if configured == "" {
		mod, modErr := p.findModule()
		if modErr == nil {
			configured, modErr = mod.ImportPath(p.opts.OutDir)
		}
		if modErr != nil && requested == "" {
			return "", "", fmt.Errorf("%w: set a package or an output directory inside a module: %w", ErrMissingPackage, modErr)
		}
	}
	if requested == "" || requested == configured {
		return configured, p.opts.OutDir, nil
	}

	mod, err := p.findModule()
	if err != nil {
		return "", "", fmt.Errorf("locate package %s: %w", requested, err)
	}
	dir, err = mod.PackageDir(requested)
	if err != nil {
		return "", "", err
	}
	return requested, dir, nil
}

func (p *Processor) findModule() (*iparser.Module, error) {
	if !p.moduleSet {
		p.module, p.moduleErr = iparser.FindModule(p.opts.InDir)
		p.moduleSet = true
	}
	return p.module, p.moduleErr
}

// Discover loads the configured packages and returns a request for every
// target found in them.
func Discover(opts *parser.Options) ([]Request, error) {
	ps := iparser.New(opts.InDir, opts.Patterns, opts.Types)
	ps.Skip = []string{opts.OutDir}
	if err := ps.Parse(); err != nil {
		return nil, err
	}
	reqs := make([]Request, 0, len(ps.Targets))
	for _, t := range ps.Targets {
		td, err := iparser.FromNamed(t.Named)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Pos, err)
		}
		reqs = append(reqs, Request{Type: td, Package: t.Package, Origin: t.Pos.String()})
	}
	slog.Debug("discovered mimic targets", "count", len(reqs), "patterns", opts.Patterns, "types", opts.Types)
	return reqs, nil
}

// Generate discovers every target under opts, writes its mimic and records
// the result in the manifest.
func Generate(ctx context.Context, opts *parser.Options) ([]*File, error) {
	opts.Normalize()
	reqs, err := Discover(opts)
	if err != nil {
		return nil, err
	}
	return Write(ctx, opts, reqs...)
}

// Write processes reqs with a fresh Processor and records the files in the
// manifest named by opts.
func Write(ctx context.Context, opts *parser.Options, reqs ...Request) ([]*File, error) {
	files, err := NewProcessor(opts).Process(ctx, reqs...)
	if err != nil {
		return nil, err
	}
	if err = Record(opts.ManifestFile, files); err != nil {
		return nil, err
	}
	return files, nil
}

// Record adds files to the manifest at path.
func Record(path string, files []*File) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	m.Generator = Generator
	for _, f := range files {
		m.Record(Entry(filepath.Dir(path), f))
	}
	return m.Save(path)
}

// Entry is the manifest entry of f, with the file relative to base.
func Entry(base string, f *File) manifest.Entry {
	file := f.Path
	if rel, err := filepath.Rel(base, f.Path); err == nil {
		file = filepath.ToSlash(rel)
	}
	return manifest.Entry{
		Target:  f.Target,
		Wrapper: f.Wrapper,
		File:    file,
		Source:  f.Source.String(),
	}
}
