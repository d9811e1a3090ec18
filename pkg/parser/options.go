package parser

import (
	"path/filepath"
	"strings"
)

const (
	DefaultOutDir       = "mimic"
	DefaultManifestFile = "mimic.manifest.yaml"
)

// Options control target discovery and where mimics are written.
//
// InDir        – directory packages are loaded from (and the module is searched from)
// Patterns     – package patterns scanned for //mimic:generate directives, default "./..."
// OutDir       – directory of the generated package
// Package      – import path of the generated package; derived from OutDir and go.mod when empty
// Types        – additional targets given as "import/path.Type"
// ManifestFile – manifest of generated files, relative to OutDir unless absolute
type Options struct {
	InDir        string   `json:"in_dir,omitempty" yaml:"in_dir,omitempty" toml:"in_dir,omitempty" mapstructure:"in_dir,omitempty"`
	Patterns     []string `json:"patterns,omitempty" yaml:"patterns,omitempty" toml:"patterns,omitempty" mapstructure:"patterns,omitempty"`
	OutDir       string   `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	Package      string   `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty" mapstructure:"package,omitempty"`
	Types        []string `json:"types,omitempty" yaml:"types,omitempty" toml:"types,omitempty" mapstructure:"types,omitempty"`
	ManifestFile string   `json:"manifest_file,omitempty" yaml:"manifest_file,omitempty" toml:"manifest_file,omitempty" mapstructure:"manifest_file,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		InDir:        ".",
		Patterns:     []string{"./..."},
		OutDir:       DefaultOutDir,
		ManifestFile: DefaultManifestFile,
	}
}

// Normalize fills defaults and makes directories absolute.
func (o *Options) Normalize() {
	if len(o.InDir) == 0 {
		o.InDir = "."
	}
	o.InDir, _ = filepath.Abs(o.InDir)
	if len(o.OutDir) == 0 {
		o.OutDir = DefaultOutDir
	}
	if !filepath.IsAbs(o.OutDir) {
		o.OutDir = filepath.Join(o.InDir, o.OutDir)
	}
	if len(o.ManifestFile) == 0 {
		o.ManifestFile = DefaultManifestFile
	}
	if !filepath.IsAbs(o.ManifestFile) {
		o.ManifestFile = filepath.Join(o.OutDir, o.ManifestFile)
	}
	o.Patterns = trimAll(o.Patterns)
	if len(o.Patterns) == 0 && len(o.Types) == 0 {
		o.Patterns = []string{"./..."}
	}
	o.Types = trimAll(o.Types)
	o.Package = strings.TrimSpace(o.Package)
}

func trimAll(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInDir(d string) Option        { return func(o *Options) { o.InDir = d } }
func WithOutDir(d string) Option       { return func(o *Options) { o.OutDir = d } }
func WithPackage(p string) Option      { return func(o *Options) { o.Package = p } }
func WithManifestFile(f string) Option { return func(o *Options) { o.ManifestFile = f } }
func WithPatterns(patterns ...string) Option {
	return func(o *Options) { o.Patterns = append(o.Patterns, patterns...) }
}
func WithTypes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.Types = append(o.Types, strings.TrimSpace(n))
		}
	}
}

// Apply builds normalized Options from functional options.
func Apply(opts ...Option) *Options {
	o := &Options{}
	for _, fn := range opts {
		fn(o)
	}
	o.Normalize()
	return o
}
