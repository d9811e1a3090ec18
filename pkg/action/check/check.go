// Package check compares the mimics on disk with what would be generated now.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/mimicgen/internal/model"
	"github.com/cmmoran/mimicgen/pkg/action/generate"
	"github.com/cmmoran/mimicgen/pkg/manifest"
	"github.com/cmmoran/mimicgen/pkg/parser"
)

type Status int

const (
	StatusCurrent Status = iota
	StatusStale
	StatusMissing
	StatusOrphaned
)

func (s Status) String() string {
	switch s {
	case StatusCurrent:
		return "current"
	case StatusStale:
		return "stale"
	case StatusMissing:
		return "missing"
	case StatusOrphaned:
		return "orphaned"
	}
	return "unknown"
}

// Report is the state of one mimic.
type Report struct {
	Target string
	File   string
	Status Status
	Diff   string // "-disk +generated", set for stale files
}

// Dirty reports whether any mimic needs regenerating or removing.
func Dirty(reports []Report) bool {
	for _, r := range reports {
		if r.Status != StatusCurrent {
			return true
		}
	}
	return false
}

// Check renders every target under opts in memory and compares the result with
// the files on disk. Compile-time manifest entries whose target is no longer
// generated are reported as orphaned.
func Check(ctx context.Context, opts *parser.Options) ([]Report, error) {
	opts.Normalize()
	reqs, err := generate.Discover(opts)
	if err != nil {
		return nil, err
	}
	files, err := generate.NewProcessor(opts).Render(ctx, reqs...)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Load(opts.ManifestFile)
	if err != nil {
		return nil, err
	}
	return Compare(filepath.Dir(opts.ManifestFile), m, files)
}

// Compare checks files against disk and against the manifest m, whose file
// paths are relative to base.
func Compare(base string, m *manifest.Manifest, files []*generate.File) ([]Report, error) {
	reports := make([]Report, 0, len(files))
	generated := make(map[string]bool, len(files))
	for _, f := range files {
		generated[f.Target] = true
		r := Report{Target: f.Target, File: f.Path, Status: StatusCurrent}

		disk, err := os.ReadFile(f.Path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			r.Status = StatusMissing
		case err != nil:
			return nil, fmt.Errorf("read mimic: %w", err)
		default:
			if d := cmp.Diff(string(disk), string(f.Content)); d != "" {
				r.Status = StatusStale
				r.Diff = d
			}
		}
		reports = append(reports, r)
	}

	for _, e := range m.Entries {
		// runtime mimics are written by programs check cannot run
		if generated[e.Target] || e.Source == model.SourceRuntime.String() {
			continue
		}
		file := filepath.FromSlash(e.File)
		if !filepath.IsAbs(file) {
			file = filepath.Join(base, file)
		}
		reports = append(reports, Report{Target: e.Target, File: file, Status: StatusOrphaned})
	}

	sort.SliceStable(reports, func(i, j int) bool { return reports[i].Target < reports[j].Target })
	return reports, nil
}
