package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Entry represents one generated mimic in the manifest.
type Entry struct {
	Target  string `yaml:"target" json:"target"`   // "import/path.Type"
	Wrapper string `yaml:"wrapper" json:"wrapper"` // "mimic/package.TypeMimic"
	File    string `yaml:"file" json:"file"`
	Source  string `yaml:"source" json:"source"` // "runtime" or "compile-time"
}

// Manifest tracks the mimics generated into an output directory.
type Manifest struct {
	Generator string  `yaml:"generator" json:"generator"`
	Entries   []Entry `yaml:"entries" json:"entries"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	sort.Slice(m.Entries, func(i, j int) bool { return m.Entries[i].Target < m.Entries[j].Target })
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Record adds an entry, replacing an existing entry for the same target.
func (m *Manifest) Record(e Entry) {
	for i := range m.Entries {
		if m.Entries[i].Target == e.Target {
			m.Entries[i] = e
			return
		}
	}

	m.Entries = append(m.Entries, e)
}

// Lookup returns the entry recorded for target, if present.
func (m *Manifest) Lookup(target string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Target == target {
			return e, true
		}
	}
	return Entry{}, false
}

// Files returns the files of all entries.
func (m *Manifest) Files() []string {
	out := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e.File)
	}
	return out
}
