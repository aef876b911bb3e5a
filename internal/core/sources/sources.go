// Package sources holds the per-election source table and registers it with
// the core registry. Import this package to make the default elections available.
package sources

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JonMunkholm/elections/internal/core"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var defaultManifest string

type manifest struct {
	Sources []entry `yaml:"sources"`
}

type entry struct {
	Election int    `yaml:"election"`
	Path     string `yaml:"path"`
	Encoding string `yaml:"encoding"`
	Format   string `yaml:"format"`
}

func init() {
	specs, err := Default()
	if err != nil {
		panic(fmt.Sprintf("embedded manifest: %v", err))
	}
	for _, spec := range specs {
		core.Register(spec)
	}
}

// Default returns the embedded source table.
func Default() ([]core.SourceSpec, error) {
	return Parse(strings.NewReader(defaultManifest))
}

// LoadFile reads a manifest from disk.
func LoadFile(path string) ([]core.SourceSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	specs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return specs, nil
}

// Parse decodes and validates a YAML manifest. Encoding and format names are
// case-insensitive; elections must be unique.
func Parse(r io.Reader) ([]core.SourceSpec, error) {
	var m manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("manifest is empty")
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if len(m.Sources) == 0 {
		return nil, fmt.Errorf("manifest lists no sources")
	}

	seen := make(map[core.ElectionID]bool, len(m.Sources))
	specs := make([]core.SourceSpec, 0, len(m.Sources))
	for i, e := range m.Sources {
		spec := core.SourceSpec{
			Election: core.ElectionID(e.Election),
			Path:     strings.TrimSpace(e.Path),
			Encoding: core.Encoding(strings.ToLower(strings.TrimSpace(e.Encoding))),
			Format:   core.Format(strings.ToLower(strings.TrimSpace(e.Format))),
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if seen[spec.Election] {
			return nil, fmt.Errorf("entry %d: election %d listed twice", i+1, spec.Election)
		}
		seen[spec.Election] = true
		specs = append(specs, spec)
	}
	return specs, nil
}

// Resolve returns the sources listed in manifestPath, or the registered
// defaults when manifestPath is empty.
func Resolve(manifestPath string) ([]core.SourceSpec, error) {
	if manifestPath == "" {
		if core.SourceCount() == 0 {
			return nil, errors.New("no built-in sources registered")
		}
		return core.All(), nil
	}
	return LoadFile(manifestPath)
}
