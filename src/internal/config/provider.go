// FILE: autolog/src/internal/config/provider.go
package config

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"
	lconfig "github.com/lixenwraith/config"
)

// Provider supplies a hierarchical configuration document from an external
// store (secrets manager, parameter store, mounted secret). Providers are
// fetch-only; polling and refresh schedules are the caller's concern.
type Provider interface {
	// Name identifies the provider in diagnostics
	Name() string

	// Fetch returns a JSON document of configuration values
	Fetch(ctx context.Context) ([]byte, error)
}

// ApplyProviders merges each provider's document into the configuration
// tree in declared order, so later providers override earlier ones. Keys
// are flattened to dot-separated paths before merging.
func ApplyProviders(ctx context.Context, cfg *lconfig.Config, providers ...Provider) error {
	for _, p := range providers {
		doc, err := p.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("provider '%s': fetch failed: %w", p.Name(), err)
		}

		flat, err := Flatten(doc)
		if err != nil {
			return fmt.Errorf("provider '%s': %w", p.Name(), err)
		}

		// Deterministic merge order within one document
		paths := make([]string, 0, len(flat))
		for path := range flat {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		for _, path := range paths {
			if err := cfg.Set(path, flat[path]); err != nil {
				return fmt.Errorf("provider '%s': set %s: %w", p.Name(), path, err)
			}
		}
	}
	return nil
}

// Flatten converts a nested JSON document into dot-separated key paths.
// Arrays flatten by index, matching the tree's path addressing.
func Flatten(doc []byte) (map[string]any, error) {
	var tree map[string]any
	if err := json.Unmarshal(doc, &tree); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}

	flat := make(map[string]any)
	flattenInto(flat, "", tree)
	return flat, nil
}

func flattenInto(flat map[string]any, prefix string, v any) {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			flattenInto(flat, path, child)
		}
	case []any:
		for i, child := range node {
			flattenInto(flat, fmt.Sprintf("%s.%d", prefix, i), child)
		}
	default:
		if prefix != "" {
			flat[prefix] = v
		}
	}
}

// StaticProvider serves a fixed in-memory document, used for tests and for
// values injected by the host at composition time.
type StaticProvider struct {
	name string
	doc  []byte
}

// NewStaticProvider wraps a JSON document as a provider.
func NewStaticProvider(name string, doc []byte) *StaticProvider {
	return &StaticProvider{name: name, doc: doc}
}

func (s *StaticProvider) Name() string {
	return s.name
}

func (s *StaticProvider) Fetch(ctx context.Context) ([]byte, error) {
	return s.doc, nil
}

// FileProvider reads a JSON document from disk, the shape secret stores
// take when mounted into a container filesystem.
type FileProvider struct {
	name string
	path string
}

// NewFileProvider creates a provider reading from the given path.
func NewFileProvider(name, path string) *FileProvider {
	return &FileProvider{name: name, path: path}
}

func (f *FileProvider) Name() string {
	return f.name
}

func (f *FileProvider) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(f.path)
}
