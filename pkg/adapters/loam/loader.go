// Package loam exposes a directory of machine documents (YAML, JSON or
// Markdown with frontmatter) as a machine library backed by Loam.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/tracetm/internal/dto"
	"github.com/aretw0/tracetm/pkg/domain"
)

// Library adapts a Loam typed repository to ports.MachineLoader.
type Library struct {
	Repo *loam.TypedRepository[dto.MachineDocument]
}

// New creates a library over an existing typed repository.
func New(repo *loam.TypedRepository[dto.MachineDocument]) *Library {
	return &Library{Repo: repo}
}

// Open initializes a read-only, strict Loam repository at dir.
// The tracer never writes to the library.
func Open(dir string) (*Library, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[dto.MachineDocument](repo)), nil
}

// Load retrieves the machine document with the given ID.
func (l *Library) Load(ctx context.Context, id string) (*domain.MachineDefinition, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: loam get failed for %s: %v", domain.ErrUnknownMachine, id, err)
	}

	meta := doc.Data
	if meta.ID == "" {
		meta.ID = trimExtension(doc.ID)
	}
	return meta.Definition()
}

// List returns the IDs of every machine in the library.
func (l *Library) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return ids, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
