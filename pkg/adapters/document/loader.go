// Package document loads machine descriptions written as YAML or JSON
// documents.
package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/tracetm/internal/dto"
	"github.com/aretw0/tracetm/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.MachineLoader for YAML/JSON files.
type Loader struct {
	logger *slog.Logger
}

// New creates a document loader. A nil logger discards diagnostics.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{logger: logger}
}

// Load reads and parses the document at path.
func (l *Loader) Load(ctx context.Context, path string) (*domain.MachineDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownMachine, path)
		}
		return nil, fmt.Errorf("failed to read machine document: %w", err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(def.SkippedRows) > 0 {
		l.logger.Debug("skipped transitions", "path", path, "indices", def.SkippedRows)
	}
	return def, nil
}

// Parse decodes a YAML (or JSON, which YAML accepts) machine document.
func Parse(data []byte) (*domain.MachineDefinition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDefinition, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", domain.ErrMalformedDefinition)
	}

	doc, err := dto.Decode(raw)
	if err != nil {
		return nil, err
	}
	return doc.Definition()
}
