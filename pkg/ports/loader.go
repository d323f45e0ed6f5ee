package ports

import (
	"context"

	"github.com/aretw0/tracetm/pkg/domain"
)

// MachineLoader defines how machine descriptions are retrieved.
// This allows the source (CSV file, YAML document, Loam library, memory) to be decoupled.
type MachineLoader interface {
	// Load resolves ref (a path or a library ID, depending on the loader)
	// into a machine definition.
	Load(ctx context.Context, ref string) (*domain.MachineDefinition, error)
}

// MachineLister is implemented by loaders that can enumerate their machines.
type MachineLister interface {
	List(ctx context.Context) ([]string, error)
}
