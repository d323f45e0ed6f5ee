package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/tracetm/pkg/domain"
)

// Loader implements ports.MachineLoader over definitions registered in memory.
// It is handy for tests and for hosts that build machines programmatically.
type Loader struct {
	machines map[string]*domain.MachineDefinition
	mu       sync.RWMutex
}

// NewLoader creates an empty in-memory loader.
func NewLoader() *Loader {
	return &Loader{machines: make(map[string]*domain.MachineDefinition)}
}

// Add registers def under ref, replacing any previous entry.
func (l *Loader) Add(ref string, def *domain.MachineDefinition) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.machines[ref] = def
}

// Load returns the definition registered under ref.
func (l *Loader) Load(ctx context.Context, ref string) (*domain.MachineDefinition, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	def, ok := l.machines[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownMachine, ref)
	}
	return def, nil
}

// List returns the registered references in sorted order.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	refs := make([]string, 0, len(l.machines))
	for ref := range l.machines {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs, nil
}
