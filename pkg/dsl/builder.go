package dsl

import (
	"fmt"
	"slices"

	"github.com/aretw0/tracetm/internal/validator"
	"github.com/aretw0/tracetm/pkg/adapters/memory"
	"github.com/aretw0/tracetm/pkg/domain"
)

// Builder manages the machine construction.
type Builder struct {
	def    domain.MachineDefinition
	states map[string]*StateBuilder
}

// New creates a new machine builder.
func New(name string) *Builder {
	return &Builder{
		def:    domain.MachineDefinition{Name: name},
		states: make(map[string]*StateBuilder),
	}
}

// Input declares the input alphabet.
func (b *Builder) Input(symbols ...string) *Builder {
	b.def.InputAlphabet = append(b.def.InputAlphabet, symbols...)
	return b
}

// Tape declares the tape alphabet. When it is never called, Build derives
// it from the input alphabet, the rule symbols and the blank.
func (b *Builder) Tape(symbols ...string) *Builder {
	b.def.TapeAlphabet = append(b.def.TapeAlphabet, symbols...)
	return b
}

// Start sets the start state.
func (b *Builder) Start(state string) *Builder {
	b.State(state)
	b.def.Start = state
	return b
}

// Accept sets the accept state.
func (b *Builder) Accept(state string) *Builder {
	b.State(state)
	b.def.Accept = state
	return b
}

// Reject sets the reject state.
func (b *Builder) Reject(state string) *Builder {
	b.State(state)
	b.def.Reject = state
	return b
}

// State declares a state.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(id string) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{id: id, builder: b}
	b.states[id] = sb
	b.def.States = append(b.def.States, id)
	return sb
}

// Definition returns the definition as built so far, without validation.
func (b *Builder) Definition() *domain.MachineDefinition {
	def := b.def
	def.States = slices.Clone(b.def.States)
	def.InputAlphabet = slices.Clone(b.def.InputAlphabet)
	def.Rules = slices.Clone(b.def.Rules)
	if len(b.def.TapeAlphabet) > 0 {
		def.TapeAlphabet = slices.Clone(b.def.TapeAlphabet)
	} else {
		def.TapeAlphabet = deriveTape(&def)
	}
	return &def
}

// Build validates the machine and returns its definition.
func (b *Builder) Build() (*domain.MachineDefinition, error) {
	def := b.Definition()
	if err := validator.Validate(def).Err(); err != nil {
		return nil, fmt.Errorf("machine %q: %w", def.Name, err)
	}
	return def, nil
}

// Loader builds the machine and registers it in a memory loader under its name.
func (b *Builder) Loader() (*memory.Loader, error) {
	def, err := b.Build()
	if err != nil {
		return nil, err
	}
	loader := memory.NewLoader()
	loader.Add(def.Name, def)
	return loader, nil
}

func deriveTape(def *domain.MachineDefinition) []string {
	var out []string
	add := func(s string) {
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	for _, s := range def.InputAlphabet {
		add(s)
	}
	for _, r := range def.Rules {
		add(r.Read)
		add(r.Write)
	}
	add(domain.Blank)
	return out
}
