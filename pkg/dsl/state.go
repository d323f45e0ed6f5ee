package dsl

import "github.com/aretw0/tracetm/pkg/domain"

// StateBuilder provides a fluent API for the rules leaving one state.
type StateBuilder struct {
	id      string
	builder *Builder
}

// On adds the rule (state, read) -> (to, write, move).
// Rules keep the order in which they were added across all states.
func (s *StateBuilder) On(read, to, write string, move domain.Direction) *StateBuilder {
	s.builder.State(to)
	s.builder.def.Rules = append(s.builder.def.Rules, domain.TransitionRule{
		From:  s.id,
		Read:  read,
		To:    to,
		Write: write,
		Move:  move,
	})
	return s
}

// Right adds a rule that moves the head right.
func (s *StateBuilder) Right(read, to, write string) *StateBuilder {
	return s.On(read, to, write, domain.Right)
}

// Left adds a rule that moves the head left.
func (s *StateBuilder) Left(read, to, write string) *StateBuilder {
	return s.On(read, to, write, domain.Left)
}

// State switches to another state of the same machine.
func (s *StateBuilder) State(id string) *StateBuilder {
	return s.builder.State(id)
}

// Done returns the machine builder.
func (s *StateBuilder) Done() *Builder {
	return s.builder
}
