package domain

import "slices"

// Blank is the symbol used for tape cells that were never written.
const Blank = "_"

// MachineDefinition is the formal description of a nondeterministic
// single-tape Turing machine.
type MachineDefinition struct {
	Name          string           `json:"name" yaml:"name"`
	States        []string         `json:"states" yaml:"states"`
	InputAlphabet []string         `json:"input_alphabet" yaml:"input_alphabet"`
	TapeAlphabet  []string         `json:"tape_alphabet" yaml:"tape_alphabet"`
	Start         string           `json:"start" yaml:"start"`
	Accept        string           `json:"accept" yaml:"accept"`
	Reject        string           `json:"reject" yaml:"reject"`
	Rules         []TransitionRule `json:"rules" yaml:"rules"`

	// SkippedRows holds the 0-based row numbers of transition rows that were
	// ignored at load time (too few fields or an unknown direction).
	SkippedRows []int `json:"skipped_rows,omitempty" yaml:"skipped_rows,omitempty"`
}

// HasState reports whether s is a member of the declared state set.
func (m *MachineDefinition) HasState(s string) bool {
	return slices.Contains(m.States, s)
}

// RulesFor returns the rules declared for (state, symbol) in file order.
// It is a linear scan meant for tooling; the explorer uses an indexed table.
func (m *MachineDefinition) RulesFor(state, symbol string) []TransitionRule {
	var out []TransitionRule
	for _, r := range m.Rules {
		if r.From == state && r.Read == symbol {
			out = append(out, r)
		}
	}
	return out
}
