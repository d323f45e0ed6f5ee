package runtime

import "github.com/aretw0/tracetm/pkg/domain"

type stateID int32

type symbolID int32

// rule is the right-hand side of a transition with interned identifiers.
type rule struct {
	to    stateID
	write symbolID
	move  domain.Direction
}

// Table maps (state, symbol) pairs to the rules declared for them.
// It is built once per machine and is read-only afterwards, so a single
// Table may back any number of sequential or concurrent traces.
type Table struct {
	states    []string
	stateIdx  map[string]stateID
	symbols   []string
	symbolIdx map[string]symbolID

	// rules is indexed by state*len(symbols)+symbol.
	rules [][]rule

	start  stateID
	accept stateID
	reject stateID
	blank  symbolID
}

// NewTable interns every state and symbol mentioned by def and indexes its
// rules, preserving declaration order within each (state, symbol) bucket.
func NewTable(def *domain.MachineDefinition) *Table {
	t := &Table{
		stateIdx:  make(map[string]stateID),
		symbolIdx: make(map[string]symbolID),
	}

	t.blank = t.internSymbol(domain.Blank)
	for _, s := range def.TapeAlphabet {
		t.internSymbol(s)
	}
	for _, s := range def.InputAlphabet {
		t.internSymbol(s)
	}
	for _, s := range def.States {
		t.internState(s)
	}
	t.start = t.internState(def.Start)
	t.accept = t.optionalState(def.Accept)
	t.reject = t.optionalState(def.Reject)
	for _, r := range def.Rules {
		t.internState(r.From)
		t.internState(r.To)
		t.internSymbol(r.Read)
		t.internSymbol(r.Write)
	}

	t.rules = make([][]rule, len(t.states)*len(t.symbols))
	for _, r := range def.Rules {
		k := t.key(t.stateIdx[r.From], t.symbolIdx[r.Read])
		t.rules[k] = append(t.rules[k], rule{
			to:    t.stateIdx[r.To],
			write: t.symbolIdx[r.Write],
			move:  r.Move,
		})
	}

	return t
}

func (t *Table) internState(s string) stateID {
	if id, ok := t.stateIdx[s]; ok {
		return id
	}
	id := stateID(len(t.states))
	t.states = append(t.states, s)
	t.stateIdx[s] = id
	return id
}

// optionalState interns s unless it is empty, in which case no popped node
// can ever match it.
func (t *Table) optionalState(s string) stateID {
	if s == "" {
		return -1
	}
	return t.internState(s)
}

func (t *Table) internSymbol(s string) symbolID {
	if id, ok := t.symbolIdx[s]; ok {
		return id
	}
	id := symbolID(len(t.symbols))
	t.symbols = append(t.symbols, s)
	t.symbolIdx[s] = id
	return id
}

func (t *Table) key(s stateID, sym symbolID) int {
	return int(s)*len(t.symbols) + int(sym)
}

// lookup returns the rules for (s, sym). Symbols interned after the table
// was built fall outside its range and never match.
func (t *Table) lookup(s stateID, sym symbolID) []rule {
	if s < 0 || int(s) >= len(t.states) || sym < 0 || int(sym) >= len(t.symbols) {
		return nil
	}
	return t.rules[t.key(s, sym)]
}

// Lookup returns the rules declared for (state, symbol) in declaration
// order. Unknown pairs yield an empty slice.
func (t *Table) Lookup(state, symbol string) []domain.TransitionRule {
	s, ok := t.stateIdx[state]
	if !ok {
		return nil
	}
	sym, ok := t.symbolIdx[symbol]
	if !ok {
		return nil
	}
	rules := t.lookup(s, sym)
	out := make([]domain.TransitionRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, domain.TransitionRule{
			From:  state,
			Read:  symbol,
			To:    t.states[r.to],
			Write: t.symbols[r.write],
			Move:  r.move,
		})
	}
	return out
}

// NumStates returns the number of interned states.
func (t *Table) NumStates() int { return len(t.states) }

// NumSymbols returns the number of interned symbols, blank included.
func (t *Table) NumSymbols() int { return len(t.symbols) }

// MaxBranching returns the size of the largest rule bucket.
func (t *Table) MaxBranching() int {
	max := 0
	for _, b := range t.rules {
		if len(b) > max {
			max = len(b)
		}
	}
	return max
}
