package runtime

import "github.com/aretw0/tracetm/pkg/domain"

// tape is the interned form of domain.Configuration.
// Segments are never shared between tapes.
type tape struct {
	state stateID
	left  []symbolID
	head  symbolID
	right []symbolID
}

func (c *tape) apply(r rule, blank symbolID) tape {
	next := tape{state: r.to}
	if r.move == domain.Left {
		next.right = make([]symbolID, 0, len(c.right)+1)
		next.right = append(next.right, r.write)
		next.right = append(next.right, c.right...)
		if n := len(c.left); n == 0 {
			next.head = blank
		} else {
			next.left = append(make([]symbolID, 0, n-1), c.left[:n-1]...)
			next.head = c.left[n-1]
		}
		return next
	}

	next.left = make([]symbolID, 0, len(c.left)+1)
	next.left = append(next.left, c.left...)
	next.left = append(next.left, r.write)
	if len(c.right) == 0 {
		next.head = blank
	} else {
		next.right = append(make([]symbolID, 0, len(c.right)-1), c.right[1:]...)
		next.head = c.right[0]
	}
	return next
}

// alphabet resolves symbols for a single trace. Input characters unknown to
// the table get ids past the table range so that lookups miss instead of
// failing.
type alphabet struct {
	table *Table
	extra map[string]symbolID
	names []string
}

func newAlphabet(t *Table) *alphabet {
	return &alphabet{table: t, extra: make(map[string]symbolID)}
}

func (a *alphabet) id(s string) symbolID {
	if id, ok := a.table.symbolIdx[s]; ok {
		return id
	}
	if id, ok := a.extra[s]; ok {
		return id
	}
	id := symbolID(len(a.table.symbols) + len(a.names))
	a.extra[s] = id
	a.names = append(a.names, s)
	return id
}

func (a *alphabet) name(id symbolID) string {
	if int(id) < len(a.table.symbols) {
		return a.table.symbols[id]
	}
	return a.names[int(id)-len(a.table.symbols)]
}

func (a *alphabet) initial(input string) tape {
	symbols := domain.SplitInput(input)
	c := tape{state: a.table.start, head: a.id(symbols[0])}
	if len(symbols) > 1 {
		c.right = make([]symbolID, 0, len(symbols)-1)
		for _, s := range symbols[1:] {
			c.right = append(c.right, a.id(s))
		}
	}
	return c
}

func (a *alphabet) configuration(c *tape) domain.Configuration {
	out := domain.Configuration{
		State: a.table.states[c.state],
		Left:  make([]string, len(c.left)),
		Head:  a.name(c.head),
		Right: make([]string, len(c.right)),
	}
	for i, s := range c.left {
		out.Left[i] = a.name(s)
	}
	for i, s := range c.right {
		out.Right[i] = a.name(s)
	}
	return out
}
