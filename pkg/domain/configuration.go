package domain

import "strings"

// Configuration is an immutable snapshot of one computation branch.
// Left is stored left-to-right with its last element adjacent to the head;
// Right starts with the cell adjacent to the head.
type Configuration struct {
	State string   `json:"state"`
	Left  []string `json:"left"`
	Head  string   `json:"head"`
	Right []string `json:"right"`
}

// InitialConfiguration lays the input out with the head on its first symbol.
// Each rune of input is one tape symbol; an empty input puts the head on a blank.
func InitialConfiguration(state, input string) Configuration {
	symbols := SplitInput(input)
	return Configuration{
		State: state,
		Left:  []string{},
		Head:  symbols[0],
		Right: append([]string{}, symbols[1:]...),
	}
}

// SplitInput turns an input string into tape symbols, one per rune.
// The empty string yields a single blank.
func SplitInput(input string) []string {
	if input == "" {
		return []string{Blank}
	}
	out := make([]string, 0, len(input))
	for _, r := range input {
		out = append(out, string(r))
	}
	return out
}

// Apply returns the configuration reached by firing rule on c.
// c is left untouched; the returned value owns fresh segments.
func (c Configuration) Apply(rule TransitionRule) Configuration {
	next := Configuration{State: rule.To}
	switch rule.Move {
	case Left:
		next.Right = make([]string, 0, len(c.Right)+1)
		next.Right = append(next.Right, rule.Write)
		next.Right = append(next.Right, c.Right...)
		if len(c.Left) == 0 {
			next.Left = []string{}
			next.Head = Blank
		} else {
			next.Left = append([]string{}, c.Left[:len(c.Left)-1]...)
			next.Head = c.Left[len(c.Left)-1]
		}
	default:
		next.Left = make([]string, 0, len(c.Left)+1)
		next.Left = append(next.Left, c.Left...)
		next.Left = append(next.Left, rule.Write)
		if len(c.Right) == 0 {
			next.Right = []string{}
			next.Head = Blank
		} else {
			next.Right = append([]string{}, c.Right[1:]...)
			next.Head = c.Right[0]
		}
	}
	return next
}

// String renders the configuration as "left,state,head,right".
func (c Configuration) String() string {
	var sb strings.Builder
	for _, s := range c.Left {
		sb.WriteString(s)
	}
	sb.WriteByte(',')
	sb.WriteString(c.State)
	sb.WriteByte(',')
	sb.WriteString(c.Head)
	sb.WriteByte(',')
	for _, s := range c.Right {
		sb.WriteString(s)
	}
	return sb.String()
}
