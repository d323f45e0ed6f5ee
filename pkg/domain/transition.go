package domain

import (
	"fmt"
	"strings"
)

// Direction is the head movement of a transition rule.
type Direction string

const (
	Left  Direction = "L"
	Right Direction = "R"
)

// ParseDirection accepts "L"/"R" (case-insensitive, surrounding spaces ignored).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return Left, nil
	case "R":
		return Right, nil
	}
	return "", fmt.Errorf("invalid direction %q", s)
}

// TransitionRule defines one move of the machine:
// (From, Read) -> (To, Write, Move).
// Several rules may share the same (From, Read) key; that is where
// nondeterminism comes from.
type TransitionRule struct {
	From  string    `json:"from" yaml:"from"`
	Read  string    `json:"read" yaml:"read"`
	To    string    `json:"to" yaml:"to"`
	Write string    `json:"write" yaml:"write"`
	Move  Direction `json:"move" yaml:"move"`
}

// String renders the rule in the CSV row form.
func (r TransitionRule) String() string {
	return strings.Join([]string{r.From, r.Read, r.To, r.Write, string(r.Move)}, ",")
}
