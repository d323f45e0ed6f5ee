package dto

import (
	"fmt"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// MachineDocument is the document (YAML/JSON/frontmatter) form of a machine.
// It uses "mapstructure" tags to match the keys accepted in documents.
type MachineDocument struct {
	ID            string   `json:"id" mapstructure:"id"`
	Name          string   `json:"name" mapstructure:"name"`
	Description   string   `json:"description" mapstructure:"description"`
	States        []string `json:"states" mapstructure:"states"`
	InputAlphabet []string `json:"input_alphabet" mapstructure:"input_alphabet"`
	TapeAlphabet  []string `json:"tape_alphabet" mapstructure:"tape_alphabet"`
	Start         string   `json:"start" mapstructure:"start"`
	Accept        string   `json:"accept" mapstructure:"accept"`
	Reject        string   `json:"reject" mapstructure:"reject"`

	// Transitions holds either "from,read,to,write,move" strings or
	// RuleDocument-shaped maps.
	Transitions []any `json:"transitions" mapstructure:"transitions"`
}

// RuleDocument is the object form of a transition.
type RuleDocument struct {
	From  string `json:"from" mapstructure:"from"`
	Read  string `json:"read" mapstructure:"read"`
	To    string `json:"to" mapstructure:"to"`
	Write string `json:"write" mapstructure:"write"`
	Move  string `json:"move" mapstructure:"move"`
}

// Decode maps a generic document (as produced by a YAML or JSON decoder)
// onto a MachineDocument. Scalars are converted weakly so that numeric
// symbols such as 0 and 1 come through as strings.
func Decode(raw map[string]any) (*MachineDocument, error) {
	var doc MachineDocument
	if err := weakDecode(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDefinition, err)
	}
	return &doc, nil
}

func weakDecode(input, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// Definition converts the document into a domain definition. Transitions
// that cannot be read as five fields with a valid direction are skipped and
// their indices recorded in SkippedRows.
func (d MachineDocument) Definition() (*domain.MachineDefinition, error) {
	if d.Start == "" {
		return nil, fmt.Errorf("%w: start state is required", domain.ErrMalformedDefinition)
	}

	def := &domain.MachineDefinition{
		Name:          d.Name,
		States:        Unique(d.States),
		InputAlphabet: Unique(d.InputAlphabet),
		TapeAlphabet:  Unique(d.TapeAlphabet),
		Start:         strings.TrimSpace(d.Start),
		Accept:        strings.TrimSpace(d.Accept),
		Reject:        strings.TrimSpace(d.Reject),
	}
	if def.Name == "" {
		def.Name = d.ID
	}

	for i, raw := range d.Transitions {
		rule, ok := decodeRule(raw)
		if !ok {
			def.SkippedRows = append(def.SkippedRows, i)
			continue
		}
		def.Rules = append(def.Rules, rule)
	}
	return def, nil
}

func decodeRule(raw any) (domain.TransitionRule, bool) {
	switch v := raw.(type) {
	case string:
		return ParseRuleFields(strings.Split(v, ","))
	case []any:
		fields := make([]string, 0, len(v))
		for _, f := range v {
			fields = append(fields, fmt.Sprint(f))
		}
		return ParseRuleFields(fields)
	case map[string]any:
		var rd RuleDocument
		if err := weakDecode(v, &rd); err != nil {
			return domain.TransitionRule{}, false
		}
		return ParseRuleFields([]string{rd.From, rd.Read, rd.To, rd.Write, rd.Move})
	}
	return domain.TransitionRule{}, false
}

// ParseRuleFields reads the first five fields of a transition row.
// Rows with fewer fields, or with a direction other than L/R, are rejected.
func ParseRuleFields(fields []string) (domain.TransitionRule, bool) {
	if len(fields) < 5 {
		return domain.TransitionRule{}, false
	}
	move, err := domain.ParseDirection(fields[4])
	if err != nil {
		return domain.TransitionRule{}, false
	}
	return domain.TransitionRule{
		From:  strings.TrimSpace(fields[0]),
		Read:  strings.TrimSpace(fields[1]),
		To:    strings.TrimSpace(fields[2]),
		Write: strings.TrimSpace(fields[3]),
		Move:  move,
	}, true
}

// Unique trims the values and drops empties and duplicates, keeping the
// first occurrence.
func Unique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
