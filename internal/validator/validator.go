package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem found in a definition.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result collects the findings of one validation run.
type Result struct {
	Findings []Finding `json:"findings"`
}

func (r *Result) errorf(format string, args ...any) {
	r.Findings = append(r.Findings, Finding{SeverityError, fmt.Sprintf(format, args...)})
}

func (r *Result) warnf(format string, args ...any) {
	r.Findings = append(r.Findings, Finding{SeverityWarning, fmt.Sprintf(format, args...)})
}

// Errors returns only the error findings.
func (r *Result) Errors() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			out = append(out, f)
		}
	}
	return out
}

// Err folds the error findings into one error, or nil.
func (r *Result) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, f := range errs {
		msgs[i] = f.Message
	}
	return fmt.Errorf("%w: found %d errors:\n- %s", domain.ErrMalformedDefinition, len(errs), strings.Join(msgs, "\n- "))
}

// Validate checks state and alphabet membership of def and reports states
// the start state can never reach. None of these stop a trace; the explorer
// treats unknown states and symbols as leaves.
func Validate(def *domain.MachineDefinition) *Result {
	res := &Result{}

	switch {
	case def.Start == "":
		res.errorf("start state is empty")
	case !def.HasState(def.Start):
		res.errorf("start state '%s' is not a declared state", def.Start)
	}
	if def.Accept == "" {
		res.warnf("accept state is empty, no string can be accepted")
	} else if !def.HasState(def.Accept) {
		res.errorf("accept state '%s' is not a declared state", def.Accept)
	}
	if def.Reject != "" && !def.HasState(def.Reject) {
		res.errorf("reject state '%s' is not a declared state", def.Reject)
	}
	if def.Accept != "" && def.Accept == def.Reject {
		res.errorf("accept and reject are the same state '%s'", def.Accept)
	}

	tape := def.TapeAlphabet
	if len(tape) > 0 {
		for _, s := range def.InputAlphabet {
			if !slices.Contains(tape, s) {
				res.errorf("input symbol '%s' is not in the tape alphabet", s)
			}
		}
		if !slices.Contains(tape, domain.Blank) {
			res.warnf("tape alphabet does not declare the blank '%s'", domain.Blank)
		}
	}
	if slices.Contains(def.InputAlphabet, domain.Blank) {
		res.warnf("input alphabet contains the blank '%s'", domain.Blank)
	}

	for i, r := range def.Rules {
		if !def.HasState(r.From) {
			res.errorf("rule %d (%s): state '%s' is not declared", i+1, r, r.From)
		}
		if !def.HasState(r.To) {
			res.errorf("rule %d (%s): state '%s' is not declared", i+1, r, r.To)
		}
		if len(tape) > 0 {
			if !slices.Contains(tape, r.Read) {
				res.errorf("rule %d (%s): symbol '%s' is not in the tape alphabet", i+1, r, r.Read)
			}
			if r.Write != r.Read && !slices.Contains(tape, r.Write) {
				res.errorf("rule %d (%s): symbol '%s' is not in the tape alphabet", i+1, r, r.Write)
			}
		}
		if r.From != "" && (r.From == def.Accept || r.From == def.Reject) {
			res.warnf("rule %d (%s): leaves a halting state and never fires", i+1, r)
		}
	}

	for _, row := range def.SkippedRows {
		res.warnf("row %d was skipped at load time", row)
	}

	reachable := reach(def)
	for _, s := range def.States {
		if !reachable[s] {
			res.warnf("state '%s' is unreachable from '%s'", s, def.Start)
		}
	}

	return res
}

// reach walks the state graph breadth-first from the start state.
func reach(def *domain.MachineDefinition) map[string]bool {
	next := make(map[string][]string)
	for _, r := range def.Rules {
		next[r.From] = append(next[r.From], r.To)
	}

	visited := map[string]bool{def.Start: true}
	queue := []string{def.Start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == def.Accept || current == def.Reject {
			continue // Halting state
		}
		for _, target := range next[current] {
			if !visited[target] {
				visited[target] = true
				queue = append(queue, target)
			}
		}
	}
	return visited
}
