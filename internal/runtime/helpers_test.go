package runtime_test

import (
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
)

// machine builds a definition from CSV-style rule rows.
func machine(start, accept, reject string, rows ...string) *domain.MachineDefinition {
	def := &domain.MachineDefinition{
		Name:   "test",
		States: []string{start, accept, reject},
		Start:  start,
		Accept: accept,
		Reject: reject,
	}
	for _, row := range rows {
		f := strings.Split(row, ",")
		move, err := domain.ParseDirection(f[4])
		if err != nil {
			panic(err)
		}
		def.Rules = append(def.Rules, domain.TransitionRule{
			From: f[0], Read: f[1], To: f[2], Write: f[3], Move: move,
		})
	}
	return def
}

func pathStrings(path []domain.Configuration) []string {
	out := make([]string, len(path))
	for i, c := range path {
		out[i] = c.String()
	}
	return out
}

// endsWithA guesses which 'a' is the last symbol of the input.
func endsWithA() *domain.MachineDefinition {
	return machine("q0", "qa", "qr",
		"q0,a,q0,a,R",
		"q0,a,q1,a,R",
		"q0,b,q0,b,R",
		"q1,_,qa,_,R",
	)
}
