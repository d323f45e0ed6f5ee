package runtime

import "github.com/aretw0/tracetm/pkg/domain"

func (w *walker) report(input string, verdict domain.Verdict, accepted int) *domain.Report {
	r := &domain.Report{
		Machine:     w.e.name,
		Input:       input,
		MaxDepth:    w.maxDepth,
		Verdict:     verdict,
		Depth:       w.deep,
		Transitions: w.steps,
		Visited:     w.next,
		Levels:      w.levels,
	}
	if verdict == domain.VerdictAccepted {
		r.Path = w.path(accepted)
		r.AcceptDepth = w.arena[accepted].depth
	}
	r.Nondeterminism = Nondeterminism(w.levels)
	return r
}

// Nondeterminism returns the average number of children per expanded node
// across all levels, or 0 when nothing was expanded.
func Nondeterminism(levels []domain.LevelStats) float64 {
	var children, nonLeaf int
	for _, l := range levels {
		children += l.Children
		nonLeaf += l.NonLeaf
	}
	if nonLeaf == 0 {
		return 0
	}
	return float64(children) / float64(nonLeaf)
}
