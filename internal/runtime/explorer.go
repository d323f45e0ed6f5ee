package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/tracetm/pkg/domain"
)

// Explorer runs breadth-first searches over the configuration tree of a
// machine.
type Explorer struct {
	table  *Table
	name   string
	logger *slog.Logger
	hooks  domain.TraceHooks
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithLogger sets a structured logger for trace diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Explorer) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks domain.TraceHooks) Option {
	return func(e *Explorer) {
		e.hooks = hooks
	}
}

// WithMachineName labels reports produced by the explorer.
func WithMachineName(name string) Option {
	return func(e *Explorer) {
		e.name = name
	}
}

// NewExplorer creates an explorer over table.
func NewExplorer(table *Table, opts ...Option) *Explorer {
	e := &Explorer{
		table:  table,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// node is one arena entry. parent is -1 for the root.
type node struct {
	cfg    tape
	depth  int
	parent int32
}

// walker holds the mutable state of a single trace.
type walker struct {
	e        *Explorer
	ctx      context.Context
	alpha    *alphabet
	maxDepth int

	// arena doubles as the FIFO frontier: nodes are appended in enqueue
	// order, so arena[next:] is exactly the pending queue.
	arena []node
	next  int

	steps  int
	deep   int
	levels []domain.LevelStats
}

// Explore traces input from the start state until a node in the accept state
// is popped, the frontier empties, or maxDepth nodes have been expanded.
// The only errors are an invalid bound and context cancellation; every
// terminal outcome is reported through the Verdict.
func (e *Explorer) Explore(ctx context.Context, input string, maxDepth int) (*domain.Report, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidDepth, maxDepth)
	}

	w := &walker{
		e:        e,
		ctx:      ctx,
		alpha:    newAlphabet(e.table),
		maxDepth: maxDepth,
	}
	w.arena = append(w.arena, node{cfg: w.alpha.initial(input), parent: -1})

	verdict, accepted, err := w.loop()
	if err != nil {
		e.logger.Warn("trace interrupted", "input", input, "steps", w.steps, "err", err)
		return nil, err
	}

	report := w.report(input, verdict, accepted)
	e.logger.Debug("trace finished",
		"input", input,
		"verdict", report.Verdict,
		"depth", report.Depth,
		"transitions", report.Transitions,
		"nodes", len(w.arena),
	)
	if e.hooks.OnTerminal != nil {
		e.hooks.OnTerminal(ctx, report)
	}
	return report, nil
}

// loop processes the frontier until a terminal outcome. It returns the arena
// index of the accepting node, or -1.
func (w *walker) loop() (domain.Verdict, int, error) {
	t := w.e.table
	for w.next < len(w.arena) {
		if w.steps >= w.maxDepth {
			return domain.VerdictDepthExceeded, -1, nil
		}

		// cancellation check (once per node)
		select {
		case <-w.ctx.Done():
			return "", -1, w.ctx.Err()
		default:
		}

		idx := w.next
		w.next++
		cur := w.arena[idx]
		w.visit(cur)

		if cur.cfg.state == t.accept {
			return domain.VerdictAccepted, idx, nil
		}
		if cur.cfg.state == t.reject {
			continue
		}

		rules := t.lookup(cur.cfg.state, cur.cfg.head)
		if len(rules) == 0 {
			continue
		}
		for _, r := range rules {
			w.arena = append(w.arena, node{
				cfg:    cur.cfg.apply(r, t.blank),
				depth:  cur.depth + 1,
				parent: int32(idx),
			})
		}
		w.levels[cur.depth].NonLeaf++
		w.levels[cur.depth].Children += len(rules)
		w.steps++

		if w.e.hooks.OnExpand != nil {
			w.e.hooks.OnExpand(w.ctx, &domain.ExpandEvent{
				Depth:    cur.depth,
				State:    t.states[cur.cfg.state],
				Symbol:   w.alpha.name(cur.cfg.head),
				Children: len(rules),
			})
		}
	}
	return domain.VerdictRejected, -1, nil
}

func (w *walker) visit(n node) {
	for len(w.levels) <= n.depth {
		w.levels = append(w.levels, domain.LevelStats{Level: len(w.levels)})
	}
	w.levels[n.depth].Visited++
	if n.depth > w.deep {
		w.deep = n.depth
	}
	if w.e.hooks.OnVisit != nil {
		w.e.hooks.OnVisit(w.ctx, &domain.VisitEvent{
			Depth:         n.depth,
			Configuration: w.alpha.configuration(&n.cfg),
		})
	}
}

// path walks parent links from idx back to the root.
func (w *walker) path(idx int) []domain.Configuration {
	var rev []domain.Configuration
	for i := int32(idx); i >= 0; i = w.arena[i].parent {
		rev = append(rev, w.alpha.configuration(&w.arena[i].cfg))
	}
	out := make([]domain.Configuration, len(rev))
	for i, c := range rev {
		out[len(rev)-1-i] = c
	}
	return out
}
