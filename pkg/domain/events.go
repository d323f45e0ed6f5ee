package domain

import "context"

// VisitEvent is emitted each time a node is popped from the frontier.
type VisitEvent struct {
	Depth         int
	Configuration Configuration
}

// ExpandEvent is emitted after a node produced its children.
type ExpandEvent struct {
	Depth    int
	State    string
	Symbol   string
	Children int
}

// TraceHooks defines callbacks for explorer observability.
// Nil callbacks are skipped.
type TraceHooks struct {
	OnVisit    func(context.Context, *VisitEvent)
	OnExpand   func(context.Context, *ExpandEvent)
	OnTerminal func(context.Context, *Report)
}

// Merge returns hooks that call h first and then other.
func (h TraceHooks) Merge(other TraceHooks) TraceHooks {
	return TraceHooks{
		OnVisit: func(ctx context.Context, e *VisitEvent) {
			if h.OnVisit != nil {
				h.OnVisit(ctx, e)
			}
			if other.OnVisit != nil {
				other.OnVisit(ctx, e)
			}
		},
		OnExpand: func(ctx context.Context, e *ExpandEvent) {
			if h.OnExpand != nil {
				h.OnExpand(ctx, e)
			}
			if other.OnExpand != nil {
				other.OnExpand(ctx, e)
			}
		},
		OnTerminal: func(ctx context.Context, r *Report) {
			if h.OnTerminal != nil {
				h.OnTerminal(ctx, r)
			}
			if other.OnTerminal != nil {
				other.OnTerminal(ctx, r)
			}
		},
	}
}
