package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tracetm/pkg/domain"
)

// LogHooks returns hooks that log every expansion at Debug and every
// verdict at Info.
func LogHooks(logger *slog.Logger) domain.TraceHooks {
	return domain.TraceHooks{
		OnExpand: func(ctx context.Context, e *domain.ExpandEvent) {
			logger.DebugContext(ctx, "expand",
				"depth", e.Depth,
				"state", e.State,
				"symbol", e.Symbol,
				"children", e.Children,
			)
		},
		OnTerminal: func(ctx context.Context, r *domain.Report) {
			logger.InfoContext(ctx, "trace finished",
				"machine", r.Machine,
				"verdict", r.Verdict,
				"depth", r.Depth,
				"transitions", r.Transitions,
				"nondeterminism", r.Nondeterminism,
			)
		},
	}
}
