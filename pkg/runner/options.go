package runner

import (
	"io"
	"log/slog"

	"github.com/aretw0/tracetm/pkg/report"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInput sets the reader answers are taken from.
func WithInput(in io.Reader) Option {
	return func(r *Runner) {
		r.Input = in
	}
}

// WithOutput sets the writer prompts and reports are printed to.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) {
		r.Output = out
	}
}

// WithSink appends the reference text report of every trace to w.
func WithSink(w io.Writer) Option {
	return func(r *Runner) {
		r.Sink = w
	}
}

// WithHeadless suppresses prompts, for scripted input.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// WithFormat selects how reports are printed to the output.
func WithFormat(format report.Format) Option {
	return func(r *Runner) {
		r.Format = format
	}
}

// WithRenderer configures the content renderer (e.g. TUI, Markdown).
func WithRenderer(renderer ContentRenderer) Option {
	return func(r *Runner) {
		r.Renderer = renderer
	}
}
