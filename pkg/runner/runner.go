package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/report"
)

const (
	// PromptInput asks for the next string to trace.
	PromptInput = "Input a string to run through the Turing machine. To end input input 'quit': "
	// PromptDepth asks for the exploration bound of that string.
	PromptDepth = "Input the max depth allowed: "
	// QuitWord ends the loop.
	QuitWord = "quit"
)

// Tracer is what the loop drives. *tracetm.Machine satisfies it.
type Tracer interface {
	Trace(ctx context.Context, input string, maxDepth int) (*domain.TraceRecord, error)
}

// Runner handles the interactive loop of the tracer using provided IO.
// It keeps no state between strings besides the running count.
type Runner struct {
	Input  io.Reader
	Output io.Writer

	// Sink receives the reference text report of every trace. Nil skips it.
	Sink io.Writer

	// Headless suppresses prompts.
	Headless bool

	// Format is used for reports printed to Output. Defaults to text.
	Format report.Format

	// Renderer, when set, receives the markdown report and its result is
	// printed instead of Format.
	Renderer ContentRenderer

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner with default Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Format: report.FormatText,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Run prompts for strings until "quit" or end of input, traces each one
// with t and prints its report. It returns how many strings were traced.
func (r *Runner) Run(ctx context.Context, t Tracer) (int, error) {
	in := bufio.NewReader(r.Input)
	count := 0

	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		r.prompt(PromptInput)
		line, ok, err := readLine(in)
		if err != nil {
			return count, err
		}
		if !ok || line == QuitWord {
			r.Logger.Debug("input finished", "traced", count)
			return count, nil
		}

		input, err := SanitizeInput(line)
		if err != nil {
			r.Logger.Warn("input rejected", "err", err)
			fmt.Fprintf(r.Output, "Invalid input: %v\n", err)
			continue
		}

		depth, ok, err := r.readDepth(in)
		if err != nil {
			return count, err
		}
		if !ok {
			return count, nil
		}

		record, err := t.Trace(ctx, input, depth)
		if err != nil {
			if record == nil {
				return count, err
			}
			// The trace itself finished, only persistence failed.
			r.Logger.Warn("trace not stored", "id", record.ID, "err", err)
		}

		count++
		if err := r.emit(count, record); err != nil {
			return count, err
		}
	}
}

func (r *Runner) readDepth(in *bufio.Reader) (int, bool, error) {
	for {
		r.prompt(PromptDepth)
		line, ok, err := readLine(in)
		if err != nil || !ok {
			return 0, false, err
		}
		depth, err := ParseDepth(line)
		if err == nil {
			return depth, true, nil
		}
		r.Logger.Debug("depth re-prompt", "answer", line)
		if !r.Headless {
			fmt.Fprintln(r.Output, "Max depth must be a positive whole number.")
		}
	}
}

func (r *Runner) emit(n int, record *domain.TraceRecord) error {
	if r.Sink != nil {
		if err := report.WriteText(r.Sink, n, &record.Report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		// Blocks are separated by an empty line.
		if _, err := io.WriteString(r.Sink, "\n"); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	if r.Renderer != nil {
		out, err := r.Renderer(report.Markdown(&record.Report))
		if err == nil {
			_, err = io.WriteString(r.Output, out)
			return err
		}
		r.Logger.Debug("render failed, falling back to text", "err", err)
		return report.WriteText(r.Output, n, &record.Report)
	}

	if err := report.Write(r.Output, r.Format, n, record); err != nil {
		return err
	}
	if r.Format == report.FormatText || r.Format == "" {
		_, err := io.WriteString(r.Output, "\n")
		return err
	}
	return nil
}

func (r *Runner) prompt(text string) {
	if !r.Headless {
		fmt.Fprint(r.Output, text)
	}
}

// readLine returns the next trimmed line. ok is false at end of input.
func readLine(in *bufio.Reader) (string, bool, error) {
	line, err := in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", false, nil
			}
			return strings.TrimSpace(line), true, nil
		}
		return "", false, err
	}
	return strings.TrimSpace(line), true, nil
}
