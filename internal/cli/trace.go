package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/tracetm/internal/config"
	"github.com/aretw0/tracetm/internal/presentation/graph"
	"github.com/aretw0/tracetm/internal/presentation/tui"
	"github.com/aretw0/tracetm/internal/validator"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/observability"
	"github.com/aretw0/tracetm/pkg/report"
	"github.com/aretw0/tracetm/pkg/runner"
)

// TraceOptions configures a one-shot trace.
type TraceOptions struct {
	MachineRef string
	Input      string
	MaxDepth   int
	Config     config.Config
	Pretty     bool
	Out        io.Writer
}

// RunTrace traces one string and prints its report in the configured format.
func RunTrace(ctx context.Context, opts TraceOptions) (*domain.TraceRecord, error) {
	logger, closeLog, err := CreateLogger(opts.Config.Debug, opts.Config.LogFile)
	if err != nil {
		return nil, err
	}
	defer closeLog()

	format, err := report.ParseFormat(opts.Config.Format)
	if err != nil {
		return nil, err
	}
	input, err := runner.SanitizeInput(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	m, closeStore, err := LoadMachine(ctx, opts.MachineRef, opts.Config, logger, observability.LogHooks(logger))
	if err != nil {
		return nil, err
	}
	defer closeStore()

	record, err := m.Trace(ctx, input, opts.MaxDepth)
	if err != nil {
		if record == nil {
			return nil, err
		}
		logger.Warn("trace not stored", "id", record.ID, "err", err)
	}

	if opts.Pretty && format != report.FormatJSON {
		out, rerr := tui.NewRenderer()(report.Markdown(&record.Report))
		if rerr == nil {
			_, err = io.WriteString(opts.Out, out)
			return record, err
		}
	}
	return record, report.Write(opts.Out, format, 1, record)
}

// RunValidate prints every finding for the machine and returns the folded
// error findings.
func RunValidate(ctx context.Context, ref string, cfg config.Config, out io.Writer) error {
	logger, closeLog, err := CreateLogger(cfg.Debug, cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	m, closeStore, err := LoadMachine(ctx, ref, cfg, logger, domain.TraceHooks{})
	if err != nil {
		return err
	}
	defer closeStore()

	res := validator.Validate(m.Definition())
	for _, f := range res.Findings {
		fmt.Fprintf(out, "%s: %s\n", f.Severity, f.Message)
	}
	if err := res.Err(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Machine '%s' is valid (%d rules).\n", m.Name, len(m.Definition().Rules))
	return nil
}

// GraphOptions configures the graph export.
type GraphOptions struct {
	MachineRef string
	Config     config.Config
	// Input, when set, highlights the accepting path of that string.
	Input    *string
	MaxDepth int
	Out      io.Writer
}

// RunGraph writes the Mermaid flowchart of the machine.
func RunGraph(ctx context.Context, opts GraphOptions) error {
	logger, closeLog, err := CreateLogger(opts.Config.Debug, opts.Config.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	// Overlays are never stored.
	cfg := opts.Config
	cfg.Store.Kind = ""
	m, closeStore, err := LoadMachine(ctx, opts.MachineRef, cfg, logger, domain.TraceHooks{})
	if err != nil {
		return err
	}
	defer closeStore()

	var overlay *graph.GraphOverlay
	if opts.Input != nil {
		input, err := runner.SanitizeInput(*opts.Input)
		if err != nil {
			return fmt.Errorf("invalid input: %w", err)
		}
		rep, err := m.Explore(ctx, input, opts.MaxDepth)
		if err != nil {
			return err
		}
		if overlay = graph.OverlayFromReport(rep); overlay == nil {
			logger.Info("input not accepted, no path to highlight", "verdict", rep.Verdict)
		}
	}

	_, err = io.WriteString(opts.Out, graph.GenerateMermaid(m.Definition(), overlay))
	return err
}

// ListMachines prints the ids of a machine library.
func ListMachines(ctx context.Context, cfg config.Config, out io.Writer) error {
	if cfg.Library == "" {
		return fmt.Errorf("no machine library configured (use --library)")
	}
	lib, err := openLibrary(cfg.Library)
	if err != nil {
		return err
	}
	ids, err := lib.List(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, strings.Join(ids, "\n")+"\n")
	return err
}
