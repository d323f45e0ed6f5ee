package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/tracetm/internal/config"
	"github.com/aretw0/tracetm/internal/presentation/tui"
	"github.com/aretw0/tracetm/pkg/observability"
	"github.com/aretw0/tracetm/pkg/report"
	"github.com/aretw0/tracetm/pkg/runner"
)

// PromptMachine asks for the machine file when none was given.
const PromptMachine = "Input the Turing Machine csv file name: "

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	MachineRef string
	Config     config.Config
	Headless   bool
	Pretty     bool
	Banner     bool
	// OutputFile overrides OutputPath(MachineRef).
	OutputFile string

	In  io.Reader
	Out io.Writer
}

// RunInteractive loads the machine and runs the interactive loop, appending
// every report to the output file.
func RunInteractive(opts RunOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	in := bufio.NewReader(opts.In)

	logger, closeLog, err := CreateLogger(opts.Config.Debug, opts.Config.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	ref := opts.MachineRef
	if ref == "" {
		if ref, err = promptMachine(in, opts.Out, opts.Config.Library != ""); err != nil {
			return handleExecutionError(err)
		}
	}

	hooks := observability.LogHooks(logger)
	m, closeStore, err := LoadMachine(sigCtx, ref, opts.Config, logger, hooks)
	if err != nil {
		return err
	}
	defer closeStore()

	outPath := opts.OutputFile
	if outPath == "" {
		outPath = OutputPath(ref)
	}
	sink, err := os.OpenFile(outPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer sink.Close()
	if err := report.WriteHeader(sink, m.Name); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if opts.Banner && !opts.Headless {
		tui.PrintBanner(opts.Out, m.Name)
	}

	format, err := report.ParseFormat(opts.Config.Format)
	if err != nil {
		return err
	}
	runnerOpts := []runner.Option{
		runner.WithInput(in),
		runner.WithOutput(opts.Out),
		runner.WithSink(sink),
		runner.WithHeadless(opts.Headless),
		runner.WithLogger(logger),
		runner.WithFormat(format),
	}
	if opts.Pretty {
		runnerOpts = append(runnerOpts, runner.WithRenderer(tui.NewRenderer()))
	}

	n, err := runner.NewRunner(runnerOpts...).Run(sigCtx, m)
	if !opts.Headless {
		printSystemMessage(opts.Out, "Traced %d strings, reports appended to %s", n, outPath)
	}
	return handleExecutionError(err)
}

// promptMachine asks until the answer names an existing file. Library ids
// are not checked here; the loader reports unknown ones.
func promptMachine(in *bufio.Reader, out io.Writer, library bool) (string, error) {
	for {
		fmt.Fprint(out, PromptMachine)
		line, err := in.ReadString('\n')
		ref := strings.TrimSpace(line)
		if ref != "" {
			if library {
				return ref, nil
			}
			if _, statErr := os.Stat(ref); statErr == nil {
				return ref, nil
			}
			fmt.Fprintf(out, "csv file %s does not exist\n", ref)
		}
		if err != nil {
			return "", err
		}
	}
}
