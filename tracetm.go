package tracetm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/tracetm/internal/runtime"
	csvAdapter "github.com/aretw0/tracetm/pkg/adapters/csv"
	"github.com/aretw0/tracetm/pkg/adapters/document"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/ports"
	"github.com/google/uuid"
)

// Version is the release of the tracer.
const Version = "0.3.0"

// Machine is the high-level entry point of the library. It owns one machine
// definition and its transition table, and traces input strings against it.
// A Machine may be reused for any number of traces.
type Machine struct {
	def      *domain.MachineDefinition
	table    *runtime.Table
	explorer *runtime.Explorer

	loader ports.MachineLoader
	store  ports.ReportStore
	hooks  domain.TraceHooks
	logger *slog.Logger
	newID  func() string
	now    func() time.Time

	// Name is the machine name from its definition, or the file stem.
	Name string
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLoader injects a custom MachineLoader, bypassing the extension-based default.
func WithLoader(l ports.MachineLoader) Option {
	return func(m *Machine) {
		m.loader = l
	}
}

// WithStore keeps every trace record in the given store.
func WithStore(s ports.ReportStore) Option {
	return func(m *Machine) {
		m.store = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.TraceHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithIDGenerator overrides how trace record IDs are produced.
func WithIDGenerator(fn func() string) Option {
	return func(m *Machine) {
		m.newID = fn
	}
}

// LoaderFor picks a loader from the file extension of ref: .yaml, .yml and
// .json are documents, everything else is the CSV row format.
func LoaderFor(ref string, logger *slog.Logger) ports.MachineLoader {
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".yaml", ".yml", ".json":
		return document.New(logger)
	default:
		return csvAdapter.New(logger)
	}
}

// New loads the machine referenced by ref and prepares it for tracing.
// Without WithLoader, ref is a file path and the loader is chosen by LoaderFor.
func New(ctx context.Context, ref string, opts ...Option) (*Machine, error) {
	m := newMachine(opts)

	if m.loader == nil {
		if ref == "" {
			return nil, fmt.Errorf("machine path is required when no custom loader is provided")
		}
		m.loader = LoaderFor(ref, m.logger)
	}

	def, err := m.loader.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load machine: %w", err)
	}

	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
	}
	m.init(def)
	return m, nil
}

// NewFromDefinition wraps an already built definition.
func NewFromDefinition(def *domain.MachineDefinition, opts ...Option) *Machine {
	m := newMachine(opts)
	m.init(def)
	return m
}

func newMachine(opts []Option) *Machine {
	m := &Machine{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	// Ensure logger is initialized (so we don't pass nil to runtime)
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m
}

func (m *Machine) init(def *domain.MachineDefinition) {
	m.def = def
	m.Name = def.Name
	m.logger = m.logger.With("machine", def.Name)
	m.table = runtime.NewTable(def)
	m.explorer = runtime.NewExplorer(m.table,
		runtime.WithLogger(m.logger),
		runtime.WithHooks(m.hooks),
		runtime.WithMachineName(def.Name),
	)

	m.logger.Debug("machine ready",
		"states", m.table.NumStates(),
		"symbols", m.table.NumSymbols(),
		"rules", len(def.Rules),
		"skipped_rows", len(def.SkippedRows),
	)
}

// Explore runs the breadth-first exploration of input and returns its
// report without recording it anywhere.
func (m *Machine) Explore(ctx context.Context, input string, maxDepth int) (*domain.Report, error) {
	return m.explorer.Explore(ctx, input, maxDepth)
}

// Trace explores input up to maxDepth expansions. When a store is
// configured the record is saved before it is returned.
func (m *Machine) Trace(ctx context.Context, input string, maxDepth int) (*domain.TraceRecord, error) {
	report, err := m.Explore(ctx, input, maxDepth)
	if err != nil {
		return nil, err
	}

	record := &domain.TraceRecord{
		ID:        m.newID(),
		CreatedAt: m.now().UTC(),
		Report:    *report,
	}

	if m.store != nil {
		if err := m.store.Save(ctx, record); err != nil {
			return record, fmt.Errorf("failed to store report: %w", err)
		}
	}
	return record, nil
}

// Definition returns the loaded machine definition. Callers must not modify it.
func (m *Machine) Definition() *domain.MachineDefinition {
	return m.def
}

// Rules returns the rules applicable to (state, symbol) in declaration order.
func (m *Machine) Rules(state, symbol string) []domain.TransitionRule {
	return m.table.Lookup(state, symbol)
}

// Store returns the configured report store, or nil.
func (m *Machine) Store() ports.ReportStore {
	return m.store
}

// Logger returns the machine-scoped logger.
func (m *Machine) Logger() *slog.Logger {
	return m.logger
}
