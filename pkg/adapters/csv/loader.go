// Package csv loads machine descriptions in the row-oriented CSV format:
//
//	row 0    machine name
//	row 1    states
//	row 2    input alphabet
//	row 3    tape alphabet
//	row 4    start state
//	row 5    accept state
//	row 6    reject state
//	row 7+   from,read,to,write,L|R
//
// Transition rows with fewer than five fields are skipped, not rejected.
package csv

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/tracetm/internal/dto"
	"github.com/aretw0/tracetm/pkg/domain"
)

const headerRows = 7

// Loader implements ports.MachineLoader for CSV files on disk.
type Loader struct {
	logger *slog.Logger
}

// New creates a CSV loader. A nil logger discards diagnostics.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{logger: logger}
}

// Load reads and parses the CSV file at path.
func (l *Loader) Load(ctx context.Context, path string) (*domain.MachineDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownMachine, path)
		}
		return nil, fmt.Errorf("failed to open machine file: %w", err)
	}
	defer f.Close()

	def, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(def.SkippedRows) > 0 {
		l.logger.Debug("skipped transition rows", "path", path, "rows", def.SkippedRows)
	}
	return def, nil
}

// Parse reads a machine description from r.
func Parse(r io.Reader) (*domain.MachineDefinition, error) {
	reader := stdcsv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDefinition, err)
	}
	if len(rows) < headerRows {
		return nil, fmt.Errorf("%w: expected %d header rows, got %d", domain.ErrMalformedDefinition, headerRows, len(rows))
	}

	def := &domain.MachineDefinition{
		Name:          strings.TrimSpace(rows[0][0]),
		States:        dto.Unique(rows[1]),
		InputAlphabet: dto.Unique(rows[2]),
		TapeAlphabet:  dto.Unique(rows[3]),
		Start:         strings.TrimSpace(rows[4][0]),
		Accept:        strings.TrimSpace(rows[5][0]),
		Reject:        strings.TrimSpace(rows[6][0]),
	}

	for i, row := range rows[headerRows:] {
		rule, ok := dto.ParseRuleFields(row)
		if !ok {
			def.SkippedRows = append(def.SkippedRows, i+headerRows)
			continue
		}
		def.Rules = append(def.Rules, rule)
	}

	return def, nil
}
