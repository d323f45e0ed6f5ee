package ports

import (
	"context"

	"github.com/aretw0/tracetm/pkg/domain"
)

// ReportStore defines the interface for keeping trace reports around after
// the trace that produced them, so they can be listed or re-rendered later.
type ReportStore interface {
	// Save persists the record under record.ID.
	Save(ctx context.Context, record *domain.TraceRecord) error

	// Load retrieves a record by ID.
	// Returns domain.ErrReportNotFound if the record does not exist.
	Load(ctx context.Context, id string) (*domain.TraceRecord, error)

	// Delete removes the record with the given ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored records.
	List(ctx context.Context) ([]string, error)
}
