package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractRecord(id string) *domain.TraceRecord {
	return &domain.TraceRecord{
		ID:        id,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Report: domain.Report{
			Machine:     "contract",
			Input:       "ab",
			MaxDepth:    10,
			Verdict:     domain.VerdictAccepted,
			AcceptDepth: 1,
			Depth:       1,
			Transitions: 1,
			Visited:     2,
			Path: []domain.Configuration{
				{State: "q0", Left: []string{}, Head: "a", Right: []string{"b"}},
				{State: "qa", Left: []string{"a"}, Head: "b", Right: []string{}},
			},
			Nondeterminism: 1,
		},
	}
}

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	id := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		record := contractRecord(id)

		err := store.Save(ctx, record)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, record.ID, loaded.ID)
		assert.Equal(t, domain.VerdictAccepted, loaded.Report.Verdict)
		require.Len(t, loaded.Report.Path, 2)
		assert.Equal(t, "a,qa,b,", loaded.Report.Path[1].String())
		assert.True(t, record.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, contractRecord(id))
		require.NoError(t, err)

		err = store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.Save(ctx, contractRecord(id1))
		_ = store.Save(ctx, contractRecord(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
