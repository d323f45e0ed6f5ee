package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/tracetm/pkg/adapters/memory"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	ports.RunReportStoreContract(t, memory.NewStore())
}

func TestStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	record := &domain.TraceRecord{
		ID: "r1",
		Report: domain.Report{
			Verdict: domain.VerdictAccepted,
			Path:    []domain.Configuration{{State: "q0", Head: "a", Left: []string{}, Right: []string{"b"}}},
		},
	}
	require.NoError(t, store.Save(ctx, record))

	record.Report.Path[0].Right[0] = "MUTATED"

	loaded, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "b", loaded.Report.Path[0].Right[0])

	loaded.Report.Path[0].State = "MUTATED"
	again, err := store.Load(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "q0", again.Report.Path[0].State)
}

func TestLoader(t *testing.T) {
	l := memory.NewLoader()
	l.Add("b", &domain.MachineDefinition{Name: "B"})
	l.Add("a", &domain.MachineDefinition{Name: "A"})

	def, err := l.Load(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "A", def.Name)

	_, err = l.Load(context.Background(), "c")
	assert.ErrorIs(t, err, domain.ErrUnknownMachine)

	refs, err := l.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, refs)
}
