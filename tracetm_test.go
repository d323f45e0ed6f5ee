package tracetm_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/internal/testutils"
	"github.com/aretw0/tracetm/pkg/adapters/memory"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aPlusCSV = `a-plus
q0,q1,qa,qr
a
a,_
q0
qa
qr
q0,a,q1,a,R
q1,a,q1,a,R
q1,_,qa,_,R
`


func endsWithA(t *testing.T) *domain.MachineDefinition {
	t.Helper()
	b := dsl.New("ends-with-a").Input("a", "b").Start("q0").Accept("qa").Reject("qr")
	b.State("q0").
		Right("a", "q0", "a").
		Right("a", "q1", "a").
		Right("b", "q0", "b").
		State("q1").
		Right("_", "qa", "_")
	def, err := b.Build()
	require.NoError(t, err)
	return def
}

func TestNew_CSV(t *testing.T) {
	path := testutils.WriteFile(t, t.TempDir(), "a-plus.csv", aPlusCSV)

	m, err := tracetm.New(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "a-plus", m.Name)
	assert.Equal(t, "q0", m.Definition().Start)
	assert.Len(t, m.Rules("q1", "a"), 1)
	assert.Empty(t, m.Rules("qa", "a"))
	assert.Nil(t, m.Store())
	assert.NotNil(t, m.Logger())

	record, err := m.Trace(context.Background(), "aa", 10)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Equal(t, domain.VerdictAccepted, record.Report.Verdict)
	assert.Equal(t, 3, record.Report.AcceptDepth)
}

func TestNew_Errors(t *testing.T) {
	t.Run("Empty Reference", func(t *testing.T) {
		_, err := tracetm.New(context.Background(), "")
		assert.Error(t, err)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := tracetm.New(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("Unknown Machine In Loader", func(t *testing.T) {
		_, err := tracetm.New(context.Background(), "nope", tracetm.WithLoader(memory.NewLoader()))
		assert.ErrorIs(t, err, domain.ErrUnknownMachine)
	})
}

func TestNew_NameFallsBackToFileStem(t *testing.T) {
	loader := memory.NewLoader()
	def := endsWithA(t)
	def.Name = ""
	loader.Add("machines/guess.yaml", def)

	m, err := tracetm.New(context.Background(), "machines/guess.yaml", tracetm.WithLoader(loader))
	require.NoError(t, err)
	assert.Equal(t, "guess", m.Name)
}

func TestTrace_StoresRecords(t *testing.T) {
	store := memory.NewStore()
	m := tracetm.NewFromDefinition(endsWithA(t),
		tracetm.WithStore(store),
		tracetm.WithIDGenerator(func() string { return "fixed" }),
	)

	record, err := m.Trace(context.Background(), "ba", 20)
	require.NoError(t, err)
	assert.Equal(t, "fixed", record.ID)

	loaded, err := store.Load(context.Background(), "fixed")
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictAccepted, loaded.Report.Verdict)
	assert.Equal(t, "ends-with-a", loaded.Report.Machine)
}

func TestExplore_DoesNotStore(t *testing.T) {
	store := memory.NewStore()
	m := tracetm.NewFromDefinition(endsWithA(t), tracetm.WithStore(store))

	report, err := m.Explore(context.Background(), "ab", 20)
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictRejected, report.Verdict)

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTrace_InvalidDepth(t *testing.T) {
	m := tracetm.NewFromDefinition(endsWithA(t))

	_, err := m.Trace(context.Background(), "a", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidDepth)
}

func TestTrace_Hooks(t *testing.T) {
	var terminal []domain.Verdict
	m := tracetm.NewFromDefinition(endsWithA(t), tracetm.WithLifecycleHooks(domain.TraceHooks{
		OnTerminal: func(ctx context.Context, r *domain.Report) {
			terminal = append(terminal, r.Verdict)
		},
	}))

	_, err := m.Trace(context.Background(), "a", 20)
	require.NoError(t, err)
	_, err = m.Trace(context.Background(), "b", 20)
	require.NoError(t, err)

	assert.Equal(t, []domain.Verdict{domain.VerdictAccepted, domain.VerdictRejected}, terminal)
}

type brokenStore struct{ *memory.Store }

func (brokenStore) Save(context.Context, *domain.TraceRecord) error {
	return errors.New("disk full")
}

func TestTrace_StoreFailureReturnsRecord(t *testing.T) {
	m := tracetm.NewFromDefinition(endsWithA(t), tracetm.WithStore(brokenStore{memory.NewStore()}))

	record, err := m.Trace(context.Background(), "a", 20)
	require.Error(t, err)
	require.NotNil(t, record)
	assert.Equal(t, domain.VerdictAccepted, record.Report.Verdict)
}
