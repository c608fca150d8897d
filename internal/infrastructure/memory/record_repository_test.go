package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/infrastructure/memory"
)

func TestSampleData(t *testing.T) {
	manifests, remesas, err := memory.SampleData()
	require.NoError(t, err)
	require.Len(t, manifests, 5)
	require.Len(t, remesas, 5)

	assert.Equal(t, "MF-001234", manifests[0].Code)
	assert.Equal(t, entity.StatusPending, manifests[0].Status)
	assert.Equal(t, "2024-01-15", manifests[0].Date.Format("2006-01-02"))
	assert.Equal(t, entity.StatusInProgress, manifests[4].Status)

	assert.True(t, decimal.NewFromInt(1500).Equal(remesas[0].WeightKg))
	assert.True(t, decimal.NewFromInt(2500000).Equal(remesas[0].DeclaredValue))
}

func TestRecordRepo_GetYDelete(t *testing.T) {
	manifests, _, err := memory.NewSampleRepositories()
	require.NoError(t, err)
	ctx := context.Background()

	m, err := manifests.GetByCode(ctx, "MF-001236")
	require.NoError(t, err)
	assert.Equal(t, "Logística Nacional", m.Client)

	_, err = manifests.GetByCode(ctx, "MF-999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, manifests.Delete(ctx, "MF-001236"))
	assert.ErrorIs(t, manifests.Delete(ctx, "MF-001236"), domain.ErrNotFound)

	all, err := manifests.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "MF-001237", all[2].Code, "el orden se conserva tras borrar")
}

func TestRecordRepo_ListDevuelveCopia(t *testing.T) {
	_, remesas, err := memory.NewSampleRepositories()
	require.NoError(t, err)
	ctx := context.Background()

	all, err := remesas.List(ctx)
	require.NoError(t, err)
	all[0] = nil

	again, err := remesas.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, again[0])
}
