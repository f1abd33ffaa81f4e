package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/carpicker/internal/common"
	"github.com/Veraticus/carpicker/internal/model"
)

func TestSnapshot_LoadBeforeReplace(t *testing.T) {
	var s Snapshot

	_, err := s.Load()
	assert.ErrorIs(t, err, common.ErrCatalogEmpty)

	_, err = s.Query(New(), model.Query{})
	assert.ErrorIs(t, err, common.ErrCatalogEmpty)
}

func TestSnapshot_Replace(t *testing.T) {
	vehicles := testCatalog()
	s := NewSnapshot(vehicles, "first.csv")

	first, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "first.csv", first.Source)
	assert.Len(t, first.Vehicles, 6)

	// The snapshot owns its copy.
	vehicles[0].Model = "mutated"
	assert.Equal(t, "Camry", first.Vehicles[0].Model)

	s.Replace([]model.Vehicle{corolla()}, "second.csv")

	second, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "second.csv", second.Source)
	assert.Len(t, second.Vehicles, 1)

	// Holders of the previous catalog are unaffected by the swap.
	assert.Len(t, first.Vehicles, 6)

	result, err := s.Query(New(), model.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalSurvivors)
}
