package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citypulse/citypulse/internal/catalog"
)

func TestInMemoryRepository_DefaultSeed(t *testing.T) {
	repo := catalog.NewInMemoryRepository()

	areas, err := repo.ListAreas(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, areas)

	// Stable order, every entry usable for feed lookups.
	for i, a := range areas {
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.Name)
		assert.NotZero(t, a.Lat)
		assert.NotZero(t, a.Lon)
		assert.NotEmpty(t, a.RoadTypes)
		if i > 0 {
			assert.Less(t, areas[i-1].ID, a.ID)
		}
	}
}

func TestInMemoryRepository_GetArea(t *testing.T) {
	repo := catalog.NewInMemoryRepository()

	area, err := repo.GetArea(context.Background(), "downtown")
	require.NoError(t, err)
	assert.Equal(t, "Downtown Core", area.Name)
	assert.True(t, area.HasRoadType(catalog.RoadTypeArterial))
	assert.False(t, area.HasRoadType(catalog.RoadTypeHighway))

	_, err = repo.GetArea(context.Background(), "atlantis")
	assert.ErrorIs(t, err, catalog.ErrAreaNotFound)
}

func TestInMemoryRepository_CustomAreas(t *testing.T) {
	repo := catalog.NewInMemoryRepositoryWithAreas([]*catalog.Area{
		{ID: "a1", Name: "Area One", Lat: 1, Lon: 2, RoadTypes: []catalog.RoadType{catalog.RoadTypeLocal}},
	})

	areas, err := repo.ListAreas(context.Background())
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, "a1", areas[0].ID)
}

func TestRoadType_Valid(t *testing.T) {
	for _, rt := range catalog.AllRoadTypes {
		assert.True(t, rt.Valid())
	}
	assert.False(t, catalog.RoadType("canal").Valid())
}
