package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/forest/pkg/config"
	"github.com/decker502/forest/pkg/types"
)

func TestPickDrop(t *testing.T) {
	drops := []Drop{{Weight: 5}, {Weight: 1}}

	tests := []struct {
		name string
		draw float64
		want int
	}{
		{"恰好为 0 不掉落", 0, -1},
		{"落在第一项内", 2.5, 0},
		{"第一项右端点闭合", 5, 0},
		{"落在第二项内", 5.5, 1},
		{"总权重右端点闭合", 6, 1},
		{"超出总权重", 6.5, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pickDrop(drops, tt.draw))
		})
	}
}

func TestDropResolver_ZeroDrawProducesNothing(t *testing.T) {
	catalog := newTestCatalog(t)
	r := NewDropResolver(catalog, &sequenceRandom{values: []float64{0}})

	plants, err := r.Resolve(mustSpecies(t, catalog, "Grass"))
	require.NoError(t, err)
	assert.Empty(t, plants)
}

func TestDropResolver_ProducesFreshPlantsInOrder(t *testing.T) {
	catalog := newTestCatalog(t)
	// Tall Grass 掉落表 [5, 1]，0.9*6 = 5.4 落入第二项
	r := NewDropResolver(catalog, &sequenceRandom{values: []float64{0.9}})

	plants, err := r.Resolve(mustSpecies(t, catalog, "Tall Grass"))
	require.NoError(t, err)
	require.Len(t, plants, 2)
	assert.Equal(t, "Tall Grass", plants[0].Species.Name)
	assert.Equal(t, "Shrub", plants[1].Species.Name)
	for _, p := range plants {
		assert.Zero(t, p.Age)
		assert.Zero(t, p.Size)
	}
}

func TestDropResolver_NoDropTable(t *testing.T) {
	catalog, err := NewPlantCatalog(&config.CatalogConfig{Species: []config.SpeciesConfig{
		{Name: "Stone", MaxAge: 1, Glyph: "o"},
	}})
	require.NoError(t, err)
	rng := &sequenceRandom{values: []float64{0.5}}
	r := NewDropResolver(catalog, rng)

	stone := mustSpecies(t, catalog, "Stone")
	dust := &PlantSpecies{Name: "Dust", MaxAge: 1, Drops: []Drop{{Weight: 0, Produces: []types.SpeciesID{stone.ID}}}}

	for _, sp := range []*PlantSpecies{stone, dust} {
		plants, err := r.Resolve(sp)
		require.NoError(t, err)
		assert.Empty(t, plants, sp.Name)
	}
	assert.Zero(t, rng.next, "没有可选项时不消耗随机数")
}

func TestDropResolver_NaNWeight(t *testing.T) {
	sp := &PlantSpecies{Name: "Odd", MaxAge: 1, Drops: []Drop{{Weight: math.NaN()}}}
	r := NewDropResolver(newTestCatalog(t), &sequenceRandom{values: []float64{0.5}})

	plants, err := r.Resolve(sp)
	require.NoError(t, err)
	assert.Empty(t, plants)
}

func TestDropResolver_UnknownProduce(t *testing.T) {
	sp := &PlantSpecies{Name: "Broken", MaxAge: 1, Drops: []Drop{{Weight: 1, Produces: []types.SpeciesID{0, 99}}}}
	r := NewDropResolver(newTestCatalog(t), &sequenceRandom{values: []float64{0.5}})

	_, err := r.Resolve(sp)
	assert.ErrorIs(t, err, ErrUnknownSpecies)
}

func TestDropResolver_WeightedDistribution(t *testing.T) {
	catalog := newTestCatalog(t)
	tall := mustSpecies(t, catalog, "Tall Grass")
	r := NewDropResolver(catalog, NewSeededRandom(42))

	const trials = 60000
	first := 0
	for i := 0; i < trials; i++ {
		plants, err := r.Resolve(tall)
		require.NoError(t, err)
		require.Len(t, plants, 2)
		if plants[1].Species.Name == "Tall Grass" {
			first++
		}
	}

	assert.InDelta(t, 5.0/6.0, float64(first)/trials, 0.02)
}
