package game

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/decker502/forest/pkg/config"
)

// sequenceRandom 按固定序列返回随机数，用尽后循环
type sequenceRandom struct {
	values []float64
	next   int
}

func (s *sequenceRandom) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func newTestCatalog(t *testing.T) *PlantCatalog {
	t.Helper()
	catalog, err := NewPlantCatalog(config.DefaultCatalogConfig())
	require.NoError(t, err)
	return catalog
}

func mustSpecies(t *testing.T, catalog *PlantCatalog, name string) *PlantSpecies {
	t.Helper()
	sp, err := catalog.LookupName(name)
	require.NoError(t, err)
	return sp
}

func newTestSession(t *testing.T, size int, rng RandomSource) *Session {
	t.Helper()
	logger := zerolog.Nop()
	s, err := NewSession(newTestCatalog(t), SessionConfig{
		BoardSize: size,
		Random:    rng,
		Logger:    &logger,
	})
	require.NoError(t, err)
	return s
}
