package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MemoryBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("HOTSPOT_SEED", "42")
	t.Setenv("CONTIGUITY", "rook")
	t.Setenv("GRAPH_CACHE_TTL", "10m")
	t.Setenv("DISEASE_INCUBATION", "FMD=14, LSD=28")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	require.NotNil(t, cfg.HotspotSeed)
	assert.Equal(t, uint64(42), *cfg.HotspotSeed)
	assert.Equal(t, "rook", cfg.Contiguity)
	assert.Equal(t, 10*time.Minute, cfg.GraphCacheTTL)
	assert.Equal(t, 999, cfg.HotspotPermutations)
	assert.Equal(t, map[string]int{"FMD": 14, "LSD": 28}, cfg.DiseaseIncubation)
}

func TestLoadConfig_HotspotSeed(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("HOTSPOT_SEED", "0")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	require.NotNil(t, cfg.HotspotSeed)
	assert.Equal(t, uint64(0), *cfg.HotspotSeed)

	t.Setenv("HOTSPOT_SEED", "")
	cfg, err = LoadConfig()

	require.NoError(t, err)
	assert.Nil(t, cfg.HotspotSeed)
}

func TestLoadConfig_PostgresRequiresURL(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestParseIncubation(t *testing.T) {
	m, err := ParseIncubation(DefaultDiseaseIncubation)
	require.NoError(t, err)
	assert.Equal(t, 7, m["Anthrax"])

	_, err = ParseIncubation("FMD")
	assert.Error(t, err)

	_, err = ParseIncubation("FMD=-1")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{StorageBackend: StorageMemory, HotspotPermutations: 0, HotspotThreshold: 0.05}
	assert.Error(t, cfg.Validate())

	cfg.HotspotPermutations = 99
	assert.NoError(t, cfg.Validate())

	cfg.StorageBackend = "sqlite"
	assert.Error(t, cfg.Validate())
}
