package cityroads

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	raw := `base_shapefile: ./data/gadm41_IND_2.shp
output_dir: ./out
cities:
  - Mumbai City
  - Pune
city_field: NAME_2
road_types: [residential, primary]
workers: 4
geojson: true
`
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "./data/gadm41_IND_2.shp", cfg.BaseShapefile)
	assert.Equal(t, "./out", cfg.OutputDir)
	assert.Equal(t, []string{"Mumbai City", "Pune"}, cfg.Cities)
	assert.Equal(t, []string{"residential", "primary"}, cfg.RoadTypes)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.GeoJSON)
}

func TestConfigMerge(t *testing.T) {
	base := &Config{OutputDir: "/env/out", Workers: 2}
	overlay := &Config{
		BaseShapefile: "./base.shp",
		Cities:        []string{"Mumbai City"},
		GeoJSON:       true,
	}

	base.Merge(overlay)

	// Fields the overlay sets win, the rest stay put.
	assert.Equal(t, "./base.shp", base.BaseShapefile)
	assert.Equal(t, []string{"Mumbai City"}, base.Cities)
	assert.True(t, base.GeoJSON)
	assert.Equal(t, "/env/out", base.OutputDir)
	assert.Equal(t, 2, base.Workers)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cities: {not: [valid"), 0644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
