package cityroads

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineProcessCity(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "gadm41_IND_2.shp")
	roadsPath := filepath.Join(dir, "mumbai_roads.shp")
	writeBoundaryFixture(t, basePath)
	writeRoadsFixture(t, roadsPath)

	outputDir := filepath.Join(dir, "output")
	pipeline := NewPipeline(basePath,
		WithOutputDir(outputDir),
		WithRoadsPath(roadsPath),
		WithImageSize(200, 160),
	)

	result, err := pipeline.ProcessCity("Mumbai City")
	require.NoError(t, err)

	assert.Equal(t, "Mumbai City", result.CityName)
	assert.Equal(t, 72.7, result.BBox.Left())
	assert.Equal(t, 18.8, result.BBox.Bottom())
	assert.Equal(t, 73.0, result.BBox.Right())
	assert.Equal(t, 19.3, result.BBox.Top())
	assert.Equal(t,
		"http://extract.bbbike.org/?sw_lng=72.7&sw_lat=18.8&ne_lng=73.0&ne_lat=19.3",
		result.ExtractURL,
	)

	// Spaces in the city name become underscores in output file names.
	for _, name := range []string{"Mumbai_City_boundaries.png", "Mumbai_City_roads.png", "Mumbai_City_roads.csv"} {
		_, err := os.Stat(filepath.Join(outputDir, name))
		assert.NoError(t, err, name)
	}

	f, err := os.Open(filepath.Join(outputDir, "Mumbai_City_roads.csv"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// Header plus the primary and residential roads; the footway is filtered out.
	require.Len(t, records, 3)
	assert.Equal(t, []string{"name", "highway", "start_lat", "start_long", "end_lat", "end_long"}, records[0])
	assert.Equal(t, []string{"Marine Drive", "primary", "72.8", "18.9", "72.9", "19.0"}, records[1])
	assert.Equal(t, []string{"Link Road", "residential", "73.1", "19.1", "73.2", "19.2"}, records[2])
}

func TestPipelineRegionNotFound(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "gadm41_IND_2.shp")
	writeBoundaryFixture(t, basePath)

	pipeline := NewPipeline(basePath, WithOutputDir(filepath.Join(dir, "output")))

	_, err := pipeline.ProcessCity("Atlantis")
	require.Error(t, err)
	regionErr := &RegionNotFoundError{}
	assert.True(t, errors.As(err, &regionErr))
}

func TestPipelineMissingRoadStore(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "gadm41_IND_2.shp")
	writeBoundaryFixture(t, basePath)

	outputDir := filepath.Join(dir, "output")
	pipeline := NewPipeline(basePath,
		WithOutputDir(outputDir),
		WithRoadsPath(filepath.Join(dir, "nowhere_roads.shp")),
	)

	// Road-store absence degrades gracefully: boundary outputs and the URL
	// are still produced.
	result, err := pipeline.ProcessCity("Mumbai City")
	require.NoError(t, err)
	assert.NotEmpty(t, result.ExtractURL)

	_, err = os.Stat(filepath.Join(outputDir, "Mumbai_City_boundaries.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outputDir, "Mumbai_City_roads.csv"))
	assert.True(t, os.IsNotExist(err))

	missingSeen := false
	for _, diagnostic := range result.Diagnostics {
		if diagnostic.Code == ROAD_STORE_MISSING {
			missingSeen = true
		}
	}
	assert.True(t, missingSeen)
}

func TestPipelineGeoJSONExport(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "gadm41_IND_2.shp")
	roadsPath := filepath.Join(dir, "mumbai_roads.shp")
	writeBoundaryFixture(t, basePath)
	writeRoadsFixture(t, roadsPath)

	outputDir := filepath.Join(dir, "output")
	pipeline := NewPipeline(basePath,
		WithOutputDir(outputDir),
		WithRoadsPath(roadsPath),
		WithGeoJSON(true),
	)

	result, err := pipeline.ProcessCity("Mumbai City")
	require.NoError(t, err)
	assert.Contains(t, result.Outputs, filepath.Join(outputDir, "Mumbai_City_boundaries.geojson"))
	assert.Contains(t, result.Outputs, filepath.Join(outputDir, "Mumbai_City_roads.geojson"))
}

func TestPipelineInferRoadsPath(t *testing.T) {
	pipeline := NewPipeline(filepath.Join("data", "gadm41_IND_2.shp"))
	assert.Equal(t,
		filepath.Join("data", "IND_IND.20_1+Mumbai City_roads.shp"),
		pipeline.inferRoadsPath("Mumbai City"),
	)
}

func TestProcessCitiesBatch(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "gadm41_IND_2.shp")
	roadsPath := filepath.Join(dir, "mumbai_roads.shp")
	writeBoundaryFixture(t, basePath)
	writeRoadsFixture(t, roadsPath)

	pipeline := NewPipeline(basePath,
		WithOutputDir(filepath.Join(dir, "output")),
		WithRoadsPath(roadsPath),
	)

	// One unknown city must not abort the others.
	batch := pipeline.ProcessCities([]string{"Mumbai City", "Atlantis", "Pune"}, 2)

	require.Len(t, batch.Results, 2)
	assert.Equal(t, "Mumbai City", batch.Results[0].CityName)
	assert.Equal(t, "Pune", batch.Results[1].CityName)

	require.Len(t, batch.Failed, 1)
	regionErr := &RegionNotFoundError{}
	assert.True(t, errors.As(batch.Failed["Atlantis"], &regionErr))
}
