package cityroads

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultCityField Administrative-level-2 name field used to match cities
const DefaultCityField = "NAME_2"

// Pipeline extracts boundary and road data for named cities out of geospatial
// vector sources and writes maps, a road table and a BBBike extract URL per
// city.
type Pipeline struct {
	basePath     string
	outputDir    string
	cityField    string
	roadTypes    []string
	roadsPath    string
	osmRoadsPath string
	writeGeoJSON bool
	imageWidth   int
	imageHeight  int
	logger       *zap.Logger
}

// NewPipeline builds a pipeline over the base (boundary) shapefile
func NewPipeline(basePath string, options ...func(*Pipeline)) *Pipeline {
	pipeline := &Pipeline{
		basePath:    basePath,
		outputDir:   "./output",
		cityField:   DefaultCityField,
		roadTypes:   DefaultRoadTypes,
		imageWidth:  1000,
		imageHeight: 800,
		logger:      zap.NewNop(),
	}
	for _, option := range options {
		option(pipeline)
	}
	return pipeline
}

// WithOutputDir sets the directory output files are written to
func WithOutputDir(outputDir string) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.outputDir = outputDir
	}
}

// WithCityField sets the boundary-store field matched against city names
func WithCityField(cityField string) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.cityField = cityField
	}
}

// WithRoadTypes sets the allowed road type values
func WithRoadTypes(roadTypes []string) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.roadTypes = roadTypes
	}
}

// WithRoadsPath sets an explicit roads shapefile, disabling path inference
func WithRoadsPath(roadsPath string) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.roadsPath = roadsPath
	}
}

// WithOSMRoadsPath makes the pipeline read roads from a *.osm.pbf extract
// instead of a roads shapefile
func WithOSMRoadsPath(osmRoadsPath string) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.osmRoadsPath = osmRoadsPath
	}
}

// WithGeoJSON enables GeoJSON sidecar exports next to the rendered maps
func WithGeoJSON(enable bool) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.writeGeoJSON = enable
	}
}

// WithImageSize sets the rendered map dimensions in pixels
func WithImageSize(width int, height int) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.imageWidth = width
		pipeline.imageHeight = height
	}
}

// WithLogger sets the structured logger; the default discards everything
func WithLogger(logger *zap.Logger) func(*Pipeline) {
	return func(pipeline *Pipeline) {
		pipeline.logger = logger
	}
}

// CityResult Outcome of processing one city
type CityResult struct {
	CityName    string
	BBox        orb.Bound
	ExtractURL  string
	Outputs     []string
	Diagnostics []Diagnostic
}

// ProcessCity runs the whole pipeline for one city: boundary extraction,
// extract-URL derivation, map rendering and, when a road source can be
// located, road classification plus CSV export. A missing road source is not
// an error; road outputs are skipped and the boundary results still stand.
//
// Each call loads its own store instances, so distinct cities may be
// processed concurrently.
func (p *Pipeline) ProcessCity(cityName string) (*CityResult, error) {
	p.logger.Info("processing city", zap.String("city", cityName))

	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "Can't create output directory '%s'", p.outputDir)
	}

	store, err := LoadShapefile(p.basePath)
	if err != nil {
		return nil, errors.Wrap(err, "Can't load boundary store")
	}
	cityShapes, bbox, err := ExtractBoundary(store, p.cityField, cityName)
	if err != nil {
		return nil, errors.Wrap(err, "Can't extract city boundaries")
	}

	result := &CityResult{
		CityName:   cityName,
		BBox:       bbox,
		ExtractURL: ExtractURL(bbox),
	}
	p.logger.Info("bbbike extract URL", zap.String("city", cityName), zap.String("url", result.ExtractURL))

	boundariesFile := p.outputFile(cityName, "_boundaries.png")
	if err := RenderMap(boundariesFile, cityShapes, p.imageWidth, p.imageHeight); err != nil {
		return nil, errors.Wrap(err, "Can't render city boundaries")
	}
	result.Outputs = append(result.Outputs, boundariesFile)

	if p.writeGeoJSON {
		boundariesGeoJSON := p.outputFile(cityName, "_boundaries.geojson")
		if err := WriteGeoJSON(boundariesGeoJSON, cityShapes); err != nil {
			return nil, errors.Wrap(err, "Can't export city boundaries")
		}
		result.Outputs = append(result.Outputs, boundariesGeoJSON)
	}

	roadStore, diagnostics, err := p.loadRoadStore(cityName)
	result.Diagnostics = append(result.Diagnostics, diagnostics...)
	if err != nil {
		return nil, errors.Wrap(err, "Can't load road store")
	}
	if roadStore == nil {
		p.logger.Warn("road source not found, skipping road outputs", zap.String("city", cityName))
		return result, nil
	}

	roadShapes, roadTable, classifyDiagnostics := ClassifyRoads(roadStore, p.roadTypes)
	result.Diagnostics = append(result.Diagnostics, classifyDiagnostics...)

	roadsFile := p.outputFile(cityName, "_roads.png")
	if err := RenderMap(roadsFile, roadShapes, p.imageWidth, p.imageHeight); err != nil {
		return nil, errors.Wrap(err, "Can't render city roads")
	}
	result.Outputs = append(result.Outputs, roadsFile)

	if p.writeGeoJSON {
		roadsGeoJSON := p.outputFile(cityName, "_roads.geojson")
		if err := WriteGeoJSON(roadsGeoJSON, roadShapes); err != nil {
			return nil, errors.Wrap(err, "Can't export city roads")
		}
		result.Outputs = append(result.Outputs, roadsGeoJSON)
	}

	csvFile := p.outputFile(cityName, "_roads.csv")
	if err := WriteRoadsCSV(csvFile, roadTable); err != nil {
		return nil, errors.Wrap(err, "Can't export road table")
	}
	result.Outputs = append(result.Outputs, csvFile)

	p.logger.Info("completed city",
		zap.String("city", cityName),
		zap.Int("road_rows", len(roadTable.Rows)),
		zap.Strings("outputs", result.Outputs),
	)
	return result, nil
}

// loadRoadStore locates and opens the road source for a city. A nil store
// with no error means the source is absent and road outputs should be
// skipped.
func (p *Pipeline) loadRoadStore(cityName string) (*GeometryStore, []Diagnostic, error) {
	if p.osmRoadsPath != "" {
		store, err := LoadOSMRoads(p.osmRoadsPath)
		if err != nil {
			if errors.Is(err, ErrSourceNotFound) {
				return nil, p.missingRoadStore(p.osmRoadsPath), nil
			}
			return nil, nil, err
		}
		return store, nil, nil
	}

	roadsPath := p.roadsPath
	if roadsPath == "" {
		roadsPath = p.inferRoadsPath(cityName)
		p.logger.Info("inferred roads shapefile path", zap.String("city", cityName), zap.String("path", roadsPath))
	}
	store, err := LoadShapefile(roadsPath)
	if err != nil {
		if errors.Is(err, ErrSourceNotFound) {
			return nil, p.missingRoadStore(roadsPath), nil
		}
		return nil, nil, err
	}
	return store, nil, nil
}

func (p *Pipeline) missingRoadStore(path string) []Diagnostic {
	return []Diagnostic{{
		Code:    ROAD_STORE_MISSING,
		Message: fmt.Sprintf("road source not found at '%s'", path),
	}}
}

// inferRoadsPath derives the roads shapefile path from the base shapefile
// name and the city, following the GADM-style naming convention the source
// data ships with: <dir>/<cc>_<cc>.20_1+<city>_roads.shp where <cc> is the
// second underscore-separated token of the base file name.
func (p *Pipeline) inferRoadsPath(cityName string) string {
	baseDir := filepath.Dir(p.basePath)
	parts := strings.Split(filepath.Base(p.basePath), "_")
	countryCode := ""
	if len(parts) > 1 {
		countryCode = parts[1]
	}
	return filepath.Join(baseDir, fmt.Sprintf("%s_%s.20_1+%s_roads.shp", countryCode, countryCode, cityName))
}

// outputFile joins the output directory with a per-city file name, replacing
// spaces in the city name with underscores
func (p *Pipeline) outputFile(cityName string, suffix string) string {
	return filepath.Join(p.outputDir, strings.ReplaceAll(cityName, " ", "_")+suffix)
}
