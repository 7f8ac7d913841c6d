package main

import (
	"fmt"
	"os"

	"cityroads"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagBaseShapefile  string
	flagOutputDir      string
	flagCities         []string
	flagCityField      string
	flagRoadTypes      []string
	flagRoadsShapefile string
	flagRoadsOSM       string
	flagWorkers        int
	flagGeoJSON        bool
	flagConfig         string
)

var rootCmd = &cobra.Command{
	Use:   "cityroads",
	Short: "Extract city boundaries and road networks from geospatial sources",
	Long: `Extracts administrative boundaries and road networks for named cities
out of shapefile (or OSM pbf) sources, producing per city: a rendered boundary
map, a rendered roads map, a CSV of selected road segments and a BBBike
extract URL for the city's bounding box.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&flagBaseShapefile, "base-shapefile", "", "Path to base shapefile with city boundaries")
	rootCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Directory to save output maps and data (default ./output)")
	rootCmd.Flags().StringSliceVar(&flagCities, "cities", nil, "City names to process (separated by commas)")
	rootCmd.Flags().StringVar(&flagCityField, "city-field", cityroads.DefaultCityField, "Field name in shapefile for city names")
	rootCmd.Flags().StringSliceVar(&flagRoadTypes, "road-types", cityroads.DefaultRoadTypes, "Road types to include (separated by commas)")
	rootCmd.Flags().StringVar(&flagRoadsShapefile, "roads-shapefile", "", "Optional path to roads shapefile (inferred from the base path when empty)")
	rootCmd.Flags().StringVar(&flagRoadsOSM, "roads-osm", "", "Optional path to a *.osm.pbf roads source (takes precedence over shapefile roads)")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", 1, "How many cities to process concurrently")
	rootCmd.Flags().BoolVar(&flagGeoJSON, "geojson", false, "Also export boundary/road geometries as GeoJSON")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "YAML file describing the batch (flags override its values)")
}

// resolveConfig merges, in increasing precedence: environment defaults, the
// optional YAML config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*cityroads.Config, error) {
	cfg := &cityroads.Config{
		OutputDir: os.Getenv("CITYROADS_OUTPUT_DIR"),
	}
	if flagConfig != "" {
		fileCfg, err := cityroads.LoadConfig(flagConfig)
		if err != nil {
			return nil, err
		}
		// Overlay only the fields the file sets so env defaults survive.
		cfg.Merge(fileCfg)
	}

	flags := cmd.Flags()
	if flags.Changed("base-shapefile") {
		cfg.BaseShapefile = flagBaseShapefile
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = flagOutputDir
	}
	if flags.Changed("cities") {
		cfg.Cities = flagCities
	}
	if flags.Changed("city-field") {
		cfg.CityField = flagCityField
	}
	if flags.Changed("road-types") {
		cfg.RoadTypes = flagRoadTypes
	}
	if flags.Changed("roads-shapefile") {
		cfg.RoadsShapefile = flagRoadsShapefile
	}
	if flags.Changed("roads-osm") {
		cfg.RoadsOSM = flagRoadsOSM
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if flags.Changed("geojson") {
		cfg.GeoJSON = flagGeoJSON
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.CityField == "" {
		cfg.CityField = cityroads.DefaultCityField
	}
	if len(cfg.RoadTypes) == 0 {
		cfg.RoadTypes = cityroads.DefaultRoadTypes
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	if cfg.BaseShapefile == "" {
		return nil, fmt.Errorf("base shapefile is required (--base-shapefile or config file)")
	}
	if len(cfg.Cities) == 0 {
		return nil, fmt.Errorf("at least one city is required (--cities or config file)")
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	// Optional .env next to the binary; absence is fine.
	_ = godotenv.Load()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	options := []func(*cityroads.Pipeline){
		cityroads.WithOutputDir(cfg.OutputDir),
		cityroads.WithCityField(cfg.CityField),
		cityroads.WithRoadTypes(cfg.RoadTypes),
		cityroads.WithGeoJSON(cfg.GeoJSON),
		cityroads.WithLogger(logger),
	}
	if cfg.RoadsShapefile != "" {
		options = append(options, cityroads.WithRoadsPath(cfg.RoadsShapefile))
	}
	if cfg.RoadsOSM != "" {
		options = append(options, cityroads.WithOSMRoadsPath(cfg.RoadsOSM))
	}

	pipeline := cityroads.NewPipeline(cfg.BaseShapefile, options...)
	batch := pipeline.ProcessCities(cfg.Cities, cfg.Workers)

	for _, result := range batch.Results {
		for _, diagnostic := range result.Diagnostics {
			logger.Warn("diagnostic", zap.String("city", result.CityName), zap.String("event", diagnostic.String()))
		}
		logger.Info("city done",
			zap.String("city", result.CityName),
			zap.String("bbbike_url", result.ExtractURL),
			zap.Strings("outputs", result.Outputs),
		)
	}
	for cityName, cityErr := range batch.Failed {
		logger.Error("city failed", zap.String("city", cityName), zap.Error(cityErr))
	}

	logger.Info("all cities processed",
		zap.String("output_dir", cfg.OutputDir),
		zap.Int("succeeded", len(batch.Results)),
		zap.Int("failed", len(batch.Failed)),
	)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
