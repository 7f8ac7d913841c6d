package cityroads

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config File-based description of a batch run, mirroring the CLI options.
// Zero values mean "not set"; the CLI fills defaults and lets flags win.
type Config struct {
	BaseShapefile  string   `yaml:"base_shapefile"`
	OutputDir      string   `yaml:"output_dir"`
	Cities         []string `yaml:"cities"`
	CityField      string   `yaml:"city_field"`
	RoadTypes      []string `yaml:"road_types"`
	RoadsShapefile string   `yaml:"roads_shapefile"`
	RoadsOSM       string   `yaml:"roads_osm"`
	Workers        int      `yaml:"workers"`
	GeoJSON        bool     `yaml:"geojson"`
}

// Merge overlays onto c the fields other actually sets, leaving the rest
// untouched. Used to stack config sources without losing lower-precedence
// defaults.
func (c *Config) Merge(other *Config) {
	if other.BaseShapefile != "" {
		c.BaseShapefile = other.BaseShapefile
	}
	if other.OutputDir != "" {
		c.OutputDir = other.OutputDir
	}
	if len(other.Cities) > 0 {
		c.Cities = other.Cities
	}
	if other.CityField != "" {
		c.CityField = other.CityField
	}
	if len(other.RoadTypes) > 0 {
		c.RoadTypes = other.RoadTypes
	}
	if other.RoadsShapefile != "" {
		c.RoadsShapefile = other.RoadsShapefile
	}
	if other.RoadsOSM != "" {
		c.RoadsOSM = other.RoadsOSM
	}
	if other.Workers != 0 {
		c.Workers = other.Workers
	}
	if other.GeoJSON {
		c.GeoJSON = true
	}
}

// LoadConfig reads a batch description from a YAML file
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read config file")
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrap(err, "Can't parse config file")
	}
	return cfg, nil
}
