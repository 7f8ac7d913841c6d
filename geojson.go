package cityroads

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// WriteGeoJSON exports the given geometries as a FeatureCollection. Point
// kinds become Point features, multipoints MultiPoint features, everything
// else a LineString of its vertex sequence. Shapes with too few positions
// for a valid geometry are skipped.
func WriteGeoJSON(path string, geometries []Geometry) error {
	fc := geojson.NewFeatureCollection()
	for _, geometry := range geometries {
		g := toGeoJSONGeometry(geometry)
		if g == nil {
			continue
		}
		feature := geojson.NewFeature(g)
		feature.SetProperty("shape_type", geometry.Type.String())
		fc.AddFeature(feature)
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal feature collection")
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return errors.Wrapf(err, "Can't write geojson to '%s'", path)
	}
	return nil
}

func toGeoJSONGeometry(geometry Geometry) *geojson.Geometry {
	pts2d := make([][]float64, len(geometry.Points))
	for i, pt := range geometry.Points {
		pts2d[i] = []float64{pt.X(), pt.Y()}
	}
	switch geometry.Type {
	case SHAPE_POINT:
		if len(pts2d) == 0 {
			return nil
		}
		return geojson.NewPointGeometry(pts2d[0])
	case SHAPE_MULTIPOINT:
		if len(pts2d) == 0 {
			return nil
		}
		return geojson.NewMultiPointGeometry(pts2d...)
	default:
		// A valid LineString needs at least two positions.
		if len(pts2d) < 2 {
			return nil
		}
		return geojson.NewLineStringGeometry(pts2d)
	}
}
