package cityroads

import (
	"os"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// LoadShapefile reads a whole ESRI shapefile into a GeometryStore. The schema
// comes from the companion dbf header, which never exposes the leading
// deletion-flag pseudo-field. Attribute values are kept as their dbf string
// representation.
func LoadShapefile(path string) (*GeometryStore, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrSourceNotFound, "no shapefile at '%s'", path)
	}
	reader, err := shp.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrSourceCorrupt, "can't open shapefile '%s': %v", path, err)
	}
	defer reader.Close()

	shpFields := reader.Fields()
	fields := make([]string, len(shpFields))
	for i := range shpFields {
		fields[i] = shpFields[i].String()
	}
	schema := NewSchema(fields)

	features := []Feature{}
	for reader.Next() {
		n, shape := reader.Shape()
		record := make(Record, len(fields))
		for i := range fields {
			record[i] = reader.ReadAttribute(n, i)
		}
		features = append(features, Feature{
			Record:   record,
			Geometry: convertShape(shape),
		})
	}
	if err := reader.Err(); err != nil {
		return nil, errors.Wrapf(ErrSourceCorrupt, "can't read shapefile '%s': %v", path, err)
	}
	if reader.AttributeCount() != len(features) {
		return nil, errors.Wrapf(ErrSourceCorrupt, "shapefile '%s': %d attribute rows for %d geometries", path, reader.AttributeCount(), len(features))
	}
	return &GeometryStore{Schema: schema, Features: features}, nil
}

// convertShape maps a go-shp shape onto the explicit geometry-kind tag plus
// flat vertex sequence. Part boundaries of multi-part shapes are not kept;
// downstream consumers only need the ordered point set.
func convertShape(shape shp.Shape) Geometry {
	switch s := shape.(type) {
	case *shp.PolyLine:
		return Geometry{Type: SHAPE_POLYLINE, Points: toLineString(s.Points)}
	case *shp.PolyLineZ:
		return Geometry{Type: SHAPE_POLYLINE, Points: toLineString(s.Points)}
	case *shp.PolyLineM:
		return Geometry{Type: SHAPE_POLYLINE, Points: toLineString(s.Points)}
	case *shp.Polygon:
		return Geometry{Type: SHAPE_POLYGON, Points: toLineString(s.Points)}
	case *shp.PolygonZ:
		return Geometry{Type: SHAPE_POLYGON, Points: toLineString(s.Points)}
	case *shp.PolygonM:
		return Geometry{Type: SHAPE_POLYGON, Points: toLineString(s.Points)}
	case *shp.Point:
		return Geometry{Type: SHAPE_POINT, Points: orb.LineString{{s.X, s.Y}}}
	case *shp.PointZ:
		return Geometry{Type: SHAPE_POINT, Points: orb.LineString{{s.X, s.Y}}}
	case *shp.PointM:
		return Geometry{Type: SHAPE_POINT, Points: orb.LineString{{s.X, s.Y}}}
	case *shp.MultiPoint:
		return Geometry{Type: SHAPE_MULTIPOINT, Points: toLineString(s.Points)}
	default:
		return Geometry{Type: SHAPE_NULL}
	}
}

func toLineString(points []shp.Point) orb.LineString {
	line := make(orb.LineString, len(points))
	for i, pt := range points {
		line[i] = orb.Point{pt.X, pt.Y}
	}
	return line
}
