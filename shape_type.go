package cityroads

// ShapeType Geometry kind tag, resolved once at read time. Numeric values
// follow the ESRI shapefile shape type codes; Z/M variants collapse onto the
// base kind when a store is loaded.
type ShapeType int32

const (
	SHAPE_NULL       = ShapeType(0)
	SHAPE_POINT      = ShapeType(1)
	SHAPE_POLYLINE   = ShapeType(3)
	SHAPE_POLYGON    = ShapeType(5)
	SHAPE_MULTIPOINT = ShapeType(8)
)

func (st ShapeType) String() string {
	switch st {
	case SHAPE_POINT:
		return "point"
	case SHAPE_POLYLINE:
		return "polyline"
	case SHAPE_POLYGON:
		return "polygon"
	case SHAPE_MULTIPOINT:
		return "multipoint"
	default:
		return "null"
	}
}
