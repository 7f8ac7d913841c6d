package cityroads

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	// DefaultRoadTypeFields Candidate field names carrying the road type,
	// probed in this order. Taxonomies vary by source so resolution is
	// best-effort, never exact.
	DefaultRoadTypeFields = []string{"type", "highway", "road_type", "roadtype", "class"}
	// DefaultRoadTypes Road classes kept by default
	DefaultRoadTypes = []string{"residential", "primary", "secondary", "tertiary"}
)

// roadDerivedFields Columns appended to the source schema for each flattened
// road. The lat/long labels follow the established output contract and label
// the X/Y axis order as-is; changing them would silently break downstream
// consumers of the table.
var roadDerivedFields = []string{"start_lat", "start_long", "end_lat", "end_long"}

// RoadTable Flattened road rows sharing one extended schema (source fields
// plus the four derived endpoint columns). Built once per run, read-only after
// construction.
type RoadTable struct {
	Fields []string
	Rows   [][]string
}

// ClassifyRoads filters a road store down to the geometries whose resolved
// type-field value is a member of allowedTypes and flattens each well-formed
// match into a table row (source attributes + first/last point coordinates).
//
// The returned geometry list and the table deliberately diverge: the list
// holds every type-matched geometry and is meant for rendering, while table
// rows additionally require the polyline tag and a non-empty point sequence.
// A map may therefore show shapes that never appear as rows. This mirrors the
// long-standing behavior of the original pipeline and is kept on purpose.
//
// An empty table is a valid result, not an error; emptiness is the caller's
// decision to act on.
func ClassifyRoads(store *GeometryStore, allowedTypes []string) ([]Geometry, *RoadTable, []Diagnostic) {
	diagnostics := []Diagnostic{}

	typeIdx, fallback := store.Schema.ResolveAny(DefaultRoadTypeFields)
	if fallback {
		fallbackField := ""
		if fields := store.Schema.Fields(); len(fields) > 0 {
			fallbackField = fields[0]
		}
		diagnostics = append(diagnostics, Diagnostic{
			Code:    FIELD_FALLBACK_USED,
			Message: fmt.Sprintf("no road type field among [%s], falling back to first field '%s'", strings.Join(DefaultRoadTypeFields, ", "), fallbackField),
		})
	}

	observed := make(map[string]struct{})
	for _, feature := range store.Features {
		observed[feature.Record.Value(typeIdx)] = struct{}{}
	}
	observedList := make([]string, 0, len(observed))
	for value := range observed {
		observedList = append(observedList, value)
	}
	sort.Strings(observedList)
	diagnostics = append(diagnostics, Diagnostic{
		Code:    ROAD_TYPES_OBSERVED,
		Message: fmt.Sprintf("road types in source: %s", strings.Join(observedList, ", ")),
	})

	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, roadType := range allowedTypes {
		allowed[roadType] = struct{}{}
	}

	selected := []Geometry{}
	table := &RoadTable{
		Fields: append(store.Schema.Fields(), roadDerivedFields...),
		Rows:   [][]string{},
	}
	for _, feature := range store.Features {
		if _, ok := allowed[feature.Record.Value(typeIdx)]; !ok {
			continue
		}
		selected = append(selected, feature.Geometry)

		// Rows are stricter than the render set: polylines with points only.
		if feature.Geometry.Type != SHAPE_POLYLINE || len(feature.Geometry.Points) == 0 {
			continue
		}
		firstPt := feature.Geometry.Points[0]
		lastPt := feature.Geometry.Points[len(feature.Geometry.Points)-1]
		row := make([]string, 0, len(table.Fields))
		row = append(row, feature.Record...)
		row = append(row,
			formatCoord(firstPt.X()), formatCoord(firstPt.Y()),
			formatCoord(lastPt.X()), formatCoord(lastPt.Y()),
		)
		table.Rows = append(table.Rows, row)
	}

	return selected, table, diagnostics
}

// formatCoord renders a coordinate with the shortest representation that
// parses back to the same float64. Whole numbers keep a trailing ".0" so the
// output stays byte-compatible with what downstream consumers already parse.
func formatCoord(value float64) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
