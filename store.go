package cityroads

import (
	"github.com/paulmach/orb"
)

// Record Ordered attribute values of a single feature. Positions are
// 1:1 with the owning store's schema.
type Record []string

// Value returns the attribute at the given schema index. Out-of-range
// indices yield an empty value instead of panicking.
func (r Record) Value(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Geometry Shape-type tag plus the ordered vertex sequence. Coordinates are
// passed through in source axis order (X = longitude, Y = latitude), no CRS
// transform is applied.
type Geometry struct {
	Type   ShapeType
	Points orb.LineString
}

// Feature Attribute record paired with its geometry. Same index in a store
// denotes the same real-world feature.
type Feature struct {
	Record   Record
	Geometry Geometry
}

// Schema Ordered field names shared by every record in one geometry store.
// The name index is built once at load time so field resolution does not
// rescan the field list.
type Schema struct {
	fields []string
	index  map[string]int
}

// NewSchema builds a schema from ordered field names
func NewSchema(fields []string) Schema {
	index := make(map[string]int, len(fields))
	for i, name := range fields {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	return Schema{fields: fields, index: index}
}

// Fields returns a copy of the ordered field names
func (s Schema) Fields() []string {
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of fields
func (s Schema) Len() int {
	return len(s.fields)
}

// FieldIndex Exact-mode resolution: the named field must be present,
// otherwise a FieldNotFoundError carrying the full schema is returned.
func (s Schema) FieldIndex(name string) (int, error) {
	idx, ok := s.index[name]
	if !ok {
		return -1, &FieldNotFoundError{Field: name, Schema: s.Fields()}
	}
	return idx, nil
}

// ResolveAny Candidate-list resolution: the first candidate present in the
// schema wins, in list order. When none is present the first schema field is
// used as a best-effort fallback and the second return value reports it.
// Road-type taxonomies vary by source, so this mode never fails outright.
func (s Schema) ResolveAny(candidates []string) (int, bool) {
	for _, name := range candidates {
		if idx, ok := s.index[name]; ok {
			return idx, false
		}
	}
	return 0, true
}

// GeometryStore Ordered (record, geometry) pairs sharing one schema.
// Store handles are not safe to share across concurrent extractions; each
// worker loads its own instance.
type GeometryStore struct {
	Schema   Schema
	Features []Feature
}

// Len returns the number of features in the store
func (gs *GeometryStore) Len() int {
	return len(gs.Features)
}
