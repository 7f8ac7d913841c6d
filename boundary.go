package cityroads

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ExtractBoundary selects every geometry whose record matches targetValue in
// the named field (exact, case-sensitive) and computes the bounding box over
// all points of the selection. Order is preserved and duplicates are kept.
//
// The field must exist (FieldNotFoundError otherwise). An existing field with
// no matching record yields a RegionNotFoundError; a non-empty selection with
// zero points yields ErrEmptyGeometry.
func ExtractBoundary(store *GeometryStore, fieldName string, targetValue string) ([]Geometry, orb.Bound, error) {
	idx, err := store.Schema.FieldIndex(fieldName)
	if err != nil {
		return nil, orb.Bound{}, err
	}

	selected := []Geometry{}
	for _, feature := range store.Features {
		if feature.Record.Value(idx) == targetValue {
			selected = append(selected, feature.Geometry)
		}
	}
	if len(selected) == 0 {
		return nil, orb.Bound{}, &RegionNotFoundError{Region: targetValue, Field: fieldName}
	}

	bound, err := boundOf(selected)
	if err != nil {
		return nil, orb.Bound{}, errors.Wrapf(err, "region '%s'", targetValue)
	}
	return selected, bound, nil
}

// boundOf returns the tight per-axis min/max over every point of every given
// geometry. Undefined for an empty point set.
func boundOf(geometries []Geometry) (orb.Bound, error) {
	var bound orb.Bound
	first := true
	for _, geometry := range geometries {
		for _, pt := range geometry.Points {
			if first {
				bound = orb.Bound{Min: pt, Max: pt}
				first = false
				continue
			}
			bound = bound.Extend(pt)
		}
	}
	if first {
		return orb.Bound{}, ErrEmptyGeometry
	}
	return bound, nil
}
