package cityroads

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrSourceNotFound is returned when the underlying geometry source does not exist
	ErrSourceNotFound = errors.New("geometry source not found")
	// ErrSourceCorrupt is returned when the geometry source can not be read or its
	// record/geometry counts disagree
	ErrSourceCorrupt = errors.New("geometry source corrupt")
	// ErrEmptyGeometry is returned when a non-empty selection carries zero points
	ErrEmptyGeometry = errors.New("selection contains no points")
)

// FieldNotFoundError Exact-mode field resolution failure. Carries the full
// schema so the caller can report which fields were actually available.
type FieldNotFoundError struct {
	Field  string
	Schema []string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("Field '%s' not found. Available fields: %s", e.Field, strings.Join(e.Schema, ", "))
}

// RegionNotFoundError The resolved field exists but no record carries the
// requested value. Distinct from FieldNotFoundError which fails earlier.
type RegionNotFoundError struct {
	Region string
	Field  string
}

func (e *RegionNotFoundError) Error() string {
	return fmt.Sprintf("Region '%s' not found using field '%s'", e.Region, e.Field)
}
