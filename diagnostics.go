package cityroads

import "fmt"

// DiagnosticCode Machine-readable tag of a non-fatal processing event
type DiagnosticCode uint16

const (
	FIELD_FALLBACK_USED = DiagnosticCode(iota + 1)
	ROAD_TYPES_OBSERVED
	ROAD_STORE_MISSING
)

func (iotaIdx DiagnosticCode) String() string {
	return [...]string{"field_fallback_used", "road_types_observed", "road_store_missing"}[iotaIdx-1]
}

// Diagnostic Non-fatal event emitted while processing a city. Diagnostics are
// returned alongside results; how (and whether) to display them is the
// orchestration layer's decision.
type Diagnostic struct {
	Code    DiagnosticCode
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s", d.Code, d.Message)
}
