// Package analysis augments simulation and traffic output with
// natural-language analysis from a text-generation backend. The one
// contract everything else is built around: Analyze never fails. Timeouts,
// bad status codes, and unparseable responses all collapse into a canned,
// domain-appropriate result with the same shape as a live one, so callers
// carry no failure-branch logic.
package analysis

import "encoding/json"

// Kind selects the prompt template and the canned fallback.
type Kind string

const (
	KindTraffic       Kind = "traffic"
	KindGrowth        Kind = "growth"
	KindEnvironmental Kind = "environmental"
	KindDensity       Kind = "density"
	KindGeneral       Kind = "general"
)

// AllKinds lists every kind in a stable order.
var AllKinds = []Kind{KindTraffic, KindGrowth, KindEnvironmental, KindDensity, KindGeneral}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindTraffic, KindGrowth, KindEnvironmental, KindDensity, KindGeneral:
		return true
	}
	return false
}

// normalize maps unknown kinds to the general template rather than
// erroring; kind is advisory input, not a trusted enum.
func (k Kind) normalize() Kind {
	if k.Valid() {
		return k
	}
	return KindGeneral
}

// Request carries an arbitrary JSON payload plus the kind tag.
type Request struct {
	// Payload is the data to analyze, passed through to the prompt as-is.
	Payload json.RawMessage `json:"payload"`

	// Kind selects the prompt template. Unknown values fall back to the
	// general template.
	Kind Kind `json:"kind"`
}

// Result is the analysis output. Every code path produces a structurally
// valid Result; the type has no error variant.
type Result struct {
	Recommendations []string           `json:"recommendations"`
	Insights        string             `json:"insights"`
	Forecast        string             `json:"forecast"`
	Metrics         map[string]float64 `json:"metrics,omitempty"`
}

// complete reports whether the result carries every required field.
// A backend response missing any of them is treated as a parse failure.
func (r *Result) complete() bool {
	return r != nil && r.Insights != "" && r.Forecast != "" && len(r.Recommendations) > 0
}
