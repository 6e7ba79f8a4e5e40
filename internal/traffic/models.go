// Package traffic aggregates live flow and incident feeds into per-area,
// per-road-type traffic records. Feed data is best-effort: either adapter
// may be unconfigured or failing for any area, and the pipeline fills the
// gaps with documented defaults instead of surfacing the failure.
package traffic

import (
	"time"

	"github.com/citypulse/citypulse/internal/catalog"
)

// Severity is the qualitative 4-bucket scale used both for incident
// magnitudes and for congestion bucketing. Provider scales are collapsed
// into it.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
	SeveritySevere   Severity = "severe"
)

// AllSeverities lists the buckets from lightest to heaviest.
var AllSeverities = []Severity{SeverityLow, SeverityModerate, SeverityHigh, SeveritySevere}

// Valid reports whether s is a known severity bucket.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityModerate, SeverityHigh, SeveritySevere:
		return true
	}
	return false
}

// CongestionBucket maps a 0-100 congestion value into the severity scale.
// Severity filtering uses this recomputed bucket rather than a separately
// tracked field, so filters behave identically whether or not incident
// data was available.
func CongestionBucket(congestion int) Severity {
	switch {
	case congestion < 25:
		return SeverityLow
	case congestion < 50:
		return SeverityModerate
	case congestion < 75:
		return SeverityHigh
	default:
		return SeveritySevere
	}
}

// FlowObservation is one flow-speed reading for a geographic point.
type FlowObservation struct {
	CurrentSpeed  float64
	FreeFlowSpeed float64
	Confidence    float64
	FetchedAt     time.Time
}

// Incident is one normalized traffic incident near a geographic point.
type Incident struct {
	ID          string
	Description string
	Severity    Severity
	Lat         float64
	Lon         float64
	StartTime   time.Time
	EndTime     *time.Time
}

// Record is one (area, road type) observation. Records are constructed
// fresh per aggregation call and never mutated afterwards. Speed, travel
// time, and volume are derived from congestion so the record stays
// internally consistent even when live data is partially missing.
type Record struct {
	AreaID        string           `json:"areaId"`
	AreaName      string           `json:"areaName"`
	RoadType      catalog.RoadType `json:"roadType"`
	Congestion    int              `json:"congestion"`
	SpeedKmh      float64          `json:"speedKmh"`
	TravelTimeMin float64          `json:"travelTimeMin"`
	VolumePerHour int              `json:"volumePerHour"`
	IncidentCount int              `json:"incidentCount"`
	Live          bool             `json:"live"`
	Timestamp     time.Time        `json:"timestamp"`
}

// Metric field names for Filter.RequiredMetrics.
const (
	MetricCongestion = "congestion"
	MetricSpeed      = "speed"
	MetricTravelTime = "travelTime"
	MetricVolume     = "volume"
	MetricIncidents  = "incidents"
)

// recordMetrics is the set of metric fields present on every Record.
// Every field is always populated in this design, so the RequiredMetrics
// filter only ever drops records when an unknown metric name is requested.
var recordMetrics = map[string]bool{
	MetricCongestion: true,
	MetricSpeed:      true,
	MetricTravelTime: true,
	MetricVolume:     true,
	MetricIncidents:  true,
}

// HasMetric reports whether records carry the named metric field.
func HasMetric(name string) bool {
	return recordMetrics[name]
}

// Filter narrows an aggregation call. Zero-value fields mean "no filter".
type Filter struct {
	// Areas restricts aggregation to the given catalog area IDs.
	Areas []string `json:"areas,omitempty"`

	// RoadTypes restricts emitted records to the given road types.
	RoadTypes []catalog.RoadType `json:"roadTypes,omitempty"`

	// SeverityBuckets keeps only records whose recomputed congestion
	// bucket is in the list.
	SeverityBuckets []Severity `json:"severityBuckets,omitempty"`

	// RequiredMetrics drops records missing any named metric field.
	// All fields are always present, so this is a safeguard against
	// callers requesting metrics this pipeline does not produce.
	RequiredMetrics []string `json:"requiredMetrics,omitempty"`
}

func (f *Filter) wantsArea(id string) bool {
	if len(f.Areas) == 0 {
		return true
	}
	for _, a := range f.Areas {
		if a == id {
			return true
		}
	}
	return false
}

func (f *Filter) wantsRoadType(rt catalog.RoadType) bool {
	if len(f.RoadTypes) == 0 {
		return true
	}
	for _, t := range f.RoadTypes {
		if t == rt {
			return true
		}
	}
	return false
}

func (f *Filter) wantsSeverity(s Severity) bool {
	if len(f.SeverityBuckets) == 0 {
		return true
	}
	for _, b := range f.SeverityBuckets {
		if b == s {
			return true
		}
	}
	return false
}

func (f *Filter) hasRequiredMetrics() bool {
	for _, m := range f.RequiredMetrics {
		if !HasMetric(m) {
			return false
		}
	}
	return true
}
