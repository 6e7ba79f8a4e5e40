package models

// AggregateTrafficRequest holds the filters for a traffic aggregation run.
// All fields are optional; an empty request aggregates every catalog area.
type AggregateTrafficRequest struct {
	Areas           []string `json:"areas,omitempty"`
	RoadTypes       []string `json:"roadTypes,omitempty"`
	SeverityBuckets []string `json:"severityBuckets,omitempty"`
	RequiredMetrics []string `json:"requiredMetrics,omitempty"`
}

// TrafficRecord is one aggregated observation for an area and road type.
type TrafficRecord struct {
	AreaID        string    `json:"areaId"`
	AreaName      string    `json:"areaName"`
	RoadType      string    `json:"roadType"`
	Congestion    int       `json:"congestion"`
	Severity      string    `json:"severity"`
	SpeedKmh      float64   `json:"speedKmh"`
	TravelTimeMin float64   `json:"travelTimeMin"`
	VolumePerHour int       `json:"volumePerHour"`
	IncidentCount int       `json:"incidentCount"`
	Live          bool      `json:"live"`
	Timestamp     Timestamp `json:"timestamp"`
}

// AggregateTrafficResponse is the result of a traffic aggregation run.
type AggregateTrafficResponse struct {
	Records     []TrafficRecord `json:"records"`
	Count       int             `json:"count"`
	GeneratedAt Timestamp       `json:"generatedAt"`
}
