package models

// AreaSummary describes a monitored area in the catalog.
type AreaSummary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Point     Point    `json:"point"`
	RoadTypes []string `json:"roadTypes"`
}

// AreaList represents the list of monitored areas.
type AreaList struct {
	Items []AreaSummary `json:"items"`
	Count int           `json:"count"`
}

// Enums represents the enum values used by the API.
type Enums struct {
	Scenarios       []string `json:"scenarios"`
	RoadTypes       []string `json:"roadTypes"`
	SeverityBuckets []string `json:"severityBuckets"`
	TrafficMetrics  []string `json:"trafficMetrics"`
	AnalysisKinds   []string `json:"analysisKinds"`
}
