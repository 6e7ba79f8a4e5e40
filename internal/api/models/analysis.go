package models

import "encoding/json"

// AnalyzeRequest asks for an analysis of an arbitrary JSON payload.
type AnalyzeRequest struct {
	Payload json.RawMessage `json:"payload"`
	Kind    string          `json:"kind,omitempty"`
}

// AnalysisResult is the structured output of an analysis request.
type AnalysisResult struct {
	Recommendations []string           `json:"recommendations"`
	Insights        string             `json:"insights"`
	Forecast        string             `json:"forecast"`
	Metrics         map[string]float64 `json:"metrics,omitempty"`
}
