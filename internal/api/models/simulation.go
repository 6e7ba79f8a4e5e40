package models

// RunSimulationRequest describes a simulation run to execute.
type RunSimulationRequest struct {
	Scenario        string             `json:"scenario"`
	Parameters      map[string]float64 `json:"parameters,omitempty"`
	UseLiveData     bool               `json:"useLiveData,omitempty"`
	IncludeAnalysis bool               `json:"includeAnalysis,omitempty"`
}

// Hotspot is a named location with a projected impact level.
type Hotspot struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

// SimulationRun is the outcome of a single simulation run.
type SimulationRun struct {
	RunID       string             `json:"runId"`
	Scenario    string             `json:"scenario"`
	Metrics     map[string]float64 `json:"metrics"`
	Hotspots    []Hotspot          `json:"hotspots"`
	UsedLive    bool               `json:"usedLiveData"`
	CompletedAt Timestamp          `json:"completedAt"`
}

// RunSimulationResponse wraps a simulation run and its optional analysis.
type RunSimulationResponse struct {
	Run      SimulationRun   `json:"run"`
	Analysis *AnalysisResult `json:"analysis,omitempty"`
}
