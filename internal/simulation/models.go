// Package simulation implements the what-if engine: given a scenario and a
// set of 0-100 parameter sliders, it derives a bounded result record and a
// short list of named hotspots. The engine is synchronous and pure — the
// same inputs always produce the same result, and any live variability
// enters only through the optional aggregated congestion input.
package simulation

import (
	"errors"
	"time"
)

// ErrUnknownScenario is returned for a scenario outside the enumeration.
// The scenario is caller-controlled code, not user free text, so an
// unknown value is a programming error rather than something to default.
var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario selects a simulation domain.
type Scenario string

const (
	ScenarioTraffic       Scenario = "traffic"
	ScenarioGrowth        Scenario = "growth"
	ScenarioEnvironmental Scenario = "environmental"
	ScenarioDensity       Scenario = "density"
)

// AllScenarios lists every scenario in a stable order.
var AllScenarios = []Scenario{ScenarioTraffic, ScenarioGrowth, ScenarioEnvironmental, ScenarioDensity}

// Valid reports whether s is a known scenario.
func (s Scenario) Valid() bool {
	switch s {
	case ScenarioTraffic, ScenarioGrowth, ScenarioEnvironmental, ScenarioDensity:
		return true
	}
	return false
}

// Parameter slider names per scenario.
const (
	ParamSignalTiming    = "signalTiming"
	ParamPublicTransport = "publicTransport"
	ParamRoadCapacity    = "roadCapacity"

	ParamEconomicInvestment   = "economicInvestment"
	ParamZoningFlexibility    = "zoningFlexibility"
	ParamInfrastructureBudget = "infrastructureBudget"

	ParamGreenSpace     = "greenSpace"
	ParamEmissionLimits = "emissionLimits"
	ParamRenewableShare = "renewableShare"

	ParamResidentialDensity = "residentialDensity"
	ParamMixedUse           = "mixedUse"
	ParamBuildingHeight     = "buildingHeight"
)

// parameterSchema maps each scenario to its slider names. Sliders absent
// from the input default to the neutral midpoint; sliders outside the
// schema are ignored.
var parameterSchema = map[Scenario][]string{
	ScenarioTraffic:       {ParamSignalTiming, ParamPublicTransport, ParamRoadCapacity},
	ScenarioGrowth:        {ParamEconomicInvestment, ParamZoningFlexibility, ParamInfrastructureBudget},
	ScenarioEnvironmental: {ParamGreenSpace, ParamEmissionLimits, ParamRenewableShare},
	ScenarioDensity:       {ParamResidentialDensity, ParamMixedUse, ParamBuildingHeight},
}

// ParameterNames returns the slider schema for a scenario.
func ParameterNames(s Scenario) []string {
	return parameterSchema[s]
}

// Parameters is the caller-owned bag of sliders. Values are clamped to
// 0-100 on read; the engine never mutates the map.
type Parameters map[string]float64

// Level is the qualitative hotspot rating.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Hotspot pairs a named sub-area with its qualitative level.
type Hotspot struct {
	Name  string `json:"name"`
	Level Level  `json:"level"`
}

// Result metric names per scenario.
const (
	MetricCongestion     = "congestion"
	MetricAvgSpeedKmh    = "avgSpeedKmh"
	MetricTravelTimeMin  = "travelTimeMin"
	MetricEmissionsIndex = "emissionsIndex"

	MetricPopulationGrowthPct = "populationGrowthPct"
	MetricJobGrowthPct        = "jobGrowthPct"
	MetricHousingDemand       = "housingDemandIndex"

	MetricAirQualityIndex    = "airQualityIndex"
	MetricGreenCoveragePct   = "greenCoveragePct"
	MetricCarbonReductionPct = "carbonReductionPct"

	MetricPopulationDensity    = "populationDensityPerKm2"
	MetricLivabilityIndex      = "livabilityIndex"
	MetricInfrastructureStrain = "infrastructureStrainIndex"
)

// Result is the engine output: derived numeric fields, each clamped to
// its documented range, plus an ordered hotspot list.
type Result struct {
	RunID       string             `json:"runId"`
	Scenario    Scenario           `json:"scenario"`
	Metrics     map[string]float64 `json:"metrics"`
	Hotspots    []Hotspot          `json:"hotspots"`
	UsedLive    bool               `json:"usedLiveData"`
	CompletedAt time.Time          `json:"completedAt"`
}
