package simulation

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Tuning carries the empirically chosen coefficients behind the formula
// tables. The monotonic shape of each formula is fixed; the coefficients
// are deployment tuning.
type Tuning struct {
	// Traffic congestion relief weights, summing to 1.
	SignalWeight    float64
	TransportWeight float64
	CapacityWeight  float64

	// Hotspot level thresholds on the 0-100 driving value.
	HighThreshold   float64
	MediumThreshold float64
}

// DefaultTuning returns the default coefficient set.
func DefaultTuning() Tuning {
	return Tuning{
		SignalWeight:    0.3,
		TransportWeight: 0.4,
		CapacityWeight:  0.3,
		HighThreshold:   70,
		MediumThreshold: 40,
	}
}

// EngineConfig holds configuration for the simulation engine.
type EngineConfig struct {
	// Tuning overrides the formula coefficients (optional).
	Tuning *Tuning

	// Logger for engine operations.
	Logger zerolog.Logger
}

// Engine runs what-if simulations.
type Engine struct {
	tuning Tuning
	logger zerolog.Logger
}

// NewEngine creates a new simulation engine.
func NewEngine(cfg EngineConfig) *Engine {
	tuning := DefaultTuning()
	if cfg.Tuning != nil {
		tuning = *cfg.Tuning
	}
	return &Engine{
		tuning: tuning,
		logger: cfg.Logger,
	}
}

// Input is one simulation request.
type Input struct {
	// Scenario selects the formula table.
	Scenario Scenario

	// Parameters is the caller's slider bag (0-100 each).
	Parameters Parameters

	// LiveCongestion, when non-nil, is the aggregated live congestion
	// value for the traffic scenario. It takes precedence over the
	// formula-derived congestion.
	LiveCongestion *int
}

// Run executes one simulation. It is synchronous: there is no partial
// progress, only input to output. The only error is an unknown scenario.
func (e *Engine) Run(input Input) (*Result, error) {
	if !input.Scenario.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, input.Scenario)
	}

	params := e.resolveParams(input.Scenario, input.Parameters)

	result := &Result{
		RunID:       uuid.New().String(),
		Scenario:    input.Scenario,
		CompletedAt: time.Now(),
	}

	switch input.Scenario {
	case ScenarioTraffic:
		e.runTraffic(params, input.LiveCongestion, result)
	case ScenarioGrowth:
		e.runGrowth(params, result)
	case ScenarioEnvironmental:
		e.runEnvironmental(params, result)
	case ScenarioDensity:
		e.runDensity(params, result)
	}

	e.logger.Debug().
		Str("run_id", result.RunID).
		Str("scenario", string(result.Scenario)).
		Bool("used_live", result.UsedLive).
		Msg("simulation complete")

	return result, nil
}

// resolveParams reads the scenario's sliders out of the caller's bag,
// clamping each to 0-100 and defaulting missing sliders to the midpoint.
func (e *Engine) resolveParams(scenario Scenario, params Parameters) map[string]float64 {
	resolved := make(map[string]float64)
	for _, name := range parameterSchema[scenario] {
		value, ok := params[name]
		if !ok {
			value = 50
		}
		resolved[name] = clamp(0, 100, value)
	}
	return resolved
}

func (e *Engine) runTraffic(p map[string]float64, live *int, result *Result) {
	relief := p[ParamSignalTiming]*e.tuning.SignalWeight +
		p[ParamPublicTransport]*e.tuning.TransportWeight +
		p[ParamRoadCapacity]*e.tuning.CapacityWeight

	congestion := clamp(0, 100, 100-relief)
	if live != nil {
		congestion = clamp(0, 100, float64(*live))
		result.UsedLive = true
	}

	avgSpeed := math.Max(5, 60-congestion*0.5)

	result.Metrics = map[string]float64{
		MetricCongestion:     round1(congestion),
		MetricAvgSpeedKmh:    round1(avgSpeed),
		MetricTravelTimeMin:  round1(10 + congestion*0.2),
		MetricEmissionsIndex: round1(clamp(0, 200, congestion*1.4)),
	}

	result.Hotspots = []Hotspot{
		{Name: "Central Station", Level: e.levelFor(congestion + 10)},
		{Name: "Harbor Tunnel", Level: e.levelFor(congestion + 5)},
		{Name: "Ring Road West", Level: e.levelFor(congestion)},
		{Name: "University Quarter", Level: e.levelFor(congestion - 10)},
	}
}

func (e *Engine) runGrowth(p map[string]float64, result *Result) {
	momentum := p[ParamEconomicInvestment]*0.5 +
		p[ParamZoningFlexibility]*0.2 +
		p[ParamInfrastructureBudget]*0.3

	result.Metrics = map[string]float64{
		MetricPopulationGrowthPct: round1(clamp(0, 10, momentum*0.08)),
		MetricJobGrowthPct:        round1(clamp(0, 12, momentum*0.1)),
		MetricHousingDemand:       round1(clamp(0, 100, momentum*0.9+10)),
	}

	result.Hotspots = []Hotspot{
		{Name: "Waterfront Redevelopment", Level: e.levelFor(momentum + 15)},
		{Name: "Tech Corridor", Level: e.levelFor(momentum + 5)},
		{Name: "Old Town Fringe", Level: e.levelFor(momentum - 15)},
	}
}

func (e *Engine) runEnvironmental(p map[string]float64, result *Result) {
	mitigation := p[ParamEmissionLimits]*0.6 + p[ParamRenewableShare]*0.4

	result.Metrics = map[string]float64{
		MetricAirQualityIndex:    round1(clamp(0, 150, 150-mitigation*1.2)),
		MetricGreenCoveragePct:   round1(clamp(0, 100, p[ParamGreenSpace]*0.8+10)),
		MetricCarbonReductionPct: round1(clamp(0, 100, mitigation*0.9)),
	}

	// Environmental hotspots rate pollution pressure, so the driving
	// value inverts: stronger mitigation means lower levels.
	pressure := 100 - mitigation
	result.Hotspots = []Hotspot{
		{Name: "Industrial Zone", Level: e.levelFor(pressure + 15)},
		{Name: "Airport Corridor", Level: e.levelFor(pressure + 5)},
		{Name: "Riverside Park Belt", Level: e.levelFor(pressure - 20)},
	}
}

func (e *Engine) runDensity(p map[string]float64, result *Result) {
	density := p[ParamResidentialDensity]

	result.Metrics = map[string]float64{
		MetricPopulationDensity:    round1(clamp(200, 12000, 2000+density*80+p[ParamBuildingHeight]*20)),
		MetricLivabilityIndex:      round1(clamp(0, 100, 70-density*0.3+p[ParamMixedUse]*0.3)),
		MetricInfrastructureStrain: round1(clamp(0, 100, density*0.5+p[ParamBuildingHeight]*0.4-p[ParamMixedUse]*0.1)),
	}

	result.Hotspots = []Hotspot{
		{Name: "Downtown Core", Level: e.levelFor(density + 10)},
		{Name: "Transit Hub East", Level: e.levelFor(density)},
		{Name: "Garden Suburbs", Level: e.levelFor(density - 25)},
	}
}

// levelFor buckets a 0-100 driving value into the qualitative scale.
// Values pushed out of range by hotspot offsets still bucket correctly.
func (e *Engine) levelFor(value float64) Level {
	switch {
	case value >= e.tuning.HighThreshold:
		return LevelHigh
	case value >= e.tuning.MediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

func clamp(minV, maxV, v float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
