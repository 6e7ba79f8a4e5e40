package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/citypulse/citypulse/internal/analysis"
	"github.com/citypulse/citypulse/internal/api/models"
	"github.com/citypulse/citypulse/internal/api/response"
	"github.com/citypulse/citypulse/internal/simulation"
	"github.com/citypulse/citypulse/internal/traffic"
)

// SimulationHandler handles simulation endpoints. It orchestrates the
// engine with optional live traffic data and optional analysis.
type SimulationHandler struct {
	engine   *simulation.Engine
	traffic  *traffic.Service
	analysis *analysis.Service
	logger   zerolog.Logger
}

// NewSimulationHandler creates a new SimulationHandler. The traffic and
// analysis services may be nil; the corresponding request options then
// degrade to defaults instead of failing.
func NewSimulationHandler(engine *simulation.Engine, trafficSvc *traffic.Service, analysisSvc *analysis.Service, logger zerolog.Logger) *SimulationHandler {
	return &SimulationHandler{
		engine:   engine,
		traffic:  trafficSvc,
		analysis: analysisSvc,
		logger:   logger,
	}
}

// RunSimulation handles POST /v1/simulations:run.
func (h *SimulationHandler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	var req models.RunSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}

	scenario := simulation.Scenario(req.Scenario)
	if !scenario.Valid() {
		response.BadRequest(w, r, "unknown scenario: "+req.Scenario, []models.FieldError{
			{Field: "scenario", Message: "must be one of traffic, growth, environmental, density", Code: "INVALID_ENUM"},
		})
		return
	}

	input := simulation.Input{
		Scenario:   scenario,
		Parameters: req.Parameters,
	}
	if req.UseLiveData && scenario == simulation.ScenarioTraffic {
		input.LiveCongestion = h.liveCongestion(r)
	}

	result, err := h.engine.Run(input)
	if err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	resp := models.RunSimulationResponse{Run: simulationRun(result)}
	if req.IncludeAnalysis && h.analysis != nil {
		payload, err := json.Marshal(result)
		if err == nil {
			analysisResult := h.analysis.Analyze(r.Context(), analysis.Request{
				Payload: payload,
				Kind:    analysisKind(scenario),
			})
			resp.Analysis = analysisResultModel(analysisResult)
		}
	}

	response.JSON(w, r, http.StatusOK, resp)
}

// liveCongestion aggregates current traffic and returns the average
// congestion. A nil return means no live data; the run falls back to
// the caller's parameters.
func (h *SimulationHandler) liveCongestion(r *http.Request) *int {
	if h.traffic == nil {
		return nil
	}
	records, err := h.traffic.Aggregate(r.Context(), traffic.Filter{})
	if err != nil {
		h.logger.Warn().Err(err).Msg("live traffic unavailable, simulating without it")
		return nil
	}
	hasLive := false
	for _, rec := range records {
		if rec.Live {
			hasLive = true
			break
		}
	}
	if !hasLive {
		return nil
	}
	avg := traffic.AverageCongestion(records)
	return &avg
}

// analysisKind maps a scenario to the matching analysis prompt kind.
func analysisKind(scenario simulation.Scenario) analysis.Kind {
	switch scenario {
	case simulation.ScenarioTraffic:
		return analysis.KindTraffic
	case simulation.ScenarioGrowth:
		return analysis.KindGrowth
	case simulation.ScenarioEnvironmental:
		return analysis.KindEnvironmental
	case simulation.ScenarioDensity:
		return analysis.KindDensity
	}
	return analysis.KindGeneral
}

// simulationRun converts an engine result to the API representation.
func simulationRun(result *simulation.Result) models.SimulationRun {
	run := models.SimulationRun{
		RunID:       result.RunID,
		Scenario:    string(result.Scenario),
		Metrics:     result.Metrics,
		Hotspots:    make([]models.Hotspot, 0, len(result.Hotspots)),
		UsedLive:    result.UsedLive,
		CompletedAt: models.Timestamp(result.CompletedAt),
	}
	for _, hs := range result.Hotspots {
		run.Hotspots = append(run.Hotspots, models.Hotspot{Name: hs.Name, Level: string(hs.Level)})
	}
	return run
}

// analysisResultModel converts an analysis result to the API representation.
func analysisResultModel(result *analysis.Result) *models.AnalysisResult {
	if result == nil {
		return nil
	}
	return &models.AnalysisResult{
		Recommendations: result.Recommendations,
		Insights:        result.Insights,
		Forecast:        result.Forecast,
		Metrics:         result.Metrics,
	}
}
