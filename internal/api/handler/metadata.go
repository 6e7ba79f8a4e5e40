package handler

import (
	"net/http"

	"github.com/citypulse/citypulse/internal/analysis"
	"github.com/citypulse/citypulse/internal/api/models"
	"github.com/citypulse/citypulse/internal/api/response"
	"github.com/citypulse/citypulse/internal/catalog"
	"github.com/citypulse/citypulse/internal/simulation"
	"github.com/citypulse/citypulse/internal/traffic"
)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct {
	catalog catalog.Repository
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(repo catalog.Repository) *MetadataHandler {
	return &MetadataHandler{catalog: repo}
}

// ListAreas handles GET /v1/metadata/areas.
func (h *MetadataHandler) ListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.catalog.ListAreas(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to load area catalog")
		return
	}

	list := models.AreaList{Items: make([]models.AreaSummary, 0, len(areas))}
	for _, area := range areas {
		roadTypes := make([]string, 0, len(area.RoadTypes))
		for _, rt := range area.RoadTypes {
			roadTypes = append(roadTypes, string(rt))
		}
		list.Items = append(list.Items, models.AreaSummary{
			ID:        area.ID,
			Name:      area.Name,
			Point:     models.Point{Lat: area.Lat, Lon: area.Lon},
			RoadTypes: roadTypes,
		})
	}
	list.Count = len(list.Items)
	response.JSON(w, r, http.StatusOK, list)
}

// GetEnums handles GET /v1/metadata/enums - get enum values used by the API.
func (h *MetadataHandler) GetEnums(w http.ResponseWriter, r *http.Request) {
	enums := models.Enums{
		Scenarios:       make([]string, 0, len(simulation.AllScenarios)),
		RoadTypes:       make([]string, 0, len(catalog.AllRoadTypes)),
		SeverityBuckets: make([]string, 0, len(traffic.AllSeverities)),
		TrafficMetrics: []string{
			traffic.MetricCongestion,
			traffic.MetricSpeed,
			traffic.MetricTravelTime,
			traffic.MetricVolume,
			traffic.MetricIncidents,
		},
		AnalysisKinds: make([]string, 0, len(analysis.AllKinds)),
	}
	for _, s := range simulation.AllScenarios {
		enums.Scenarios = append(enums.Scenarios, string(s))
	}
	for _, rt := range catalog.AllRoadTypes {
		enums.RoadTypes = append(enums.RoadTypes, string(rt))
	}
	for _, sev := range traffic.AllSeverities {
		enums.SeverityBuckets = append(enums.SeverityBuckets, string(sev))
	}
	for _, k := range analysis.AllKinds {
		enums.AnalysisKinds = append(enums.AnalysisKinds, string(k))
	}
	response.JSON(w, r, http.StatusOK, enums)
}
