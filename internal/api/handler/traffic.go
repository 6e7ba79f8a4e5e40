package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/citypulse/citypulse/internal/api/models"
	"github.com/citypulse/citypulse/internal/api/response"
	"github.com/citypulse/citypulse/internal/catalog"
	"github.com/citypulse/citypulse/internal/traffic"
)

// TrafficHandler handles traffic aggregation endpoints.
type TrafficHandler struct {
	service *traffic.Service
}

// NewTrafficHandler creates a new TrafficHandler.
func NewTrafficHandler(service *traffic.Service) *TrafficHandler {
	return &TrafficHandler{service: service}
}

// AggregateTraffic handles POST /v1/traffic:aggregate.
// An empty body aggregates every catalog area with no filters.
func (h *TrafficHandler) AggregateTraffic(w http.ResponseWriter, r *http.Request) {
	var req models.AggregateTrafficRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}

	filter, fieldErrs := trafficFilter(req)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid filter", fieldErrs)
		return
	}

	records, err := h.service.Aggregate(r.Context(), filter)
	if err != nil {
		response.InternalError(w, r, "failed to load area catalog")
		return
	}

	resp := models.AggregateTrafficResponse{
		Records:     make([]models.TrafficRecord, 0, len(records)),
		GeneratedAt: models.Timestamp(time.Now()),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, trafficRecord(rec))
	}
	resp.Count = len(resp.Records)
	response.JSON(w, r, http.StatusOK, resp)
}

// trafficFilter validates the request filters and converts them to the
// domain filter type.
func trafficFilter(req models.AggregateTrafficRequest) (traffic.Filter, []models.FieldError) {
	var fieldErrs []models.FieldError

	filter := traffic.Filter{
		Areas:           req.Areas,
		RequiredMetrics: req.RequiredMetrics,
	}
	for _, rt := range req.RoadTypes {
		roadType := catalog.RoadType(rt)
		if !roadType.Valid() {
			fieldErrs = append(fieldErrs, models.FieldError{
				Field:   "roadTypes",
				Message: "unknown road type: " + rt,
				Code:    "INVALID_ENUM",
			})
			continue
		}
		filter.RoadTypes = append(filter.RoadTypes, roadType)
	}
	for _, sev := range req.SeverityBuckets {
		severity := traffic.Severity(sev)
		if !severity.Valid() {
			fieldErrs = append(fieldErrs, models.FieldError{
				Field:   "severityBuckets",
				Message: "unknown severity bucket: " + sev,
				Code:    "INVALID_ENUM",
			})
			continue
		}
		filter.SeverityBuckets = append(filter.SeverityBuckets, severity)
	}
	return filter, fieldErrs
}

// trafficRecord converts a domain record to the API representation.
func trafficRecord(rec *traffic.Record) models.TrafficRecord {
	return models.TrafficRecord{
		AreaID:        rec.AreaID,
		AreaName:      rec.AreaName,
		RoadType:      string(rec.RoadType),
		Congestion:    rec.Congestion,
		Severity:      string(traffic.CongestionBucket(rec.Congestion)),
		SpeedKmh:      rec.SpeedKmh,
		TravelTimeMin: rec.TravelTimeMin,
		VolumePerHour: rec.VolumePerHour,
		IncidentCount: rec.IncidentCount,
		Live:          rec.Live,
		Timestamp:     models.Timestamp(rec.Timestamp),
	}
}
