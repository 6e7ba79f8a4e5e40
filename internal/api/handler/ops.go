// Package handler provides HTTP handlers for the CityPulse API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/citypulse/citypulse/internal/api/models"
	"github.com/citypulse/citypulse/internal/api/response"
	"github.com/citypulse/citypulse/internal/provider/resilience"
)

// ReadyCheck reports whether a dependency is ready to serve traffic.
type ReadyCheck func(ctx context.Context) error

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version     string
	buildTime   string
	registry    *resilience.Registry
	readyChecks map[string]ReadyCheck
}

// NewOpsHandler creates a new OpsHandler. The registry may be nil when no
// external providers are configured; readyChecks may be empty.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry, readyChecks map[string]ReadyCheck) *OpsHandler {
	return &OpsHandler{
		version:     version,
		buildTime:   buildTime,
		registry:    registry,
		readyChecks: readyChecks,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// It runs every configured dependency check and fails closed.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	details := make(map[string]interface{})
	for name, check := range h.readyChecks {
		if err := check(ctx); err != nil {
			health.Status = models.HealthStatusFail
			details[name] = err.Error()
		} else {
			details[name] = "ok"
		}
	}
	if len(details) > 0 {
		health.Details = details
	}

	status := http.StatusOK
	if health.Status == models.HealthStatusFail {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, r, status, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       now,
		Subsystems: []models.SubsystemStatus{},
		Providers:  []models.ProviderStatus{},
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	for name, check := range h.readyChecks {
		sub := models.SubsystemStatus{Name: name, Status: models.HealthStatusOK}
		if err := check(ctx); err != nil {
			sub.Status = models.HealthStatusFail
			detail := err.Error()
			sub.Detail = &detail
			status.Status = models.HealthStatusDegraded
		}
		status.Subsystems = append(status.Subsystems, sub)
	}

	if h.registry != nil {
		for _, health := range h.registry.GetAllHealth() {
			status.Providers = append(status.Providers, providerStatus(health))
			if !health.IsHealthy() {
				status.Status = models.HealthStatusDegraded
			}
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

// providerStatus converts registry health into the API representation.
func providerStatus(h *resilience.ProviderHealth) models.ProviderStatus {
	ps := models.ProviderStatus{
		Provider: h.Name,
		Status:   models.HealthStatusOK,
	}
	switch {
	case h.IsUnhealthy():
		ps.Status = models.HealthStatusFail
	case h.IsDegraded():
		ps.Status = models.HealthStatusDegraded
	}
	if h.LastSuccessAt != nil {
		ts := models.Timestamp(*h.LastSuccessAt)
		ps.LastSuccessAt = &ts
	}
	if h.LastFailureAt != nil {
		ts := models.Timestamp(*h.LastFailureAt)
		ps.LastFailureAt = &ts
	}
	if h.LastError != "" {
		msg := h.LastError
		ps.Message = &msg
	}
	return ps
}
