package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/citypulse/citypulse/internal/api/models"
	"github.com/citypulse/citypulse/internal/api/response"
	"github.com/citypulse/citypulse/internal/cityprofile"
)

// CityProfileHandler handles city profile endpoints.
type CityProfileHandler struct{}

// NewCityProfileHandler creates a new CityProfileHandler.
func NewCityProfileHandler() *CityProfileHandler {
	return &CityProfileHandler{}
}

// GetProfile handles GET /v1/cities/{cityName}/profile.
// Profiles are derived, not stored, so every non-blank name resolves.
func (h *CityProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "cityName")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if strings.TrimSpace(name) == "" {
		response.BadRequest(w, r, "city name must not be blank", []models.FieldError{
			{Field: "cityName", Message: "must contain at least one non-space character", Code: "REQUIRED"},
		})
		return
	}

	profile := cityprofile.For(name)
	resp := models.CityProfile{
		City:    profile.City,
		Key:     profile.Key,
		Metrics: make([]models.CityMetric, 0, len(profile.Metrics)),
	}
	for _, m := range profile.Metrics {
		resp.Metrics = append(resp.Metrics, models.CityMetric{Name: m.Name, Value: m.Value, Unit: m.Unit})
	}
	response.JSON(w, r, http.StatusOK, resp)
}
