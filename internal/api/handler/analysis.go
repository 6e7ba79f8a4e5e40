package handler

import (
	"encoding/json"
	"net/http"

	"github.com/citypulse/citypulse/internal/analysis"
	"github.com/citypulse/citypulse/internal/api/models"
	"github.com/citypulse/citypulse/internal/api/response"
)

// AnalysisHandler handles analysis endpoints.
type AnalysisHandler struct {
	service *analysis.Service
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(service *analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Analyze handles POST /v1/analysis. The endpoint always returns a
// structured result; backend failures degrade to canned output.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}
	if len(req.Payload) == 0 {
		response.BadRequest(w, r, "payload is required", []models.FieldError{
			{Field: "payload", Message: "must be a JSON value", Code: "REQUIRED"},
		})
		return
	}

	result := h.service.Analyze(r.Context(), analysis.Request{
		Payload: req.Payload,
		Kind:    analysis.Kind(req.Kind),
	})
	response.JSON(w, r, http.StatusOK, analysisResultModel(result))
}
