// internal/server/handler.go

// Package server exposes the report engine over HTTP.
package server

import (
	"encoding/json"
	"net/http"

	commonerrors "compliance-engine/internal/common/errors"
	"compliance-engine/internal/common/logger"
	"compliance-engine/internal/common/validation"
	"compliance-engine/internal/report"
)

// generateRequestSchema validates the report request before any upstream
// call is made.
const generateRequestSchema = `{
	"type": "object",
	"required": ["address"],
	"properties": {
		"address": {"type": "string", "minLength": 1},
		"jurisdiction": {"type": "string", "minLength": 1}
	},
	"additionalProperties": false
}`

// Handler serves the compliance report API.
type Handler struct {
	engine              *report.Engine
	defaultJurisdiction string
	log                 logger.Logger
}

func NewHandler(engine *report.Engine, defaultJurisdiction string, log logger.Logger) *Handler {
	if defaultJurisdiction == "" {
		defaultJurisdiction = "nyc"
	}
	return &Handler{engine: engine, defaultJurisdiction: defaultJurisdiction, log: log}
}

type generateRequest struct {
	Address      string `json:"address"`
	Jurisdiction string `json:"jurisdiction"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Generate handles POST /api/compliance/generate.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	result, err := validation.ValidateJSON(raw, generateRequestSchema)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "request validation unavailable")
		return
	}
	if !result.Valid {
		h.writeError(w, http.StatusBadRequest, result.ErrorString())
		return
	}

	var req generateRequest
	if addr, ok := raw["address"].(string); ok {
		req.Address = addr
	}
	if jur, ok := raw["jurisdiction"].(string); ok {
		req.Jurisdiction = jur
	}
	if req.Jurisdiction == "" {
		req.Jurisdiction = h.defaultJurisdiction
	}

	rep, err := h.engine.Generate(r.Context(), req.Jurisdiction, req.Address)
	if err != nil {
		h.log.WithError(err).Warn("report generation failed", map[string]interface{}{
			"address":      req.Address,
			"jurisdiction": req.Jurisdiction,
		})
		status := http.StatusInternalServerError
		switch {
		case commonerrors.IsCode(err, commonerrors.ErrCodeResolutionFailed),
			commonerrors.IsCode(err, commonerrors.ErrCodeGeocoderUnreachable):
			status = http.StatusNotFound
		case commonerrors.IsCode(err, commonerrors.ErrCodeUnknownJurisdiction):
			status = http.StatusBadRequest
		}
		h.writeError(w, status, errorMessage(err))
		return
	}

	h.writeJSON(w, http.StatusOK, rep)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "healthy",
		"service":       "compliance-engine",
		"jurisdictions": h.engine.Jurisdictions(),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Success: false, Error: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.WithError(err).Error("failed to encode response", nil)
	}
}

// errorMessage keeps the public message human-readable while the details stay
// in the logs.
func errorMessage(err error) string {
	if stdErr, ok := err.(*commonerrors.StandardError); ok {
		return stdErr.Message
	}
	return "internal error"
}
