package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/basereg/internal/calculation"
	"github.com/rgehrsitz/basereg/internal/config"
	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds a simulation request body
const maxBodyBytes = 1 << 20

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *calculation.Engine
	Parser *config.InputParser
	Info   config.ReferenceInfo
	Logger *logrus.Logger
}

// NewHandler creates a handler around a shared engine. The engine's reference
// data is read-only so concurrent requests need no coordination.
func NewHandler(engine *calculation.Engine, info config.ReferenceInfo, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		Engine: engine,
		Parser: config.NewInputParser(),
		Info:   info,
		Logger: logger,
	}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ConfigInfo reports the loaded reference tables
func (h *Handler) ConfigInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Info)
}

// Simulate runs one computation for the posted request
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	log := h.Logger.WithFields(logrus.Fields{
		"run_id":     runID,
		"request_id": middleware.GetReqID(r.Context()),
	})

	var in config.RequestInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		verr := domain.NewValidationError(domain.KindInvalidInputShape, "", "", err.Error())
		log.WithError(verr).Info("rejected request body")
		writeError(w, runID, verr)
		return
	}

	req, err := h.Parser.ToRequest(in)
	if err != nil {
		log.WithError(err).Info("rejected simulation request")
		writeError(w, runID, err)
		return
	}

	outcome, err := h.Engine.Simulate(*req)
	if err != nil {
		if domain.IsClientError(err) {
			log.WithError(err).Info("rejected simulation request")
		} else {
			log.WithError(err).Error("simulation failed")
		}
		writeError(w, runID, err)
		return
	}

	log.WithFields(logrus.Fields{
		"chosen_scheme":   outcome.Chosen,
		"regulatory_base": outcome.ChosenResult().Statistics.RegulatoryBase.StringFixed(2),
	}).Info("simulation completed")

	writeJSON(w, http.StatusOK, SimulateResponse{
		RunID:             runID,
		Extraction:        describeRecords(req.Records),
		SimulationOutcome: outcome,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps caller mistakes to 400 and everything else to 500
func writeError(w http.ResponseWriter, runID string, err error) {
	resp := ErrorResponse{Error: "Simulation failed", Details: err.Error(), RunID: runID}
	status := http.StatusInternalServerError

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Kind = string(ve.Kind)
		resp.Field = ve.Field
	}
	if domain.IsClientError(err) {
		status = http.StatusBadRequest
		resp.Error = "Invalid simulation request"
	}
	writeJSON(w, status, resp)
}
