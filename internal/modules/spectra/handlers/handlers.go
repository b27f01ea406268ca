// Package handlers provides HTTP handlers for spectrum computation.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/spinworks/qop/internal/modules/algebra"
	"github.com/spinworks/qop/internal/modules/spectra"
	"github.com/spinworks/qop/pkg/linalg"
	"github.com/spinworks/qop/pkg/operators"
)

// Handler handles spectra HTTP requests
type Handler struct {
	service *spectra.Service
	log     zerolog.Logger
}

// NewHandler creates a new spectra handler
func NewHandler(service *spectra.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "spectra").Logger(),
	}
}

// ComputeRequest asks for the eigenvalues of a qubit operator.
// NQubits defaults to the operator's own qubit count when zero.
type ComputeRequest struct {
	Operator algebra.OperatorDTO `json:"operator"`
	NQubits  int                 `json:"n_qubits"`
}

// HandleCompute handles POST /api/spectra/compute
func (h *Handler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	op, err := algebra.ParseQubit(req.Operator)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	nQubits := req.NQubits
	if nQubits == 0 {
		nQubits = op.Qubits()
	}
	if nQubits < 1 {
		http.Error(w, "n_qubits must be at least 1", http.StatusBadRequest)
		return
	}

	eigenvalues, cached, err := h.service.Spectrum(op, nQubits)
	if err != nil {
		if errors.Is(err, operators.ErrInsufficientQubits) || errors.Is(err, linalg.ErrNotHermitian) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Spectrum computation failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"eigenvalues": eigenvalues,
			"n_qubits":    nQubits,
			"dimension":   len(eigenvalues),
			"ground":      eigenvalues[0],
		},
		"metadata": map[string]interface{}{
			"cached":    cached,
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleStats handles GET /api/spectra/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CachedCount()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read cache stats")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"cached_spectra": count,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
