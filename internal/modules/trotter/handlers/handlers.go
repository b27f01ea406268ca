// Package handlers provides HTTP handlers for Trotter decomposition.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/spinworks/qop/internal/modules/algebra"
	"github.com/spinworks/qop/internal/modules/trotter"
	"github.com/spinworks/qop/pkg/operators"
)

// Handler handles trotter HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new trotter handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "trotter").Logger(),
	}
}

// DecomposeRequest asks for a first-order decomposition of exp(-i H t).
type DecomposeRequest struct {
	Operator algebra.OperatorDTO `json:"operator"`
	Time     float64             `json:"time"`
	Steps    int                 `json:"steps"`
}

// StepDTO is one exponential factor in a slice.
type StepDTO struct {
	Factors []algebra.FactorDTO `json:"factors"`
	Angle   float64             `json:"angle"`
}

// HandleDecompose handles POST /api/trotter/decompose
func (h *Handler) HandleDecompose(w http.ResponseWriter, r *http.Request) {
	var req DecomposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	hamiltonian, err := algebra.ParseQubit(req.Operator)
	if err != nil {
		if errors.Is(err, operators.ErrInvalidAction) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Failed to parse operator")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	decomposition, err := trotter.Decompose(hamiltonian, req.Time, req.Steps)
	if err != nil {
		// Decompose fails only on validation (step count, Hermiticity)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	steps := make([]StepDTO, 0, len(decomposition.Steps))
	for _, s := range decomposition.Steps {
		steps = append(steps, StepDTO{
			Factors: algebra.RenderTerm(s.Term),
			Angle:   s.Angle,
		})
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"steps":              steps,
			"global_phase":       decomposition.GlobalPhase,
			"time_step":          decomposition.TimeStep,
			"num_steps":          decomposition.NumSteps,
			"total_exponentials": decomposition.TotalExponentials(),
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
