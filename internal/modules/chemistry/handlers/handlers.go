// Package handlers provides HTTP handlers for Hamiltonian construction.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/spinworks/qop/internal/modules/algebra"
	"github.com/spinworks/qop/internal/modules/chemistry"
	"github.com/spinworks/qop/pkg/operators"
)

// Handler handles chemistry HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new chemistry handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "chemistry").Logger(),
	}
}

// OneBodyDTO is one h[p,q] a†_p a_q coefficient.
type OneBodyDTO struct {
	P           int                `json:"p"`
	Q           int                `json:"q"`
	Coefficient algebra.ComplexDTO `json:"coefficient"`
}

// TwoBodyDTO is one h[p,q,r,s] a†_p a†_q a_r a_s coefficient.
type TwoBodyDTO struct {
	P           int                `json:"p"`
	Q           int                `json:"q"`
	R           int                `json:"r"`
	S           int                `json:"s"`
	Coefficient algebra.ComplexDTO `json:"coefficient"`
}

// MolecularRequest carries the coefficient tables of a molecular
// Hamiltonian.
type MolecularRequest struct {
	Constant algebra.ComplexDTO `json:"constant"`
	OneBody  []OneBodyDTO       `json:"one_body"`
	TwoBody  []TwoBodyDTO       `json:"two_body"`
}

// QuadraticRequest carries the coefficient matrices of a quadratic
// Hamiltonian as row-major nested arrays. Pairing may be omitted for
// particle-conserving Hamiltonians.
type QuadraticRequest struct {
	Constant  algebra.ComplexDTO     `json:"constant"`
	Hermitian [][]algebra.ComplexDTO `json:"hermitian"`
	Pairing   [][]algebra.ComplexDTO `json:"pairing"`
}

// HandleMolecular handles POST /api/chemistry/molecular
func (h *Handler) HandleMolecular(w http.ResponseWriter, r *http.Request) {
	var req MolecularRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	oneBody := make(map[[2]int]complex128, len(req.OneBody))
	for _, e := range req.OneBody {
		oneBody[[2]int{e.P, e.Q}] += complex(e.Coefficient.Real, e.Coefficient.Imag)
	}
	twoBody := make(map[[4]int]complex128, len(req.TwoBody))
	for _, e := range req.TwoBody {
		twoBody[[4]int{e.P, e.Q, e.R, e.S}] += complex(e.Coefficient.Real, e.Coefficient.Imag)
	}

	hamiltonian, err := chemistry.MolecularHamiltonian(
		complex(req.Constant.Real, req.Constant.Imag), oneBody, twoBody)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"operator":  algebra.RenderOperator(hamiltonian),
			"num_terms": hamiltonian.NumTerms(),
			"modes":     hamiltonian.Modes(),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// HandleQuadratic handles POST /api/chemistry/quadratic
func (h *Handler) HandleQuadratic(w http.ResponseWriter, r *http.Request) {
	var req QuadraticRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	hermit, err := parseMatrix(req.Hermitian)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var pairing *mat.CDense
	if len(req.Pairing) > 0 {
		pairing, err = parseMatrix(req.Pairing)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	hamiltonian, err := chemistry.NewQuadraticHamiltonian(
		complex(req.Constant.Real, req.Constant.Imag), hermit, pairing)
	if err != nil {
		h.writeError(w, err)
		return
	}

	data := map[string]interface{}{
		"operator":            algebra.RenderOperator(hamiltonian.FermionOperator()),
		"modes":               hamiltonian.Modes(),
		"conserves_particles": hamiltonian.ConservesParticles(),
	}
	if hamiltonian.ConservesParticles() {
		energies, err := hamiltonian.OrbitalEnergies()
		if err != nil {
			h.log.Error().Err(err).Msg("Orbital energy computation failed")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		data["orbital_energies"] = energies
	}

	response := map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// parseMatrix converts a row-major nested array into a square CDense.
func parseMatrix(rows [][]algebra.ComplexDTO) (*mat.CDense, error) {
	n := len(rows)
	if n == 0 {
		return nil, errors.New("matrix must have at least one row")
	}
	out := mat.NewCDense(n, n, nil)
	for i, row := range rows {
		if len(row) != n {
			return nil, errors.New("matrix rows must all have the same length as the row count")
		}
		for j, c := range row {
			out.Set(i, j, complex(c.Real, c.Imag))
		}
	}
	return out, nil
}

// writeError maps validation errors to 400 and everything else to 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, chemistry.ErrInvalidCoefficients) ||
		errors.Is(err, operators.ErrInvalidAction) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.log.Error().Err(err).Msg("Chemistry operation failed")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
