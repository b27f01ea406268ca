// Package handlers provides HTTP handlers for symbolic operator algebra.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/spinworks/qop/internal/modules/algebra"
	"github.com/spinworks/qop/pkg/operators"
	"github.com/spinworks/qop/pkg/transforms"
)

// Handler handles algebra HTTP requests
type Handler struct {
	maxQubits int
	log       zerolog.Logger
}

// NewHandler creates a new algebra handler.
// maxQubits caps the qubit budget accepted by transform requests.
func NewHandler(maxQubits int, log zerolog.Logger) *Handler {
	return &Handler{
		maxQubits: maxQubits,
		log:       log.With().Str("handler", "algebra").Logger(),
	}
}

// BinaryRequest carries two operands for add/multiply.
type BinaryRequest struct {
	A algebra.OperatorDTO `json:"a"`
	B algebra.OperatorDTO `json:"b"`
}

// ScaleRequest carries an operator and a complex scalar.
type ScaleRequest struct {
	Operator algebra.OperatorDTO `json:"operator"`
	Scalar   algebra.ComplexDTO  `json:"scalar"`
}

// UnaryRequest carries a single operand.
type UnaryRequest struct {
	Operator algebra.OperatorDTO `json:"operator"`
}

// TransformRequest maps a fermionic operator to qubits.
// Encoding is "jordan_wigner" or "bravyi_kitaev"; NQubits is required for
// Bravyi-Kitaev and ignored for Jordan-Wigner.
type TransformRequest struct {
	Operator algebra.OperatorDTO `json:"operator"`
	Encoding string              `json:"encoding"`
	NQubits  int                 `json:"n_qubits"`
}

// HandleAdd handles POST /api/algebra/add
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req BinaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	a, err := algebra.ParseOperator(req.A)
	if err != nil {
		h.writeError(w, err)
		return
	}
	b, err := algebra.ParseOperator(req.B)
	if err != nil {
		h.writeError(w, err)
		return
	}

	result, err := operators.Add(a, b)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeResult(w, result)
}

// HandleMultiply handles POST /api/algebra/multiply
func (h *Handler) HandleMultiply(w http.ResponseWriter, r *http.Request) {
	var req BinaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	a, err := algebra.ParseOperator(req.A)
	if err != nil {
		h.writeError(w, err)
		return
	}
	b, err := algebra.ParseOperator(req.B)
	if err != nil {
		h.writeError(w, err)
		return
	}

	result, err := operators.Mul(a, b)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeResult(w, result)
}

// HandleScale handles POST /api/algebra/scale
func (h *Handler) HandleScale(w http.ResponseWriter, r *http.Request) {
	var req ScaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	op, err := algebra.ParseOperator(req.Operator)
	if err != nil {
		h.writeError(w, err)
		return
	}

	result := operators.Scale(op, complex(req.Scalar.Real, req.Scalar.Imag))
	h.writeResult(w, result)
}

// HandleConjugate handles POST /api/algebra/conjugate
func (h *Handler) HandleConjugate(w http.ResponseWriter, r *http.Request) {
	var req UnaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	op, err := algebra.ParseOperator(req.Operator)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeResult(w, operators.HermitianConjugate(op))
}

// HandleTransform handles POST /api/algebra/transform
func (h *Handler) HandleTransform(w http.ResponseWriter, r *http.Request) {
	var req TransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error().Err(err).Msg("Failed to decode request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fermion, err := algebra.ParseFermion(req.Operator)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if fermion.Modes() > h.maxQubits {
		http.Error(w, "Operator exceeds configured qubit limit", http.StatusBadRequest)
		return
	}

	var result *operators.QubitOperator
	switch req.Encoding {
	case "jordan_wigner":
		result = transforms.JordanWigner(fermion)
	case "bravyi_kitaev":
		result, err = transforms.BravyiKitaev(fermion, req.NQubits)
		if err != nil {
			h.writeError(w, err)
			return
		}
	default:
		http.Error(w, "Unknown encoding (expected jordan_wigner or bravyi_kitaev)", http.StatusBadRequest)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"operator":  algebra.RenderOperator(result),
			"encoding":  req.Encoding,
			"num_terms": result.NumTerms(),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}

	h.writeJSON(w, http.StatusOK, response)
}

// writeResult wraps an operator in the standard data/metadata envelope.
func (h *Handler) writeResult(w http.ResponseWriter, op operators.Operator) {
	response := map[string]interface{}{
		"data": map[string]interface{}{
			"operator":  algebra.RenderOperator(op),
			"num_terms": op.NumTerms(),
			"rendered":  op.String(),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// writeError maps domain errors to 400 and everything else to 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, operators.ErrInvalidAction) ||
		errors.Is(err, operators.ErrIncompatibleOperators) ||
		errors.Is(err, operators.ErrInsufficientQubits) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.log.Error().Err(err).Msg("Algebra operation failed")
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
