// Package trotter produces first-order Trotter decompositions of time
// evolution under a qubit Hamiltonian.
package trotter

import (
	"errors"
	"fmt"
	"math"

	"github.com/spinworks/qop/pkg/operators"
)

// hermiticityTolerance bounds the imaginary part allowed on a Hamiltonian
// coefficient. Pauli strings are Hermitian, so a Hermitian operator has
// real coefficients.
const hermiticityTolerance = 1e-9

// ErrNotHermitian reports a Hamiltonian with complex coefficients.
var ErrNotHermitian = errors.New("trotter: hamiltonian is not hermitian")

// Step is one exponential factor exp(-i * Angle * Term) in a Trotter slice.
type Step struct {
	Term  operators.Term
	Angle float64
}

// Decomposition approximates exp(-i H t) as NumSteps repetitions of the
// Steps sequence, times a global phase from the identity part of H.
type Decomposition struct {
	Steps       []Step
	GlobalPhase float64
	TimeStep    float64
	NumSteps    int
}

// Decompose splits evolution under h for the given time into steps
// first-order Trotter slices. The identity component of h commutes with
// everything and is folded into the global phase exactly.
func Decompose(h *operators.QubitOperator, time float64, steps int) (*Decomposition, error) {
	if steps < 1 {
		return nil, fmt.Errorf("trotter: step count %d, want at least 1", steps)
	}

	dt := time / float64(steps)
	d := &Decomposition{TimeStep: dt, NumSteps: steps}

	for _, tv := range h.Terms() {
		if math.Abs(imag(tv.Coefficient)) > hermiticityTolerance {
			return nil, fmt.Errorf("%w: coefficient %v on %s", ErrNotHermitian, tv.Coefficient, tv.Term)
		}
		coeff := real(tv.Coefficient)

		if tv.Term.IsIdentity() {
			d.GlobalPhase = -coeff * time
			continue
		}

		d.Steps = append(d.Steps, Step{Term: tv.Term, Angle: coeff * dt})
	}

	return d, nil
}

// TotalExponentials returns the number of exponential factors across all
// slices, a proxy for circuit depth.
func (d *Decomposition) TotalExponentials() int {
	return len(d.Steps) * d.NumSteps
}
