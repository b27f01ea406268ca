package chemistry

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/spinworks/qop/pkg/linalg"
	"github.com/spinworks/qop/pkg/operators"
)

// matrixTolerance bounds the allowed deviation from the Hermiticity and
// antisymmetry constraints on the coefficient matrices.
const matrixTolerance = 1e-9

// ErrInvalidCoefficients reports coefficient matrices that violate the
// structure a quadratic Hamiltonian requires.
var ErrInvalidCoefficients = errors.New("chemistry: invalid coefficient matrices")

// QuadraticHamiltonian is a Hamiltonian quadratic in the ladder operators,
//
//	H = c + Σ M[p,q] a†_p a_q + ½ Σ (Δ[p,q] a†_p a†_q + Δ*[p,q] a_q a_p)
//
// with M Hermitian and Δ antisymmetric. A nil Δ gives a particle-conserving
// Hamiltonian. Instances are immutable.
type QuadraticHamiltonian struct {
	constant complex128
	hermit   *mat.CDense // n x n, Hermitian
	pairing  *mat.CDense // n x n antisymmetric, nil when particle-conserving
}

// NewQuadraticHamiltonian validates the coefficient matrices and builds a
// quadratic Hamiltonian. The matrices are copied.
func NewQuadraticHamiltonian(constant complex128, hermit, pairing *mat.CDense) (*QuadraticHamiltonian, error) {
	n, cols := hermit.Dims()
	if n != cols {
		return nil, fmt.Errorf("%w: hermitian part is %dx%d, want square", ErrInvalidCoefficients, n, cols)
	}

	for p := 0; p < n; p++ {
		for q := p; q < n; q++ {
			if cmplx.Abs(hermit.At(p, q)-cmplx.Conj(hermit.At(q, p))) > matrixTolerance {
				return nil, fmt.Errorf("%w: hermitian part asymmetric at (%d,%d)", ErrInvalidCoefficients, p, q)
			}
		}
	}

	if pairing != nil {
		pr, pc := pairing.Dims()
		if pr != n || pc != n {
			return nil, fmt.Errorf("%w: pairing part is %dx%d, want %dx%d", ErrInvalidCoefficients, pr, pc, n, n)
		}
		for p := 0; p < n; p++ {
			for q := p; q < n; q++ {
				if cmplx.Abs(pairing.At(p, q)+pairing.At(q, p)) > matrixTolerance {
					return nil, fmt.Errorf("%w: pairing part not antisymmetric at (%d,%d)", ErrInvalidCoefficients, p, q)
				}
			}
		}
		if isZeroMatrix(pairing) {
			pairing = nil
		}
	}

	h := &QuadraticHamiltonian{constant: constant}
	h.hermit = mat.NewCDense(n, n, nil)
	h.hermit.Copy(hermit)
	if pairing != nil {
		h.pairing = mat.NewCDense(n, n, nil)
		h.pairing.Copy(pairing)
	}
	return h, nil
}

func isZeroMatrix(a *mat.CDense) bool {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if cmplx.Abs(a.At(i, j)) > matrixTolerance {
				return false
			}
		}
	}
	return true
}

// Modes returns the number of fermionic modes.
func (h *QuadraticHamiltonian) Modes() int {
	n, _ := h.hermit.Dims()
	return n
}

// Constant returns the scalar offset.
func (h *QuadraticHamiltonian) Constant() complex128 { return h.constant }

// ConservesParticles reports whether the Hamiltonian commutes with the
// total number operator, i.e. has no pairing part.
func (h *QuadraticHamiltonian) ConservesParticles() bool { return h.pairing == nil }

// FermionOperator expands the Hamiltonian into an explicit operator sum.
func (h *QuadraticHamiltonian) FermionOperator() *operators.FermionOperator {
	n := h.Modes()
	op := operators.FermionIdentity(h.constant)

	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			if c := h.hermit.At(p, q); c != 0 {
				term, _ := operators.NewFermionOperator(c,
					operators.Raise(p), operators.Lower(q))
				op = op.Add(term)
			}
			if h.pairing == nil {
				continue
			}
			if c := h.pairing.At(p, q); c != 0 {
				// Both the raising and lowering halves carry the ½ so the
				// antisymmetric double counting over (p,q) and (q,p) cancels.
				raise, _ := operators.NewFermionOperator(c/2,
					operators.Raise(p), operators.Raise(q))
				lower, _ := operators.NewFermionOperator(cmplx.Conj(c)/2,
					operators.Lower(q), operators.Lower(p))
				op = op.Add(raise).Add(lower)
			}
		}
	}

	return op.Pruned(operators.DefaultTolerance)
}

// OrbitalEnergies returns the ascending single-particle energies of a
// particle-conserving Hamiltonian, i.e. the eigenvalues of its Hermitian
// coefficient matrix.
func (h *QuadraticHamiltonian) OrbitalEnergies() ([]float64, error) {
	if !h.ConservesParticles() {
		return nil, fmt.Errorf("%w: orbital energies require a particle-conserving hamiltonian", ErrInvalidCoefficients)
	}
	return linalg.HermitianEigenvalues(h.hermit)
}
