package linalg

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/spinworks/qop/pkg/operators"
)

// hermitianTolerance bounds the allowed asymmetry |A[i][j] − conj(A[j][i])|
// before a matrix is rejected as non-Hermitian.
const hermitianTolerance = 1e-9

// ErrNotHermitian reports an operator whose materialized matrix is not
// Hermitian; only Hermitian operators have a real spectrum.
var ErrNotHermitian = errors.New("linalg: operator is not hermitian")

// Spectrum returns the eigenvalues of a Hermitian qubit operator over
// nQubits qubits, sorted ascending.
func Spectrum(op *operators.QubitOperator, nQubits int) ([]float64, error) {
	a, err := Dense(op, nQubits)
	if err != nil {
		return nil, err
	}
	return HermitianEigenvalues(a)
}

// HermitianEigenvalues returns the ascending eigenvalues of a square complex
// Hermitian matrix.
//
// gonum has no complex Hermitian eigensolver, so the matrix A is embedded
// into the real symmetric block matrix [[Re A, −Im A], [Im A, Re A]], whose
// spectrum is A's with every eigenvalue doubled; the doubling is stripped
// after factorization.
func HermitianEigenvalues(a *mat.CDense) ([]float64, error) {
	dim, cols := a.Dims()
	if dim != cols {
		return nil, fmt.Errorf("linalg: matrix is %dx%d, want square", dim, cols)
	}

	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			if cmplx.Abs(a.At(i, j)-cmplx.Conj(a.At(j, i))) > hermitianTolerance {
				return nil, fmt.Errorf("%w: asymmetry at (%d,%d)", ErrNotHermitian, i, j)
			}
		}
	}

	embedded := mat.NewSymDense(2*dim, nil)
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			re := real(a.At(i, j))
			im := imag(a.At(i, j))
			embedded.SetSym(i, j, re)
			embedded.SetSym(dim+i, dim+j, re)
			// Im A is antisymmetric, so the off-diagonal block assignment
			// below is consistent for both (i,j) and (j,i).
			embedded.SetSym(i, dim+j, -im)
			if i != j {
				embedded.SetSym(j, dim+i, im)
			}
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(embedded, false); !ok {
		return nil, errors.New("linalg: eigendecomposition failed")
	}
	doubled := es.Values(nil) // ascending

	eigenvalues := make([]float64, dim)
	for i := range eigenvalues {
		eigenvalues[i] = doubled[2*i]
	}
	return eigenvalues, nil
}

// FromDiagonal reconstructs the qubit operator, composed of I/Z factors
// only, whose dense matrix has the given diagonal. The length of diag must
// be a power of two; coefficients below tol are dropped.
//
// The Z-string coefficients are the Walsh-Hadamard transform of the
// diagonal: c_m = 2⁻ⁿ Σ_b diag[b] (−1)^popcount(b∧m).
func FromDiagonal(diag []complex128, tol float64) (*operators.QubitOperator, error) {
	dim := len(diag)
	if dim == 0 || dim&(dim-1) != 0 {
		return nil, fmt.Errorf("linalg: diagonal length %d is not a power of two", dim)
	}
	nQubits := 0
	for 1<<uint(nQubits) < dim {
		nQubits++
	}

	coeffs := append([]complex128(nil), diag...)
	for step := 1; step < dim; step <<= 1 {
		for block := 0; block < dim; block += step << 1 {
			for i := block; i < block+step; i++ {
				a, b := coeffs[i], coeffs[i+step]
				coeffs[i], coeffs[i+step] = a+b, a-b
			}
		}
	}

	op := operators.ZeroQubit()
	scale := complex(float64(dim), 0)
	for mask := 0; mask < dim; mask++ {
		c := coeffs[mask] / scale
		if cmplx.Abs(c) <= tol {
			continue
		}
		var factors []operators.Factor
		for q := 0; q < nQubits; q++ {
			if mask&(1<<uint(q)) != 0 {
				factors = append(factors, operators.Z(q))
			}
		}
		term, err := operators.NewQubitOperator(c, factors...)
		if err != nil {
			return nil, err
		}
		op = op.Add(term)
	}
	return op, nil
}
