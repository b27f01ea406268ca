// Package linalg materializes qubit operators as explicit matrices and
// bridges them to numerical validation. Each Pauli string is a signed
// permutation of the computational basis, so a term is applied column by
// column in O(2ⁿ) without building intermediate Kronecker products; the
// eigenvalue work itself is delegated to gonum.
package linalg

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/spinworks/qop/pkg/operators"
)

// applyPauliString computes P|col⟩ = phase · |row⟩ for one Pauli string.
// Qubit q maps to bit q of the basis index.
func applyPauliString(factors []operators.Factor, col int) (int, complex128) {
	row := col
	phase := complex(1, 0)
	for _, f := range factors {
		bit := (col >> uint(f.Site)) & 1
		switch f.Action {
		case operators.PauliX:
			row ^= 1 << uint(f.Site)
		case operators.PauliY:
			row ^= 1 << uint(f.Site)
			if bit == 0 {
				phase *= 1i
			} else {
				phase *= -1i
			}
		case operators.PauliZ:
			if bit == 1 {
				phase = -phase
			}
		}
	}
	return row, phase
}

func checkQubitBudget(op *operators.QubitOperator, nQubits int) error {
	if nQubits < 0 {
		return fmt.Errorf("%w: negative qubit count %d", operators.ErrInsufficientQubits, nQubits)
	}
	if spanned := op.Qubits(); nQubits < spanned {
		return fmt.Errorf("%w: operator touches %d qubits, budget is %d",
			operators.ErrInsufficientQubits, spanned, nQubits)
	}
	return nil
}

// Dense materializes op as an explicit 2ⁿ×2ⁿ complex matrix.
func Dense(op *operators.QubitOperator, nQubits int) (*mat.CDense, error) {
	if err := checkQubitBudget(op, nQubits); err != nil {
		return nil, err
	}

	dim := 1 << uint(nQubits)
	m := mat.NewCDense(dim, dim, nil)

	for _, tv := range op.Terms() {
		factors := tv.Term.Factors()
		for col := 0; col < dim; col++ {
			row, phase := applyPauliString(factors, col)
			m.Set(row, col, m.At(row, col)+tv.Coefficient*phase)
		}
	}

	return m, nil
}

// SparseMatrix is a coordinate-form sparse operator matrix. Entries are
// sorted by (row, col) and carry no explicit zeros.
type SparseMatrix struct {
	Dim  int
	Rows []int
	Cols []int
	Data []complex128
}

// Sparse materializes op in coordinate form. A k-term operator over n
// qubits has at most k·2ⁿ entries, one per term per column.
func Sparse(op *operators.QubitOperator, nQubits int) (*SparseMatrix, error) {
	if err := checkQubitBudget(op, nQubits); err != nil {
		return nil, err
	}

	dim := 1 << uint(nQubits)
	acc := make(map[[2]int]complex128)

	for _, tv := range op.Terms() {
		factors := tv.Term.Factors()
		for col := 0; col < dim; col++ {
			row, phase := applyPauliString(factors, col)
			acc[[2]int{row, col}] += tv.Coefficient * phase
		}
	}

	keys := make([][2]int, 0, len(acc))
	for k, v := range acc {
		if v == 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	s := &SparseMatrix{
		Dim:  dim,
		Rows: make([]int, len(keys)),
		Cols: make([]int, len(keys)),
		Data: make([]complex128, len(keys)),
	}
	for i, k := range keys {
		s.Rows[i] = k[0]
		s.Cols[i] = k[1]
		s.Data[i] = acc[k]
	}
	return s, nil
}

// NNZ returns the number of stored entries.
func (s *SparseMatrix) NNZ() int { return len(s.Data) }

// MulVec applies the matrix to a state vector.
func (s *SparseMatrix) MulVec(v []complex128) ([]complex128, error) {
	if len(v) != s.Dim {
		return nil, fmt.Errorf("linalg: vector length %d does not match dimension %d", len(v), s.Dim)
	}
	out := make([]complex128, s.Dim)
	for i := range s.Data {
		out[s.Rows[i]] += s.Data[i] * v[s.Cols[i]]
	}
	return out, nil
}
