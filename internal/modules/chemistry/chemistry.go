// Package chemistry builds fermionic Hamiltonians from electronic structure
// coefficients.
package chemistry

import (
	"fmt"

	"github.com/spinworks/qop/pkg/operators"
)

// MolecularHamiltonian assembles a second-quantized molecular Hamiltonian
//
//	H = c + Σ h[p,q] a†_p a_q + Σ h[p,q,r,s] a†_p a†_q a_r a_s
//
// from its constant, one-body and two-body coefficient tables. Keys index
// spin orbitals; either table may be nil.
func MolecularHamiltonian(constant complex128, oneBody map[[2]int]complex128, twoBody map[[4]int]complex128) (*operators.FermionOperator, error) {
	h := operators.FermionIdentity(constant)

	for key, coeff := range oneBody {
		term, err := operators.NewFermionOperator(coeff,
			operators.Raise(key[0]), operators.Lower(key[1]))
		if err != nil {
			return nil, fmt.Errorf("one-body term %v: %w", key, err)
		}
		h = h.Add(term)
	}

	for key, coeff := range twoBody {
		term, err := operators.NewFermionOperator(coeff,
			operators.Raise(key[0]), operators.Raise(key[1]),
			operators.Lower(key[2]), operators.Lower(key[3]))
		if err != nil {
			return nil, fmt.Errorf("two-body term %v: %w", key, err)
		}
		h = h.Add(term)
	}

	return h.Pruned(operators.DefaultTolerance), nil
}
