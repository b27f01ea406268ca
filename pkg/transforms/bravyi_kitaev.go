package transforms

import (
	"fmt"

	"github.com/spinworks/qop/pkg/operators"
)

// BravyiKitaev encodes a fermionic operator into a qubit operator over a
// fixed budget of nQubits qubits. The per-factor image is a weighted sum of
// two Pauli strings built from the update, parity and remainder sets of a
// Fenwick-tree partitioning of the modes:
//
//	a†_j ↦ ½ X_{U(j)} X_j Z_{P(j)} − (i/2) X_{U(j)} Y_j Z_{R(j)}
//	a_j  ↦ ½ X_{U(j)} X_j Z_{P(j)} + (i/2) X_{U(j)} Y_j Z_{R(j)}
//
// with the remainder set R(j) = P(j) \ F(j); for childless sites F(j) is
// empty and R(j) = P(j). Linear extension over terms and left-to-right
// factor multiplication proceed exactly as in the Jordan-Wigner case.
//
// Fails with operators.ErrInsufficientQubits when nQubits is smaller than
// the highest mode index touched plus one.
func BravyiKitaev(op *operators.FermionOperator, nQubits int) (*operators.QubitOperator, error) {
	if nQubits < 1 {
		return nil, fmt.Errorf("%w: need at least 1 qubit, got %d", operators.ErrInsufficientQubits, nQubits)
	}
	if modes := op.Modes(); nQubits < modes {
		return nil, fmt.Errorf("%w: operator touches %d modes, budget is %d qubits",
			operators.ErrInsufficientQubits, modes, nQubits)
	}

	tree := newFenwickTree(nQubits)
	result := operators.ZeroQubit()

	for _, tv := range op.Terms() {
		image := operators.QubitIdentity(tv.Coefficient)
		for _, f := range tv.Term.Factors() {
			image = image.Mul(bravyiKitaevFactor(tree, f))
		}
		result = result.Add(image)
	}

	return result, nil
}

// bravyiKitaevFactor builds the two-string image of a single ladder factor
// at site j from the tree's index sets.
func bravyiKitaevFactor(tree *fenwickTree, f operators.Factor) *operators.QubitOperator {
	j := f.Site
	update := tree.updateSet(j)
	parity := tree.paritySet(j)
	remainder := tree.remainderSet(j)

	xFactors := make([]operators.Factor, 0, len(update)+len(parity)+1)
	for _, q := range update {
		xFactors = append(xFactors, operators.X(q))
	}
	xFactors = append(xFactors, operators.X(j))
	for _, q := range parity {
		xFactors = append(xFactors, operators.Z(q))
	}
	xTerm, err := operators.NewQubitOperator(0.5, xFactors...)
	if err != nil {
		panic(err)
	}

	yFactors := make([]operators.Factor, 0, len(update)+len(remainder)+1)
	for _, q := range update {
		yFactors = append(yFactors, operators.X(q))
	}
	yFactors = append(yFactors, operators.Y(j))
	for _, q := range remainder {
		yFactors = append(yFactors, operators.Z(q))
	}
	yCoeff := complex(0, -0.5)
	if f.Action == operators.Annihilate {
		yCoeff = complex(0, 0.5)
	}
	yTerm, err := operators.NewQubitOperator(yCoeff, yFactors...)
	if err != nil {
		panic(err)
	}

	return xTerm.Add(yTerm)
}
