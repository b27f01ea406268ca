package transforms

import (
	"github.com/spinworks/qop/pkg/operators"
)

// JordanWigner encodes a fermionic operator into a qubit operator. A ladder
// factor at site p maps to
//
//	a†_p ↦ ½ (X_p − iY_p) · Z_0 Z_1 ⋯ Z_{p−1}
//	a_p  ↦ ½ (X_p + iY_p) · Z_0 Z_1 ⋯ Z_{p−1}
//
// and a k-factor term maps to the product of the k images in the original
// factor order. The mode count is inferred from the highest site touched.
func JordanWigner(op *operators.FermionOperator) *operators.QubitOperator {
	result := operators.ZeroQubit()

	for _, tv := range op.Terms() {
		image := operators.QubitIdentity(tv.Coefficient)
		for _, f := range tv.Term.Factors() {
			image = image.Mul(jordanWignerFactor(f))
		}
		result = result.Add(image)
	}

	return result
}

// jordanWignerFactor builds the two-string image of a single ladder factor.
func jordanWignerFactor(f operators.Factor) *operators.QubitOperator {
	chain := make([]operators.Factor, 0, f.Site+1)
	for q := 0; q < f.Site; q++ {
		chain = append(chain, operators.Z(q))
	}

	xTerm, err := operators.NewQubitOperator(0.5, append(chain[:len(chain):len(chain)], operators.X(f.Site))...)
	if err != nil {
		panic(err)
	}

	yCoeff := complex(0, -0.5)
	if f.Action == operators.Annihilate {
		yCoeff = complex(0, 0.5)
	}
	yTerm, err := operators.NewQubitOperator(yCoeff, append(chain[:len(chain):len(chain)], operators.Y(f.Site))...)
	if err != nil {
		panic(err)
	}

	return xTerm.Add(yTerm)
}
