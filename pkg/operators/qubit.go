package operators

// QubitOperator is a sum of Pauli-string terms. Each term holds at most one
// Pauli factor per qubit, sorted by site; products always reduce to a single
// term with a phase folded into the coefficient.
type QubitOperator struct {
	s *sum
}

// X builds a Pauli X factor on a qubit.
func X(site int) Factor { return Factor{Site: site, Action: PauliX} }

// Y builds a Pauli Y factor on a qubit.
func Y(site int) Factor { return Factor{Site: site, Action: PauliY} }

// Z builds a Pauli Z factor on a qubit.
func Z(site int) Factor { return Factor{Site: site, Action: PauliZ} }

// ZeroQubit returns the zero qubit operator (empty term map).
func ZeroQubit() *QubitOperator {
	return &QubitOperator{s: newSum(AlphabetPauli)}
}

// NewQubitOperator builds a single-term operator coeff · P₁P₂…Pₖ. Factors
// must touch distinct qubits; they are stored sorted by site.
func NewQubitOperator(coeff complex128, factors ...Factor) (*QubitOperator, error) {
	term, err := NewTerm(AlphabetPauli, factors...)
	if err != nil {
		return nil, err
	}
	op := ZeroQubit()
	op.s.insert(term, coeff, DefaultTolerance)
	return op, nil
}

// QubitIdentity returns coeff times the identity term.
func QubitIdentity(coeff complex128) *QubitOperator {
	op := ZeroQubit()
	op.s.insert(Identity(), coeff, DefaultTolerance)
	return op
}

// Alphabet returns AlphabetPauli.
func (q *QubitOperator) Alphabet() Alphabet { return AlphabetPauli }

// Terms returns the term/coefficient pairs in deterministic order.
func (q *QubitOperator) Terms() []TermValue { return q.s.terms() }

// NumTerms returns the number of non-zero terms.
func (q *QubitOperator) NumTerms() int { return len(q.s.entries) }

// IsZero reports whether the operator has no terms.
func (q *QubitOperator) IsZero() bool { return len(q.s.entries) == 0 }

// Coefficient returns the coefficient of term, zero when absent.
func (q *QubitOperator) Coefficient(term Term) complex128 {
	return q.s.entries[term.Key()].Coefficient
}

// MaxSite returns the highest qubit index touched, -1 for zero/identity.
func (q *QubitOperator) MaxSite() int { return q.s.maxSite() }

// Qubits returns the number of qubits spanned: MaxSite()+1.
func (q *QubitOperator) Qubits() int { return q.s.maxSite() + 1 }

// Add returns q + other.
func (q *QubitOperator) Add(other *QubitOperator) *QubitOperator {
	return &QubitOperator{s: q.s.addSum(other.s, DefaultTolerance)}
}

// Scale returns c · q.
func (q *QubitOperator) Scale(c complex128) *QubitOperator {
	return &QubitOperator{s: q.s.scale(c, DefaultTolerance)}
}

// Mul returns the product q · other with Pauli products folded per site.
func (q *QubitOperator) Mul(other *QubitOperator) *QubitOperator {
	return &QubitOperator{s: q.s.mulSum(other.s, DefaultTolerance)}
}

// HermitianConjugate conjugates coefficients; Pauli strings are self-adjoint.
func (q *QubitOperator) HermitianConjugate() *QubitOperator {
	return &QubitOperator{s: q.s.conjugate()}
}

// Pruned returns a copy with terms below tol removed.
func (q *QubitOperator) Pruned(tol float64) *QubitOperator {
	return &QubitOperator{s: q.s.pruned(tol)}
}

// IsCloseTo reports equality within tol after pruning both sides.
func (q *QubitOperator) IsCloseTo(other *QubitOperator, tol float64) bool {
	return q.s.isClose(other.s, tol)
}

func (q *QubitOperator) String() string { return q.s.render() }

func (q *QubitOperator) internal() *sum { return q.s }

// pauliProduct multiplies two Paulis on the same qubit, left times right.
// The identity flag is set when the product is I.
func pauliProduct(a, b Action) (Action, complex128, bool) {
	if a == b {
		return 0, 1, true
	}
	switch {
	case a == PauliX && b == PauliY:
		return PauliZ, 1i, false
	case a == PauliY && b == PauliX:
		return PauliZ, -1i, false
	case a == PauliY && b == PauliZ:
		return PauliX, 1i, false
	case a == PauliZ && b == PauliY:
		return PauliX, -1i, false
	case a == PauliZ && b == PauliX:
		return PauliY, 1i, false
	default: // X·Z
		return PauliY, -1i, false
	}
}

// pauliReduce folds a concatenated Pauli sequence into the single canonical
// term it equals. Factors on distinct qubits commute, so the sequence
// collapses site by site in left-to-right order.
func pauliReduce(factors []Factor, coeff complex128) []reducedTerm {
	current := make(map[int]Action)
	phase := complex(1, 0)

	for _, f := range factors {
		prev, ok := current[f.Site]
		if !ok {
			current[f.Site] = f.Action
			continue
		}
		action, ph, identity := pauliProduct(prev, f.Action)
		phase *= ph
		if identity {
			delete(current, f.Site)
		} else {
			current[f.Site] = action
		}
	}

	out := make([]Factor, 0, len(current))
	for site, action := range current {
		out = append(out, Factor{Site: site, Action: action})
	}
	return []reducedTerm{{factors: out, coeff: coeff * phase}}
}
