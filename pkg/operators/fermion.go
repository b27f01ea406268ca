package operators

// FermionOperator is a sum of ladder-operator terms. Raw terms keep their
// construction order; products are normal-ordered: creation factors before
// annihilation factors, each group sorted by descending site.
type FermionOperator struct {
	s *sum
}

// Raise builds a creation factor a†_site.
func Raise(site int) Factor { return Factor{Site: site, Action: Create} }

// Lower builds an annihilation factor a_site.
func Lower(site int) Factor { return Factor{Site: site, Action: Annihilate} }

// ZeroFermion returns the zero fermionic operator (empty term map).
func ZeroFermion() *FermionOperator {
	return &FermionOperator{s: newSum(AlphabetLadder)}
}

// NewFermionOperator builds a single-term operator coeff · f₁f₂…fₖ. The
// factor sequence is kept as given: un-normal-ordered and repeated sites are
// legal raw terms.
func NewFermionOperator(coeff complex128, factors ...Factor) (*FermionOperator, error) {
	term, err := NewTerm(AlphabetLadder, factors...)
	if err != nil {
		return nil, err
	}
	op := ZeroFermion()
	op.s.insert(term, coeff, DefaultTolerance)
	return op, nil
}

// FermionIdentity returns coeff times the identity term.
func FermionIdentity(coeff complex128) *FermionOperator {
	op := ZeroFermion()
	op.s.insert(Identity(), coeff, DefaultTolerance)
	return op
}

// Alphabet returns AlphabetLadder.
func (f *FermionOperator) Alphabet() Alphabet { return AlphabetLadder }

// Terms returns the term/coefficient pairs in deterministic order.
func (f *FermionOperator) Terms() []TermValue { return f.s.terms() }

// NumTerms returns the number of non-zero terms.
func (f *FermionOperator) NumTerms() int { return len(f.s.entries) }

// IsZero reports whether the operator has no terms.
func (f *FermionOperator) IsZero() bool { return len(f.s.entries) == 0 }

// Coefficient returns the coefficient of term, zero when absent.
func (f *FermionOperator) Coefficient(term Term) complex128 {
	return f.s.entries[term.Key()].Coefficient
}

// MaxSite returns the highest mode index touched, -1 for zero/identity.
func (f *FermionOperator) MaxSite() int { return f.s.maxSite() }

// Modes returns the number of modes spanned: MaxSite()+1.
func (f *FermionOperator) Modes() int { return f.s.maxSite() + 1 }

// Add returns f + other.
func (f *FermionOperator) Add(other *FermionOperator) *FermionOperator {
	return &FermionOperator{s: f.s.addSum(other.s, DefaultTolerance)}
}

// Scale returns c · f.
func (f *FermionOperator) Scale(c complex128) *FermionOperator {
	return &FermionOperator{s: f.s.scale(c, DefaultTolerance)}
}

// Mul returns the normal-ordered product f · other.
func (f *FermionOperator) Mul(other *FermionOperator) *FermionOperator {
	return &FermionOperator{s: f.s.mulSum(other.s, DefaultTolerance)}
}

// HermitianConjugate reverses each term, swaps creation with annihilation
// and conjugates coefficients.
func (f *FermionOperator) HermitianConjugate() *FermionOperator {
	return &FermionOperator{s: f.s.conjugate()}
}

// Pruned returns a copy with terms below tol removed.
func (f *FermionOperator) Pruned(tol float64) *FermionOperator {
	return &FermionOperator{s: f.s.pruned(tol)}
}

// IsCloseTo reports equality within tol after pruning both sides.
func (f *FermionOperator) IsCloseTo(other *FermionOperator, tol float64) bool {
	return f.s.isClose(other.s, tol)
}

func (f *FermionOperator) String() string { return f.s.render() }

func (f *FermionOperator) internal() *sum { return f.s }

// normalOrder rewrites a raw ladder sequence into normal-ordered terms using
// the canonical anticommutation relations:
//
//	a_p a_q   = −a_q a_p   (p ≠ q),  a_p a_p = 0
//	a†_p a†_q = −a†_q a†_p (p ≠ q),  a†_p a†_p = 0
//	a_p a†_q  = δ_pq − a†_q a_p
//
// The same-site annihilation-before-creation case expands one term into two,
// so partially processed sequences go through a worklist rather than a
// single linear pass. Termination: swaps strictly reduce the inversion count
// of the sequence, and each expansion enqueues a sequence two factors
// shorter.
func normalOrder(factors []Factor, coeff complex128) []reducedTerm {
	type work struct {
		factors []Factor
		coeff   complex128
	}

	queue := []work{{factors: append([]Factor(nil), factors...), coeff: coeff}}
	var out []reducedTerm

	for len(queue) > 0 {
		w := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		zero := false
		for swapped := true; swapped && !zero; {
			swapped = false
			for j := 0; j+1 < len(w.factors); j++ {
				l, r := w.factors[j], w.factors[j+1]

				switch {
				case l.Action == Annihilate && r.Action == Create:
					if l.Site == r.Site {
						// a_p a†_p = 1 − a†_p a_p: enqueue the contracted
						// sequence, keep going with the anticommuted one.
						shorter := make([]Factor, 0, len(w.factors)-2)
						shorter = append(shorter, w.factors[:j]...)
						shorter = append(shorter, w.factors[j+2:]...)
						queue = append(queue, work{factors: shorter, coeff: w.coeff})
					}
					w.factors[j], w.factors[j+1] = r, l
					w.coeff = -w.coeff
					swapped = true

				case l.Action == r.Action && l.Site == r.Site:
					// a_p a_p = 0 and a†_p a†_p = 0.
					zero = true

				case l.Action == r.Action && l.Site < r.Site:
					// Same group sorts by descending site; distinct sites
					// anticommute.
					w.factors[j], w.factors[j+1] = r, l
					w.coeff = -w.coeff
					swapped = true
				}

				if zero {
					break
				}
			}
		}

		if !zero {
			out = append(out, reducedTerm{factors: w.factors, coeff: w.coeff})
		}
	}

	return out
}
