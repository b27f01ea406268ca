package operators

import (
	"fmt"
	"math/cmplx"
	"sort"
	"strconv"
	"strings"
)

// DefaultTolerance is the coefficient magnitude below which a term is pruned
// as zero. Every operation prunes at this tolerance; callers needing a
// different cutoff use Pruned or IsCloseTo with an explicit value.
const DefaultTolerance = 1e-12

// TermValue pairs a canonical term with its complex coefficient.
type TermValue struct {
	Term        Term
	Coefficient complex128
}

// Operator is the algebra-level view shared by FermionOperator and
// QubitOperator. The package-level Add, Mul, Scale and HermitianConjugate
// functions operate on this view and enforce alphabet compatibility at
// runtime; the concrete types expose the same operations with static typing.
type Operator interface {
	Alphabet() Alphabet
	Terms() []TermValue
	NumTerms() int
	IsZero() bool
	String() string

	internal() *sum
}

// sum is the shared sum-of-terms representation: a mapping from canonical
// term keys to coefficients, with zero-coefficient entries pruned.
type sum struct {
	alphabet Alphabet
	entries  map[string]TermValue
}

func newSum(alphabet Alphabet) *sum {
	return &sum{alphabet: alphabet, entries: make(map[string]TermValue)}
}

func (s *sum) clone() *sum {
	out := newSum(s.alphabet)
	for k, v := range s.entries {
		out.entries[k] = v
	}
	return out
}

// insert accumulates coeff onto term, dropping the entry when the running
// coefficient falls below tol.
func (s *sum) insert(term Term, coeff complex128, tol float64) {
	entry, ok := s.entries[term.Key()]
	if ok {
		coeff += entry.Coefficient
	}
	if cmplx.Abs(coeff) <= tol {
		delete(s.entries, term.Key())
		return
	}
	s.entries[term.Key()] = TermValue{Term: term, Coefficient: coeff}
}

func (s *sum) addSum(other *sum, tol float64) *sum {
	out := s.clone()
	for _, v := range other.entries {
		out.insert(v.Term, v.Coefficient, tol)
	}
	return out
}

func (s *sum) scale(c complex128, tol float64) *sum {
	out := newSum(s.alphabet)
	if c == 0 {
		return out
	}
	for _, v := range s.entries {
		out.insert(v.Term, v.Coefficient*c, tol)
	}
	return out
}

// mulSum multiplies two sums by concatenating every term pair and reducing
// the raw sequence through the alphabet's simplification rule.
func (s *sum) mulSum(other *sum, tol float64) *sum {
	out := newSum(s.alphabet)
	for _, a := range s.entries {
		for _, b := range other.entries {
			raw := make([]Factor, 0, a.Term.Len()+b.Term.Len())
			raw = append(raw, a.Term.factors...)
			raw = append(raw, b.Term.factors...)
			for _, r := range reduceProduct(s.alphabet, raw, a.Coefficient*b.Coefficient) {
				term, err := NewTerm(s.alphabet, r.factors...)
				if err != nil {
					// Reduction only permutes validated factors.
					panic(fmt.Sprintf("operators: reduction produced invalid term: %v", err))
				}
				out.insert(term, r.coeff, tol)
			}
		}
	}
	return out
}

// conjugate returns the hermitian conjugate. Ladder terms reverse their
// factor order and swap creation with annihilation; Pauli factors are
// self-adjoint so only the coefficients conjugate.
func (s *sum) conjugate() *sum {
	out := newSum(s.alphabet)
	for _, v := range s.entries {
		term := v.Term
		if s.alphabet == AlphabetLadder {
			fs := make([]Factor, term.Len())
			for i, f := range term.factors {
				flipped := Create
				if f.Action == Create {
					flipped = Annihilate
				}
				fs[term.Len()-1-i] = Factor{Site: f.Site, Action: flipped}
			}
			term = Term{factors: fs, key: encodeKey(s.alphabet, fs)}
		}
		out.insert(term, cmplx.Conj(v.Coefficient), DefaultTolerance)
	}
	return out
}

func (s *sum) pruned(tol float64) *sum {
	out := newSum(s.alphabet)
	for _, v := range s.entries {
		out.insert(v.Term, v.Coefficient, tol)
	}
	return out
}

// isClose reports structural equality after pruning both sides at tol, with
// coefficients compared within tol.
func (s *sum) isClose(other *sum, tol float64) bool {
	a := s.pruned(tol)
	b := other.pruned(tol)
	if len(a.entries) != len(b.entries) {
		return false
	}
	for k, va := range a.entries {
		vb, ok := b.entries[k]
		if !ok {
			return false
		}
		if cmplx.Abs(va.Coefficient-vb.Coefficient) > tol {
			return false
		}
	}
	return true
}

// terms returns entries in deterministic order: shorter terms first, then by
// canonical key.
func (s *sum) terms() []TermValue {
	out := make([]TermValue, 0, len(s.entries))
	for _, v := range s.entries {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Term.Len() != out[j].Term.Len() {
			return out[i].Term.Len() < out[j].Term.Len()
		}
		return out[i].Term.Key() < out[j].Term.Key()
	})
	return out
}

func (s *sum) maxSite() int {
	max := -1
	for _, v := range s.entries {
		if m := v.Term.MaxSite(); m > max {
			max = m
		}
	}
	return max
}

func (s *sum) render() string {
	if len(s.entries) == 0 {
		return "0"
	}
	terms := s.terms()
	parts := make([]string, len(terms))
	for i, v := range terms {
		parts[i] = formatCoeff(v.Coefficient) + " " + v.Term.String()
	}
	return strings.Join(parts, " + ")
}

func formatCoeff(c complex128) string {
	if imag(c) == 0 {
		return strconv.FormatFloat(real(c), 'g', -1, 64)
	}
	return fmt.Sprintf("(%g%+gi)", real(c), imag(c))
}

// reducedTerm is one canonical output of a product reduction.
type reducedTerm struct {
	factors []Factor
	coeff   complex128
}

// reduceProduct applies the alphabet-specific simplification rule to a raw
// concatenated factor sequence.
func reduceProduct(alphabet Alphabet, factors []Factor, coeff complex128) []reducedTerm {
	switch alphabet {
	case AlphabetLadder:
		return normalOrder(factors, coeff)
	case AlphabetPauli:
		return pauliReduce(factors, coeff)
	}
	panic(fmt.Sprintf("operators: unknown alphabet %q", alphabet))
}

func sameAlphabet(a, b Operator) error {
	if a.Alphabet() != b.Alphabet() {
		return fmt.Errorf("%w: %s vs %s", ErrIncompatibleOperators, a.Alphabet(), b.Alphabet())
	}
	return nil
}

func wrap(s *sum) Operator {
	if s.alphabet == AlphabetLadder {
		return &FermionOperator{s: s}
	}
	return &QubitOperator{s: s}
}

// Add returns the sum of two operators of the same alphabet.
func Add(a, b Operator) (Operator, error) {
	if err := sameAlphabet(a, b); err != nil {
		return nil, err
	}
	return wrap(a.internal().addSum(b.internal(), DefaultTolerance)), nil
}

// Mul returns the product of two operators of the same alphabet, with the
// alphabet's simplification rule applied to every term pair.
func Mul(a, b Operator) (Operator, error) {
	if err := sameAlphabet(a, b); err != nil {
		return nil, err
	}
	return wrap(a.internal().mulSum(b.internal(), DefaultTolerance)), nil
}

// Scale multiplies every coefficient by c.
func Scale(op Operator, c complex128) Operator {
	return wrap(op.internal().scale(c, DefaultTolerance))
}

// HermitianConjugate returns the conjugate transpose of the operator.
func HermitianConjugate(op Operator) Operator {
	return wrap(op.internal().conjugate())
}

// IsCloseTo reports structural equality of two operators after pruning both
// at tol. Operators from different alphabets are never close.
func IsCloseTo(a, b Operator, tol float64) bool {
	if a.Alphabet() != b.Alphabet() {
		return false
	}
	return a.internal().isClose(b.internal(), tol)
}

// RequireClose is the strict comparison helper: it fails with
// ErrToleranceExceeded when the operators differ at tol.
func RequireClose(a, b Operator, tol float64) error {
	if err := sameAlphabet(a, b); err != nil {
		return err
	}
	if !a.internal().isClose(b.internal(), tol) {
		return fmt.Errorf("%w: %s != %s at tolerance %g", ErrToleranceExceeded, a, b, tol)
	}
	return nil
}
