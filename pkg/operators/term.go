package operators

import (
	"fmt"
	"sort"
	"strings"
)

// Factor is a single-site operator applied at a mode or qubit index.
type Factor struct {
	Site   int
	Action Action
}

// Term is an ordered product of factors. It is immutable once constructed;
// identity and hashing are structural over the factor sequence, via a
// canonical string key.
//
// Fermionic terms keep their factors in construction order (ladder operators
// do not commute) and accept repeated or unordered sites as raw terms; only
// multiplication normal-orders them. Pauli terms require unique sites and are
// stored sorted by site, since Paulis on distinct qubits commute.
type Term struct {
	factors []Factor
	key     string
}

// Identity is the empty product. It belongs to every alphabet.
func Identity() Term {
	return Term{}
}

// NewTerm validates the factors against the alphabet and builds a canonical
// term. It fails with ErrInvalidAction when an action is outside the
// alphabet, a site is negative, or a Pauli term repeats a site.
func NewTerm(alphabet Alphabet, factors ...Factor) (Term, error) {
	for _, f := range factors {
		if !alphabet.Contains(f.Action) {
			return Term{}, fmt.Errorf("%w: action %q not in %s alphabet", ErrInvalidAction, f.Action, alphabet)
		}
		if f.Site < 0 {
			return Term{}, fmt.Errorf("%w: negative site index %d", ErrInvalidAction, f.Site)
		}
	}

	fs := make([]Factor, len(factors))
	copy(fs, factors)

	if alphabet == AlphabetPauli {
		sort.Slice(fs, func(i, j int) bool { return fs[i].Site < fs[j].Site })
		for i := 1; i < len(fs); i++ {
			if fs[i].Site == fs[i-1].Site {
				return Term{}, fmt.Errorf("%w: duplicate Pauli site %d", ErrInvalidAction, fs[i].Site)
			}
		}
	}

	return Term{factors: fs, key: encodeKey(alphabet, fs)}, nil
}

// encodeKey builds the canonical structural key for a factor sequence.
// Ladder factors print as "site^" / "site", Pauli factors as "Xsite" etc.
func encodeKey(alphabet Alphabet, factors []Factor) string {
	if len(factors) == 0 {
		return ""
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		if alphabet == AlphabetPauli {
			parts[i] = fmt.Sprintf("%s%d", f.Action, f.Site)
		} else {
			parts[i] = fmt.Sprintf("%d%s", f.Site, f.Action)
		}
	}
	return strings.Join(parts, " ")
}

// Factors returns a copy of the factor sequence.
func (t Term) Factors() []Factor {
	fs := make([]Factor, len(t.factors))
	copy(fs, t.factors)
	return fs
}

// Len returns the number of factors.
func (t Term) Len() int { return len(t.factors) }

// IsIdentity reports whether the term is the empty product.
func (t Term) IsIdentity() bool { return len(t.factors) == 0 }

// MaxSite returns the highest site index touched, or -1 for the identity.
func (t Term) MaxSite() int {
	max := -1
	for _, f := range t.factors {
		if f.Site > max {
			max = f.Site
		}
	}
	return max
}

// Key returns the canonical structural key.
func (t Term) Key() string { return t.key }

// Equal reports structural equality.
func (t Term) Equal(other Term) bool { return t.key == other.key }

// String renders the term as its bracketed key, e.g. "[4^ 3^ 9 1]" or
// "[X0 Z2]". The identity renders as "[]".
func (t Term) String() string {
	return "[" + t.key + "]"
}
