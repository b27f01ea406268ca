package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinworks/qop/pkg/linalg"
	"github.com/spinworks/qop/pkg/operators"
)

func TestBravyiKitaevRejectsSmallQubitBudget(t *testing.T) {
	op, err := operators.NewFermionOperator(1, operators.Raise(2), operators.Lower(15))
	require.NoError(t, err)

	_, err = BravyiKitaev(op, 15)
	assert.ErrorIs(t, err, operators.ErrInsufficientQubits)

	_, err = BravyiKitaev(op, 0)
	assert.ErrorIs(t, err, operators.ErrInsufficientQubits)

	_, err = BravyiKitaev(op, 16)
	assert.NoError(t, err)
}

func TestBravyiKitaevMatchesJordanWignerOnOneMode(t *testing.T) {
	// With a single mode both encodings reduce to ½(X ∓ iY).
	raise, err := operators.NewFermionOperator(1, operators.Raise(0))
	require.NoError(t, err)

	bk, err := BravyiKitaev(raise, 1)
	require.NoError(t, err)

	assert.True(t, bk.IsCloseTo(JordanWigner(raise), operators.DefaultTolerance),
		"got %s", bk)
}

func TestBravyiKitaevPreservesAnticommutation(t *testing.T) {
	const nQubits = 4
	for _, p := range []int{0, 1, 2, 3} {
		lower, err := operators.NewFermionOperator(1, operators.Lower(p))
		require.NoError(t, err)
		raise, err := operators.NewFermionOperator(1, operators.Raise(p))
		require.NoError(t, err)

		lo, err := BravyiKitaev(lower, nQubits)
		require.NoError(t, err)
		hi, err := BravyiKitaev(raise, nQubits)
		require.NoError(t, err)

		anticommutator := lo.Mul(hi).Add(hi.Mul(lo))
		assert.True(t, anticommutator.IsCloseTo(operators.QubitIdentity(1), operators.DefaultTolerance),
			"site %d: got %s", p, anticommutator)
	}

	// Distinct modes anticommute to zero.
	for _, pair := range [][2]int{{0, 1}, {1, 3}, {0, 2}} {
		ap, err := operators.NewFermionOperator(1, operators.Lower(pair[0]))
		require.NoError(t, err)
		aq, err := operators.NewFermionOperator(1, operators.Lower(pair[1]))
		require.NoError(t, err)

		imgP, err := BravyiKitaev(ap, nQubits)
		require.NoError(t, err)
		imgQ, err := BravyiKitaev(aq, nQubits)
		require.NoError(t, err)

		anticommutator := imgP.Mul(imgQ).Add(imgQ.Mul(imgP))
		assert.True(t, anticommutator.IsZero(), "sites %v: got %s", pair, anticommutator)
	}
}

// Six modes make the Fenwick tree attach children to even sites (2 and 4),
// so this sweep catches Y-string remainder sets that are only right when
// the mode count is a power of two.
func TestBravyiKitaevAnticommutationAcrossSitesOnSixModes(t *testing.T) {
	const nQubits = 6
	for p := 0; p < nQubits; p++ {
		for q := 0; q < nQubits; q++ {
			lower, err := operators.NewFermionOperator(1, operators.Lower(p))
			require.NoError(t, err)
			raise, err := operators.NewFermionOperator(1, operators.Raise(q))
			require.NoError(t, err)

			lo, err := BravyiKitaev(lower, nQubits)
			require.NoError(t, err)
			hi, err := BravyiKitaev(raise, nQubits)
			require.NoError(t, err)

			anticommutator := lo.Mul(hi).Add(hi.Mul(lo))
			want := operators.ZeroQubit()
			if p == q {
				want = operators.QubitIdentity(1)
			}
			assert.True(t, anticommutator.IsCloseTo(want, operators.DefaultTolerance),
				"p=%d q=%d: got %s", p, q, anticommutator)
		}
	}
}

func TestBravyiKitaevIsLinear(t *testing.T) {
	a, err := operators.NewFermionOperator(complex(0, 1), operators.Raise(1), operators.Lower(2))
	require.NoError(t, err)
	b, err := operators.NewFermionOperator(0.25, operators.Raise(3), operators.Lower(0))
	require.NoError(t, err)

	joint, err := BravyiKitaev(a.Add(b), 4)
	require.NoError(t, err)
	imgA, err := BravyiKitaev(a, 4)
	require.NoError(t, err)
	imgB, err := BravyiKitaev(b, 4)
	require.NoError(t, err)

	assert.True(t, joint.IsCloseTo(imgA.Add(imgB), operators.DefaultTolerance))
}

// The encodings produce different qubit operators for the same fermionic
// input, but their materialized matrices must share a spectrum.
func TestJordanWignerAndBravyiKitaevShareSpectra(t *testing.T) {
	cases := []struct {
		name    string
		sites   [2]int
		nQubits int
	}{
		{name: "hopping_1_3_on_4", sites: [2]int{1, 3}, nQubits: 4},
		{name: "hopping_0_5_on_6", sites: [2]int{0, 5}, nQubits: 6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hop, err := operators.NewFermionOperator(1,
				operators.Raise(tc.sites[0]), operators.Lower(tc.sites[1]))
			require.NoError(t, err)
			h := hop.Add(hop.HermitianConjugate())

			jw := JordanWigner(h)
			bk, err := BravyiKitaev(h, tc.nQubits)
			require.NoError(t, err)

			// The operators themselves differ between encodings.
			assert.False(t, jw.IsCloseTo(bk, operators.DefaultTolerance))

			jwSpectrum, err := linalg.Spectrum(jw, tc.nQubits)
			require.NoError(t, err)
			bkSpectrum, err := linalg.Spectrum(bk, tc.nQubits)
			require.NoError(t, err)

			require.Equal(t, len(jwSpectrum), len(bkSpectrum))
			for i := range jwSpectrum {
				assert.InDelta(t, jwSpectrum[i], bkSpectrum[i], 1e-9)
			}
		})
	}
}

func TestBravyiKitaevNumberOperatorSpectrum(t *testing.T) {
	// Occupation numbers survive the encoding: n_p has eigenvalues {0, 1},
	// each with multiplicity 2^{n−1}.
	number, err := operators.NewFermionOperator(1, operators.Raise(2), operators.Lower(2))
	require.NoError(t, err)

	bk, err := BravyiKitaev(number, 4)
	require.NoError(t, err)

	spectrum, err := linalg.Spectrum(bk, 4)
	require.NoError(t, err)

	zeros, ones := 0, 0
	for _, v := range spectrum {
		switch {
		case v < 1e-9 && v > -1e-9:
			zeros++
		case v < 1+1e-9 && v > 1-1e-9:
			ones++
		}
	}
	assert.Equal(t, 8, zeros)
	assert.Equal(t, 8, ones)
}

func TestFenwickTreeSets(t *testing.T) {
	// n=8 binary-indexed layout: root 7, children {3, 5, 6}.
	tree := newFenwickTree(8)

	assert.Equal(t, []int{7}, tree.updateSet(3))
	assert.ElementsMatch(t, []int{1, 2}, tree.flipSet(3))
	assert.Equal(t, []int{1, 2}, tree.paritySet(3))
	// Odd site: remainder strips the flip set from the parity set.
	assert.Empty(t, tree.remainderSet(3))

	assert.Equal(t, []int{3}, tree.paritySet(4))
	assert.ElementsMatch(t, []int{5, 7}, tree.updateSet(4))

	// Even sites use the full parity set.
	assert.Equal(t, []int{3}, tree.remainderSet(4))
}
