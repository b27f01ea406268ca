package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spinworks/qop/pkg/operators"
)

func TestSpectrumOfSingleQubitPaulis(t *testing.T) {
	for _, factor := range []operators.Factor{operators.X(0), operators.Y(0), operators.Z(0)} {
		op := singlePauli(t, 1, factor)

		spectrum, err := Spectrum(op, 1)
		require.NoError(t, err)

		require.Len(t, spectrum, 2)
		assert.InDelta(t, -1, spectrum[0], 1e-9)
		assert.InDelta(t, 1, spectrum[1], 1e-9)
	}
}

func TestSpectrumOfProjector(t *testing.T) {
	// ½(I − Z_2) over 3 qubits: eigenvalues 0 and 1, four of each.
	op := operators.QubitIdentity(0.5).Add(singlePauli(t, -0.5, operators.Z(2)))

	spectrum, err := Spectrum(op, 3)
	require.NoError(t, err)

	require.Len(t, spectrum, 8)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 0, spectrum[i], 1e-9)
	}
	for i := 4; i < 8; i++ {
		assert.InDelta(t, 1, spectrum[i], 1e-9)
	}
}

func TestSpectrumWithComplexOffDiagonalTerms(t *testing.T) {
	// H = X_0 + Y_0 has eigenvalues ±√2; the real-symmetric embedding must
	// handle the imaginary Y entries.
	op := singlePauli(t, 1, operators.X(0)).Add(singlePauli(t, 1, operators.Y(0)))

	spectrum, err := Spectrum(op, 1)
	require.NoError(t, err)

	require.Len(t, spectrum, 2)
	assert.InDelta(t, -1.4142135623730951, spectrum[0], 1e-9)
	assert.InDelta(t, 1.4142135623730951, spectrum[1], 1e-9)
}

func TestSpectrumRejectsNonHermitian(t *testing.T) {
	op := singlePauli(t, complex(0, 1), operators.X(0))
	_, err := Spectrum(op, 1)
	assert.ErrorIs(t, err, ErrNotHermitian)
}

func TestFromDiagonalRoundTrip(t *testing.T) {
	// Materialize a diagonal operator, read its diagonal back, reconstruct.
	op := operators.QubitIdentity(0.5).
		Add(singlePauli(t, 0.25, operators.Z(0))).
		Add(singlePauli(t, -0.75, operators.Z(0), operators.Z(1))).
		Add(singlePauli(t, 1.5, operators.Z(2)))

	const nQubits = 3
	m, err := Dense(op, nQubits)
	require.NoError(t, err)

	diag := make([]complex128, 1<<nQubits)
	for i := range diag {
		diag[i] = m.At(i, i)
	}

	rebuilt, err := FromDiagonal(diag, operators.DefaultTolerance)
	require.NoError(t, err)

	assert.True(t, rebuilt.IsCloseTo(op, 1e-9), "got %s, want %s", rebuilt, op)
}

func TestFromDiagonalRejectsBadLength(t *testing.T) {
	_, err := FromDiagonal(make([]complex128, 3), 1e-12)
	assert.Error(t, err)

	_, err = FromDiagonal(nil, 1e-12)
	assert.Error(t, err)
}

func TestFromDiagonalOfConstant(t *testing.T) {
	rebuilt, err := FromDiagonal([]complex128{2, 2, 2, 2}, 1e-12)
	require.NoError(t, err)

	assert.True(t, rebuilt.IsCloseTo(operators.QubitIdentity(2), 1e-12))
}
