package chemistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/spinworks/qop/pkg/operators"
)

func cdense(n int, data []complex128) *mat.CDense {
	return mat.NewCDense(n, n, data)
}

func TestNewQuadraticHamiltonianRejectsNonHermitian(t *testing.T) {
	m := cdense(2, []complex128{0, 1, 2, 0})
	_, err := NewQuadraticHamiltonian(0, m, nil)
	assert.ErrorIs(t, err, ErrInvalidCoefficients)
}

func TestNewQuadraticHamiltonianRejectsNonAntisymmetricPairing(t *testing.T) {
	m := cdense(2, []complex128{1, 0, 0, 2})
	pairing := cdense(2, []complex128{0, 1, 1, 0})
	_, err := NewQuadraticHamiltonian(0, m, pairing)
	assert.ErrorIs(t, err, ErrInvalidCoefficients)
}

func TestNewQuadraticHamiltonianRejectsPairingSizeMismatch(t *testing.T) {
	m := cdense(2, []complex128{1, 0, 0, 2})
	pairing := cdense(3, nil)
	_, err := NewQuadraticHamiltonian(0, m, pairing)
	assert.ErrorIs(t, err, ErrInvalidCoefficients)
}

func TestQuadraticHamiltonianParticleConservation(t *testing.T) {
	m := cdense(2, []complex128{1, 0, 0, 2})

	h, err := NewQuadraticHamiltonian(0, m, nil)
	require.NoError(t, err)
	assert.True(t, h.ConservesParticles())
	assert.Equal(t, 2, h.Modes())

	// An all-zero pairing block is still particle-conserving
	h, err = NewQuadraticHamiltonian(0, m, cdense(2, nil))
	require.NoError(t, err)
	assert.True(t, h.ConservesParticles())

	pairing := cdense(2, []complex128{0, 1, -1, 0})
	h, err = NewQuadraticHamiltonian(0, m, pairing)
	require.NoError(t, err)
	assert.False(t, h.ConservesParticles())
}

func TestQuadraticHamiltonianFermionOperatorDiagonal(t *testing.T) {
	m := cdense(2, []complex128{1, 0, 0, 2})
	h, err := NewQuadraticHamiltonian(0.25, m, nil)
	require.NoError(t, err)

	want := operators.FermionIdentity(0.25)
	n0, err := operators.NewFermionOperator(1, operators.Raise(0), operators.Lower(0))
	require.NoError(t, err)
	n1, err := operators.NewFermionOperator(2, operators.Raise(1), operators.Lower(1))
	require.NoError(t, err)
	want = want.Add(n0).Add(n1)

	assert.True(t, h.FermionOperator().IsCloseTo(want, operators.DefaultTolerance))
}

func TestQuadraticHamiltonianFermionOperatorIsHermitian(t *testing.T) {
	m := cdense(2, []complex128{1, complex(0.5, 0.5), complex(0.5, -0.5), 2})
	pairing := cdense(2, []complex128{0, complex(0.3, 0.1), complex(-0.3, -0.1), 0})

	h, err := NewQuadraticHamiltonian(0, m, pairing)
	require.NoError(t, err)

	op := h.FermionOperator()
	assert.True(t, op.IsCloseTo(op.HermitianConjugate(), operators.DefaultTolerance))
}

func TestOrbitalEnergies(t *testing.T) {
	// Hopping between two modes has single-particle energies -1 and 1
	m := cdense(2, []complex128{0, 1, 1, 0})
	h, err := NewQuadraticHamiltonian(0, m, nil)
	require.NoError(t, err)

	energies, err := h.OrbitalEnergies()
	require.NoError(t, err)
	require.Len(t, energies, 2)
	assert.InDelta(t, -1, energies[0], 1e-9)
	assert.InDelta(t, 1, energies[1], 1e-9)
}

func TestOrbitalEnergiesRequireParticleConservation(t *testing.T) {
	m := cdense(2, []complex128{1, 0, 0, 2})
	pairing := cdense(2, []complex128{0, 1, -1, 0})

	h, err := NewQuadraticHamiltonian(0, m, pairing)
	require.NoError(t, err)

	_, err = h.OrbitalEnergies()
	assert.ErrorIs(t, err, ErrInvalidCoefficients)
}
