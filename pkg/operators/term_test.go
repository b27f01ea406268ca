package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTermRejectsForeignActions(t *testing.T) {
	_, err := NewTerm(AlphabetLadder, Factor{Site: 0, Action: PauliX})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = NewTerm(AlphabetPauli, Factor{Site: 0, Action: Create})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestNewTermRejectsNegativeSites(t *testing.T) {
	_, err := NewTerm(AlphabetLadder, Factor{Site: -1, Action: Create})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestNewTermRejectsDuplicatePauliSites(t *testing.T) {
	_, err := NewTerm(AlphabetPauli, X(3), Z(3))
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestLadderTermKeepsConstructionOrder(t *testing.T) {
	// Raw fermionic terms are not normal-ordered at construction time.
	term, err := NewTerm(AlphabetLadder, Lower(1), Raise(4), Lower(1))
	require.NoError(t, err)
	assert.Equal(t, "1 4^ 1", term.Key())
}

func TestPauliTermSortsBySite(t *testing.T) {
	a, err := NewTerm(AlphabetPauli, Z(5), X(0), Y(2))
	require.NoError(t, err)
	b, err := NewTerm(AlphabetPauli, X(0), Y(2), Z(5))
	require.NoError(t, err)

	assert.Equal(t, "X0 Y2 Z5", a.Key())
	assert.True(t, a.Equal(b))
}

func TestTermIdentity(t *testing.T) {
	id := Identity()
	assert.True(t, id.IsIdentity())
	assert.Equal(t, 0, id.Len())
	assert.Equal(t, -1, id.MaxSite())
	assert.Equal(t, "[]", id.String())
}

func TestTermEqualityIsStructural(t *testing.T) {
	a, err := NewTerm(AlphabetLadder, Raise(2), Lower(3))
	require.NoError(t, err)
	b, err := NewTerm(AlphabetLadder, Raise(2), Lower(3))
	require.NoError(t, err)
	c, err := NewTerm(AlphabetLadder, Lower(3), Raise(2))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	// Order matters for ladder factors.
	assert.False(t, a.Equal(c))
}

func TestTermFactorsReturnsCopy(t *testing.T) {
	term, err := NewTerm(AlphabetLadder, Raise(1), Lower(0))
	require.NoError(t, err)

	fs := term.Factors()
	fs[0].Site = 99

	assert.Equal(t, 1, term.Factors()[0].Site)
}
