package operators

import "fmt"

// Alphabet identifies the closed set of single-site actions an operator type
// accepts.
type Alphabet string

const (
	// AlphabetLadder is the fermionic alphabet (creation/annihilation).
	AlphabetLadder Alphabet = "ladder"
	// AlphabetPauli is the qubit alphabet (Pauli X/Y/Z).
	AlphabetPauli Alphabet = "pauli"
)

// Action is a single-site operator factor kind.
type Action uint8

const (
	// Create is the fermionic creation operator a†.
	Create Action = iota
	// Annihilate is the fermionic annihilation operator a.
	Annihilate
	// PauliX is the single-qubit Pauli X operator.
	PauliX
	// PauliY is the single-qubit Pauli Y operator.
	PauliY
	// PauliZ is the single-qubit Pauli Z operator.
	PauliZ
)

// String renders the action the way terms print: "^" for creation, nothing
// for annihilation, the letter for Paulis.
func (a Action) String() string {
	switch a {
	case Create:
		return "^"
	case Annihilate:
		return ""
	case PauliX:
		return "X"
	case PauliY:
		return "Y"
	case PauliZ:
		return "Z"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Contains reports whether the action belongs to this alphabet.
func (al Alphabet) Contains(a Action) bool {
	switch al {
	case AlphabetLadder:
		return a == Create || a == Annihilate
	case AlphabetPauli:
		return a == PauliX || a == PauliY || a == PauliZ
	}
	return false
}
