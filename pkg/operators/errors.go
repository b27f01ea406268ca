package operators

import "errors"

// Error kinds surfaced by the algebra. All of them are construction or
// validation failures: operations are pure, so a failed call fails
// identically on retry and callers should never retry.
var (
	// ErrInvalidAction reports a factor whose action is outside the
	// operator's alphabet, or an otherwise malformed term (negative site,
	// duplicate Pauli site).
	ErrInvalidAction = errors.New("operators: invalid action for alphabet")

	// ErrIncompatibleOperators reports an algebraic operation mixing the
	// fermionic and qubit alphabets.
	ErrIncompatibleOperators = errors.New("operators: incompatible operator alphabets")

	// ErrInsufficientQubits reports a qubit budget smaller than the highest
	// site index touched by an operator.
	ErrInsufficientQubits = errors.New("operators: insufficient qubit count")

	// ErrToleranceExceeded reports coefficients that differ by more than the
	// requested tolerance in a strict comparison. Test-helper only.
	ErrToleranceExceeded = errors.New("operators: coefficients differ beyond tolerance")
)
