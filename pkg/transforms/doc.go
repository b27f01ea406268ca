// Package transforms maps fermionic operators to qubit operators under a
// chosen encoding. Two encodings are provided: Jordan-Wigner and
// Bravyi-Kitaev. Both extend linearly over the terms of the input and build
// each term as the ordered product of per-factor Pauli images, so the
// canonical anticommutation relations carry over exactly.
//
// The encoding is always an explicit parameter at the call site; there is no
// process-wide default.
package transforms
