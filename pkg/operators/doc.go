// Package operators implements symbolic fermionic and qubit operator algebra.
//
// An operator is a sum of terms, each term an ordered product of single-site
// factors with a complex coefficient. Two concrete operator types share the
// same underlying sum-of-terms representation and differ only in their legal
// action alphabet and in how products of terms are simplified:
//
//   - FermionOperator: ladder factors (creation/annihilation) whose products
//     are normal-ordered using the canonical anticommutation relations.
//   - QubitOperator: Pauli factors (X/Y/Z) whose products fold through the
//     single-qubit Pauli multiplication table.
//
// All operator values are immutable: every algebraic operation returns a new
// operator and never mutates its receiver or arguments.
package operators
