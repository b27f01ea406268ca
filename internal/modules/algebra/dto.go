// Package algebra translates between the wire representation of symbolic
// operators and the pkg/operators types.
package algebra

import (
	"fmt"

	"github.com/spinworks/qop/pkg/operators"
)

// ComplexDTO is the wire form of a complex coefficient.
type ComplexDTO struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

// FactorDTO is the wire form of a single operator factor.
// Ladder actions are "raise" and "lower"; Pauli actions are "X", "Y", "Z".
type FactorDTO struct {
	Site   int    `json:"site"`
	Action string `json:"action"`
}

// TermDTO is the wire form of one term in an operator sum.
type TermDTO struct {
	Coefficient ComplexDTO  `json:"coefficient"`
	Factors     []FactorDTO `json:"factors"`
}

// OperatorDTO is the wire form of a full operator.
// Alphabet is "ladder" or "pauli".
type OperatorDTO struct {
	Alphabet string    `json:"alphabet"`
	Terms    []TermDTO `json:"terms"`
}

func parseAction(name string) (operators.Action, error) {
	switch name {
	case "raise":
		return operators.Create, nil
	case "lower":
		return operators.Annihilate, nil
	case "X", "x":
		return operators.PauliX, nil
	case "Y", "y":
		return operators.PauliY, nil
	case "Z", "z":
		return operators.PauliZ, nil
	}
	return 0, fmt.Errorf("%w: unknown action %q", operators.ErrInvalidAction, name)
}

func renderAction(a operators.Action) string {
	switch a {
	case operators.Create:
		return "raise"
	case operators.Annihilate:
		return "lower"
	case operators.PauliX:
		return "X"
	case operators.PauliY:
		return "Y"
	case operators.PauliZ:
		return "Z"
	}
	return "?"
}

func parseFactors(dtos []FactorDTO) ([]operators.Factor, error) {
	factors := make([]operators.Factor, 0, len(dtos))
	for _, f := range dtos {
		action, err := parseAction(f.Action)
		if err != nil {
			return nil, err
		}
		factors = append(factors, operators.Factor{Site: f.Site, Action: action})
	}
	return factors, nil
}

// ParseFermion builds a fermionic operator from its wire form. Each term is
// assembled as a product of single-factor operators, so input sequences are
// not required to be normal ordered: the algebra's reduction rules apply
// during parsing.
func ParseFermion(dto OperatorDTO) (*operators.FermionOperator, error) {
	result := operators.ZeroFermion()
	for _, t := range dto.Terms {
		factors, err := parseFactors(t.Factors)
		if err != nil {
			return nil, err
		}
		term := operators.FermionIdentity(complex(t.Coefficient.Real, t.Coefficient.Imag))
		for _, f := range factors {
			single, err := operators.NewFermionOperator(1, f)
			if err != nil {
				return nil, err
			}
			term = term.Mul(single)
		}
		result = result.Add(term)
	}
	return result, nil
}

// ParseQubit builds a qubit operator from its wire form. Repeated sites in
// a term are legal on the wire and collapse through the Pauli product rule.
func ParseQubit(dto OperatorDTO) (*operators.QubitOperator, error) {
	result := operators.ZeroQubit()
	for _, t := range dto.Terms {
		factors, err := parseFactors(t.Factors)
		if err != nil {
			return nil, err
		}
		term := operators.QubitIdentity(complex(t.Coefficient.Real, t.Coefficient.Imag))
		for _, f := range factors {
			single, err := operators.NewQubitOperator(1, f)
			if err != nil {
				return nil, err
			}
			term = term.Mul(single)
		}
		result = result.Add(term)
	}
	return result, nil
}

// ParseOperator dispatches on the DTO alphabet.
func ParseOperator(dto OperatorDTO) (operators.Operator, error) {
	switch operators.Alphabet(dto.Alphabet) {
	case operators.AlphabetLadder:
		return ParseFermion(dto)
	case operators.AlphabetPauli:
		return ParseQubit(dto)
	}
	return nil, fmt.Errorf("%w: unknown alphabet %q", operators.ErrInvalidAction, dto.Alphabet)
}

// RenderTerm converts a single term's factor sequence to its wire form.
func RenderTerm(term operators.Term) []FactorDTO {
	factors := term.Factors()
	dtos := make([]FactorDTO, 0, len(factors))
	for _, f := range factors {
		dtos = append(dtos, FactorDTO{Site: f.Site, Action: renderAction(f.Action)})
	}
	return dtos
}

// RenderOperator converts an operator to its wire form.
// Terms come out in the operator's canonical order, so rendering is
// deterministic for equal operators.
func RenderOperator(op operators.Operator) OperatorDTO {
	terms := op.Terms()
	dto := OperatorDTO{
		Alphabet: string(op.Alphabet()),
		Terms:    make([]TermDTO, 0, len(terms)),
	}
	for _, tv := range terms {
		factors := tv.Term.Factors()
		fdtos := make([]FactorDTO, 0, len(factors))
		for _, f := range factors {
			fdtos = append(fdtos, FactorDTO{Site: f.Site, Action: renderAction(f.Action)})
		}
		dto.Terms = append(dto.Terms, TermDTO{
			Coefficient: ComplexDTO{Real: real(tv.Coefficient), Imag: imag(tv.Coefficient)},
			Factors:     fdtos,
		})
	}
	return dto
}
