// Package equations holds parsed balance equations as the validation core
// consumes them.
package equations

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind separates operators from operands
type TokenKind int

const (
	Operator TokenKind = iota
	// Variable covers names and numeric literals
	Variable
)

// Token is one element of an equation
type Token struct {
	Kind  TokenKind
	Value string
}

// Op and Var build tokens
func Op(v string) Token  { return Token{Kind: Operator, Value: v} }
func Var(v string) Token { return Token{Kind: Variable, Value: v} }

// IsNumber reports whether a variable token is a numeric literal
func IsNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Classification is the kind of balance an equation states
type Classification int

const (
	Total Classification = iota
	Compound
	Atom
	Energy
	VariableDefinition
	Specification
)

var classificationNames = map[Classification]string{
	Total:              "total",
	Compound:           "compound",
	Atom:               "atom",
	Energy:             "energy",
	VariableDefinition: "definition",
	Specification:      "specification",
}

func (c Classification) String() string {
	if s, ok := classificationNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Classification(%d)", int(c))
}

// ParseClassification accepts the names printed by String plus a few aliases
func ParseClassification(s string) (Classification, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "total", "overall":
		return Total, nil
	case "compound":
		return Compound, nil
	case "atom", "element":
		return Atom, nil
	case "energy", "heat":
		return Energy, nil
	case "definition", "variable", "variable_definition":
		return VariableDefinition, nil
	case "specification":
		return Specification, nil
	default:
		return Total, fmt.Errorf("equations: unknown classification %q", s)
	}
}

// Type is a classification plus the compound or element it is about
type Type struct {
	Classification Classification
	Target         string
}

// Equation is a parsed equation. Ref identifies it in results.
type Equation struct {
	Ref    string
	Tokens []Token
	Type   Type
}

// VariableNames returns the non-numeric variables left and right of the
// first "=".
func (e *Equation) VariableNames() (lhs, rhs []string) {
	right := false
	for _, tok := range e.Tokens {
		switch {
		case tok.Kind == Operator && tok.Value == "=" && !right:
			right = true
		case tok.Kind == Variable && !IsNumber(tok.Value):
			if right {
				rhs = append(rhs, tok.Value)
			} else {
				lhs = append(lhs, tok.Value)
			}
		}
	}
	return lhs, rhs
}

// AllVariableNames is the left side followed by the right side
func (e *Equation) AllVariableNames() []string {
	lhs, rhs := e.VariableNames()
	return append(lhs, rhs...)
}

// IsValid reports whether both sides name at least one variable
func (e *Equation) IsValid() bool {
	lhs, rhs := e.VariableNames()
	return len(lhs) > 0 && len(rhs) > 0
}

// Values returns the raw token values
func (e *Equation) Values() []string {
	out := make([]string, len(e.Tokens))
	for i, tok := range e.Tokens {
		out[i] = tok.Value
	}
	return out
}

// String renders the equation with single spaces between tokens
func (e *Equation) String() string {
	return strings.Join(e.Values(), " ")
}
