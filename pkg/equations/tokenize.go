package equations

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is returned for text that cannot be tokenized
var ErrSyntax = errors.New("equations: syntax error")

const operators = "+-*/()="

// Tokenize splits text into operators, names and numbers
func Tokenize(text string) ([]Token, error) {
	var tokens []Token
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case strings.IndexByte(operators, c) >= 0:
			tokens = append(tokens, Op(string(c)))
			i++
		case isLetter(c):
			j := i + 1
			for j < len(text) && (isLetter(text[j]) || isDigit(text[j])) {
				j++
			}
			tokens = append(tokens, Var(text[i:j]))
			i = j
		case isDigit(c) || c == '.':
			j := scanNumber(text, i)
			if j < len(text) && isLetter(text[j]) {
				return nil, fmt.Errorf("%w: malformed number at offset %d", ErrSyntax, i)
			}
			if !IsNumber(text[i:j]) {
				return nil, fmt.Errorf("%w: malformed number %q", ErrSyntax, text[i:j])
			}
			tokens = append(tokens, Var(text[i:j]))
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, c, i)
		}
	}
	return tokens, nil
}

// Parse tokenizes text into an equation
func Parse(ref, text string, typ Type) (*Equation, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("equation %s: %w", ref, err)
	}
	return &Equation{Ref: ref, Tokens: tokens, Type: typ}, nil
}

// MustParse is Parse for literals known to be well formed
func MustParse(ref, text string, typ Type) *Equation {
	eq, err := Parse(ref, text, typ)
	if err != nil {
		panic(err)
	}
	return eq
}

func scanNumber(text string, i int) int {
	j := i
	for j < len(text) && (isDigit(text[j]) || text[j] == '.') {
		j++
	}
	if j < len(text) && (text[j] == 'e' || text[j] == 'E') {
		k := j + 1
		if k < len(text) && (text[k] == '+' || text[k] == '-') {
			k++
		}
		if k < len(text) && isDigit(text[k]) {
			for k < len(text) && isDigit(text[k]) {
				k++
			}
			return k
		}
	}
	return j
}

func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
