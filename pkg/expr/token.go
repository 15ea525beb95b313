package expr

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

type TokenKind int

const (
	TokenNumber TokenKind = iota
	TokenPlus
	TokenTimes
	TokenLParen
	TokenRParen
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenPlus:
		return "+"
	case TokenTimes:
		return "*"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a single lexical element of an expression line. Value is only
// meaningful for TokenNumber.
type Token struct {
	Kind  TokenKind
	Value int64
}

func (t Token) String() string {
	if t.Kind == TokenNumber {
		return strconv.FormatInt(t.Value, 10)
	}
	return t.Kind.String()
}

// Operator returns the binary operator for a + or * token.
func (t Token) Operator() (Operator, bool) {
	switch t.Kind {
	case TokenPlus:
		return OperatorAdd, true
	case TokenTimes:
		return OperatorMul, true
	}
	return "", false
}

func Number(n int64) Token { return Token{Kind: TokenNumber, Value: n} }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

// Tokenize splits a line into tokens. Whitespace is dropped and a run of
// digits becomes a single number token.
func Tokenize(line string) ([]Token, error) {
	tokens := make([]Token, 0, len(line)/2+1)

	for i := 0; i < len(line); {
		c := line[i]
		switch {
		case isSpace(c):
			i++
		case isDigit(c):
			start := i
			for i < len(line) && isDigit(line[i]) {
				i++
			}
			n, err := strconv.ParseInt(line[start:i], 10, 64)
			if err != nil {
				return nil, &OverflowError{Literal: line[start:i]}
			}
			tokens = append(tokens, Number(n))
		case c == '+':
			tokens = append(tokens, Token{Kind: TokenPlus})
			i++
		case c == '*':
			tokens = append(tokens, Token{Kind: TokenTimes})
			i++
		case c == '(':
			tokens = append(tokens, Token{Kind: TokenLParen})
			i++
		case c == ')':
			tokens = append(tokens, Token{Kind: TokenRParen})
			i++
		default:
			r, _ := utf8.DecodeRuneInString(line[i:])
			return nil, &UnexpectedCharacterError{Char: r, Position: i}
		}
	}

	return tokens, nil
}
