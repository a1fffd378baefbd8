// Package parser turns expression text into symbolic expressions.
//
// The grammar is the usual infix one: + - * / with ^ (or the Python
// spelling **) for powers, unary minus, parentheses, function calls over
// the kernel's function table, the constants pi and e, and exact decimal
// literals. Any other identifier must be one of the declared free
// variables; everything else fails fast with a positioned Error.
package parser

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/mathviz/mathviz/symbolic"
)

// Error is a parse failure with a byte offset into the input.
type Error struct {
	Pos int
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Msg) }

func errAt(pos int, format string, args ...interface{}) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// scanner walks the input rune by rune, in the style of a line scanner.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) peekByte() byte {
	if s.pos >= len(s.input) {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) next() (token, error) {
	for s.pos < len(s.input) && (s.input[s.pos] == ' ' || s.input[s.pos] == '\t') {
		s.pos++
	}
	if s.pos >= len(s.input) {
		return token{kind: tokEOF, pos: s.pos}, nil
	}
	start := s.pos
	c := s.input[s.pos]
	switch c {
	case '+':
		s.pos++
		return token{tokPlus, "+", start}, nil
	case '-':
		s.pos++
		return token{tokMinus, "-", start}, nil
	case '*':
		s.pos++
		if s.peekByte() == '*' {
			s.pos++
			return token{tokCaret, "**", start}, nil
		}
		return token{tokStar, "*", start}, nil
	case '/':
		s.pos++
		return token{tokSlash, "/", start}, nil
	case '^':
		s.pos++
		return token{tokCaret, "^", start}, nil
	case '(':
		s.pos++
		return token{tokLParen, "(", start}, nil
	case ')':
		s.pos++
		return token{tokRParen, ")", start}, nil
	}
	if c >= '0' && c <= '9' || c == '.' {
		return s.scanNumber()
	}
	r := rune(c)
	if unicode.IsLetter(r) || c == '_' {
		for s.pos < len(s.input) {
			r := rune(s.input[s.pos])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			s.pos++
		}
		return token{tokIdent, s.input[start:s.pos], start}, nil
	}
	return token{}, errAt(start, "unexpected character %q", string(c))
}

func (s *scanner) scanNumber() (token, error) {
	start := s.pos
	seenDot := false
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if c >= '0' && c <= '9' {
			s.pos++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			s.pos++
			continue
		}
		// Scientific notation, only when an exponent digit follows.
		if (c == 'e' || c == 'E') && s.pos+1 < len(s.input) {
			rest := s.input[s.pos+1:]
			if len(rest) > 0 && (rest[0] >= '0' && rest[0] <= '9' ||
				(rest[0] == '+' || rest[0] == '-') && len(rest) > 1 && rest[1] >= '0' && rest[1] <= '9') {
				s.pos++ // e
				if rest[0] == '+' || rest[0] == '-' {
					s.pos++
				}
				for s.pos < len(s.input) && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
					s.pos++
				}
			}
		}
		break
	}
	text := s.input[start:s.pos]
	if text == "." {
		return token{}, errAt(start, "malformed number")
	}
	return token{tokNumber, text, start}, nil
}

type parser struct {
	sc   scanner
	tok  token
	vars map[string]bool
}

func (p *parser) advance() error {
	t, err := p.sc.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// Parse parses text into a simplified expression. The declared variable
// names are the only identifiers admitted beyond the function table and
// the constants pi and e.
func Parse(text string, vars ...string) (symbolic.Expr, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errAt(0, "empty expression")
	}
	p := &parser{sc: scanner{input: text}, vars: map[string]bool{}}
	for _, v := range vars {
		p.vars[v] = true
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, errAt(p.tok.pos, "unexpected %q", p.tok.text)
	}
	return e.Simplify(), nil
}

func (p *parser) parseSum() (symbolic.Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		neg := p.tok.kind == tokMinus
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		if neg {
			right = symbolic.MulOf(symbolic.N(-1), right)
		}
		left = symbolic.AddOf(left, right)
	}
	return left, nil
}

func (p *parser) parseProduct() (symbolic.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		div := p.tok.kind == tokSlash
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if div {
			right = symbolic.PowOf(right, symbolic.N(-1))
		}
		left = symbolic.MulOf(left, right)
	}
	return left, nil
}

func (p *parser) parseUnary() (symbolic.Expr, error) {
	if p.tok.kind == tokMinus {
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return symbolic.MulOf(symbolic.N(-1), inner), nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (symbolic.Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokCaret {
		if err := p.advance(); err != nil {
			return nil, err
		}
		// Right-associative; the exponent may carry its own sign.
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return symbolic.PowOf(base, exp), nil
	}
	return base, nil
}

func (p *parser) parseAtom() (symbolic.Expr, error) {
	switch p.tok.kind {
	case tokNumber:
		r := new(big.Rat)
		if _, ok := r.SetString(p.tok.text); !ok {
			return nil, errAt(p.tok.pos, "malformed number %q", p.tok.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return symbolic.NRat(r), nil

	case tokIdent:
		name := p.tok.text
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokLParen {
			if !symbolic.IsKnownFunc(name) {
				return nil, errAt(pos, "unknown function %q", name)
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			if p.tok.kind != tokRParen {
				return nil, errAt(p.tok.pos, "expected ')' to close %s(", name)
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			e, _ := symbolic.Call(name, arg)
			return e, nil
		}
		switch name {
		case "pi":
			return symbolic.Pi(), nil
		case "e":
			return symbolic.E(), nil
		}
		if p.vars[name] {
			return symbolic.S(name), nil
		}
		if symbolic.IsKnownFunc(name) {
			return nil, errAt(pos, "function %q needs an argument", name)
		}
		return nil, errAt(pos, "unknown identifier %q", name)

	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, errAt(p.tok.pos, "unbalanced parentheses")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil

	case tokEOF:
		return nil, errAt(p.tok.pos, "unexpected end of expression")
	}
	return nil, errAt(p.tok.pos, "unexpected %q", p.tok.text)
}

// ParseBound parses a constant expression such as "2*pi" or "-1.5" and
// evaluates it to a float. Used for domain and parameter bounds.
func ParseBound(text string) (float64, error) {
	e, err := Parse(text)
	if err != nil {
		return 0, err
	}
	v, ok := e.Eval()
	if !ok {
		return 0, errAt(0, "bound %q is not a constant", text)
	}
	return v.Float64(), nil
}
