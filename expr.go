package infix

import (
	"strconv"
	"strings"
)

// Expr evaluates a complete expression, including calls to the functions
// sin, cos, tan, ln, and sqrt. Function arguments must be parenthesized.
// It is not safe to use an Expr concurrently.
type Expr struct {
	state
}

// New creates an expression resolver for src. Trigonometric functions use
// degrees unless the Radians option is given.
func New(src string, opts ...Option) (*Expr, error) {
	s, err := newState(src, opts)
	if err != nil {
		return nil, err
	}
	if k := CheckParens(src); k >= 0 {
		return nil, formatErr(src, k, "unbalanced parentheses")
	}
	return &Expr{s}, nil
}

// Eval evaluates the expression.
func (e *Expr) Eval() (float64, error) {
	return e.run(e.reduce)
}

func (e *Expr) reduce() (float64, error) {
	n := e.limit()
	for i := 0; i < n; i++ {
		tok, ok := nextFunc(e.buf, 0)
		if !ok {
			c, err := e.child(e.buf)
			if err != nil {
				return 0, err
			}
			if k := CheckParens(c.buf); k >= 0 {
				return 0, formatErr(c.buf, k, "unbalanced parentheses")
			}
			return (&Group{c}).reduce()
		}
		if err := e.step(tok); err != nil {
			return 0, err
		}
	}
	return 0, e.diverged("function", n)
}

// step replaces the call beginning with tok by a variable holding its value.
func (e *Expr) step(tok funcToken) error {
	buf := e.buf
	name := tok.fn.String()
	k := strings.IndexByte(buf[tok.end():], '(')
	if k < 0 {
		return formatErr(buf, tok.pos, "missing argument list for function "+name)
	}
	open := tok.end() + k
	if between := buf[tok.end():open]; strings.TrimSpace(between) != "" {
		return formatErr(buf, tok.end(), "text "+strconv.Quote(between)+" cannot follow function name "+name)
	}
	shut := matchParen(buf, open)
	if shut < 0 {
		return formatErr(buf, open, "missing closing parenthesis for function "+name)
	}
	if k := shut + 1; k < len(buf) && (isNameByte(buf[k]) || buf[k] == '.') {
		// The operand would merge with the call's synthetic name.
		return formatErr(buf, k, "text cannot follow call to function "+name)
	}
	c, err := e.child(buf[open+1 : shut])
	if err != nil {
		return err
	}
	x, err := (&Expr{c}).reduce()
	if err != nil {
		return err
	}
	r := tok.fn.Apply(x, e.deg)
	e.buf = buf[:tok.pos] + e.fold("function", buf[tok.pos:shut+1], r) + buf[shut+1:]
	return nil
}

// matchParen returns the index of the parenthesis closing the one at open,
// or -1 if it is never closed.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// EvalString is a shortcut to create an expression from src and evaluate it.
func EvalString(src string, opts ...Option) (float64, error) {
	e, err := New(src, opts...)
	if err != nil {
		return 0, err
	}
	return e.Eval()
}
