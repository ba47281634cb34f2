package infix

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Leaf evaluates a single operand: a literal, constant, or variable with at
// most one leading sign.
type Leaf struct {
	state
}

// NewLeaf creates a leaf resolver for src.
func NewLeaf(src string, opts ...Option) (*Leaf, error) {
	s, err := newState(src, opts)
	if err != nil {
		return nil, err
	}
	return &Leaf{s}, nil
}

// Eval evaluates the leaf.
func (v *Leaf) Eval() (float64, error) {
	return v.run(func() (float64, error) { return leaf(v.buf, v.vars) })
}

// leaf evaluates an operand under the given bindings.
func leaf(text string, vars *Bindings) (float64, error) {
	s := strings.TrimSpace(text)
	sign := 1.0
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = strings.TrimSpace(s[1:])
	}
	if s == "" {
		return 0, formatErr(text, -1, "missing operand")
	}
	if synthetic(s) {
		x, ok := vars.Lookup(s)
		if !ok {
			// Every synthetic name in a buffer was bound when it was spliced.
			return 0, formatErr(text, -1, "no binding for synthetic variable "+strconv.Quote(s))
		}
		return sign * x, nil
	}
	if x, ok := num(s); ok {
		return sign * x, nil
	}
	if !ValidName(s) {
		return 0, valueErr(text, "invalid value "+strconv.Quote(s))
	}
	switch {
	case strings.EqualFold(s, "pi"):
		return sign * math.Pi, nil
	case strings.EqualFold(s, "e"):
		return sign * math.E, nil
	}
	x, ok := vars.Lookup(s)
	if !ok {
		return 0, valueErr(text, "undefined variable "+strconv.Quote(s))
	}
	return sign * x, nil
}

// num parses a floating-point literal. Literals too large or too small to
// represent become infinities or zeros.
func num(s string) (float64, bool) {
	x, err := strconv.ParseFloat(s, 64)
	switch {
	case err == nil:
		return x, true
	case errors.Is(err, strconv.ErrRange):
		return x, true
	default:
		return 0, false
	}
}
