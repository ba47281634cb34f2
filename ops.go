package infix

import (
	"math"
	"strconv"
	"strings"
)

// Op is an arithmetic operator.
type Op int8

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

// Operators contains the bytes which are considered to be operators. The
// byte at index k is the text of Op(k+1).
const Operators = "+-*/%^"

type opinfo struct {
	text  string
	prec  int8
	unary bool
}

// optab is indexed by Op.
var optab = [...]opinfo{
	OpNone: {},
	OpAdd:  {"+", 1, true},
	OpSub:  {"-", 1, true},
	OpMul:  {"*", 2, false},
	OpDiv:  {"/", 2, false},
	OpMod:  {"%", 2, false},
	OpPow:  {"^", 3, false},
}

func (o Op) String() string {
	if o <= OpNone || int(o) >= len(optab) {
		return "Op(" + strconv.Itoa(int(o)) + ")"
	}
	return optab[o].text
}

// Prec returns the precedence tier of the operator. Higher is more binding.
func (o Op) Prec() int {
	return int(optab[o].prec)
}

// Unary returns whether the operator may be used as the sign of an operand.
func (o Op) Unary() bool {
	return optab[o].unary
}

// Apply computes x o y with float64 semantics. Division and remainder by
// zero produce infinities or NaN rather than errors.
func (o Op) Apply(x, y float64) float64 {
	switch o {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		return x / y
	case OpMod:
		return math.Mod(x, y)
	case OpPow:
		return math.Pow(x, y)
	default:
		panic("infix: apply of invalid operator " + o.String())
	}
}

// opToken is an operator located in a buffer.
type opToken struct {
	op  Op
	pos int
}

// end is the index just past the operator.
func (t opToken) end() int {
	return t.pos + len(t.op.String())
}

// opAt returns the operator starting at byte i of s, or OpNone. A sign which
// belongs to the exponent of a numeric literal, as in 1e-3, is not an
// operator.
func opAt(s string, i int) Op {
	k := strings.IndexByte(Operators, s[i])
	if k < 0 {
		return OpNone
	}
	o := Op(k + 1)
	if (o == OpAdd || o == OpSub) && exponentSign(s, i) {
		return OpNone
	}
	return o
}

// exponentSign reports whether the + or - at s[i] immediately follows the
// exponent marker of a numeric literal and precedes its exponent digits.
func exponentSign(s string, i int) bool {
	if i < 2 || i+1 >= len(s) || !isDigit(s[i+1]) {
		return false
	}
	if s[i-1] != 'e' && s[i-1] != 'E' {
		return false
	}
	// Scan the mantissa backward. It must contain a digit and must not be
	// the tail of an identifier.
	k := i - 1
	dig := false
	for k > 0 && (isDigit(s[k-1]) || s[k-1] == '.') {
		k--
		dig = dig || isDigit(s[k])
	}
	if !dig {
		return false
	}
	return k == 0 || !isNameByte(s[k-1])
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isNameByte(c byte) bool {
	return c == '_' || c == Marker || isLetter(c) || isDigit(c)
}

// nextOp finds the leftmost operator at or after from.
func nextOp(s string, from int) (opToken, bool) {
	for i := from; i < len(s); i++ {
		if o := opAt(s, i); o != OpNone {
			return opToken{o, i}, true
		}
	}
	return opToken{}, false
}

// maxOp finds the operator at or after from with the highest precedence,
// preferring the leftmost among equals.
func maxOp(s string, from int) (opToken, bool) {
	var best opToken
	found := false
	for i := from; i < len(s); i++ {
		o := opAt(s, i)
		if o == OpNone {
			continue
		}
		if !found || o.Prec() > best.op.Prec() {
			best = opToken{o, i}
			found = true
		}
	}
	return best, found
}

// lastOp finds the rightmost operator at or after to, scanning backward from
// the end of s.
func lastOp(s string, to int) (opToken, bool) {
	if to < 0 {
		to = 0
	}
	for i := len(s) - 1; i >= to; i-- {
		if o := opAt(s, i); o != OpNone {
			return opToken{o, i}, true
		}
	}
	return opToken{}, false
}

// stuck reports whether only whitespace separates two operators in s.
func stuck(a, b opToken, s string) bool {
	if a.pos > b.pos {
		a, b = b, a
	}
	if a.end() > b.pos {
		return false
	}
	return strings.TrimSpace(s[a.end():b.pos]) == ""
}
