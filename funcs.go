package infix

import (
	"math"
	"strconv"
	"strings"
)

// Function is a named function of one real argument.
type Function int8

const (
	FuncNone Function = iota
	FuncSin
	FuncCos
	FuncTan
	FuncLn
	FuncSqrt
)

var funcnames = [...]string{
	FuncNone: "",
	FuncSin:  "sin",
	FuncCos:  "cos",
	FuncTan:  "tan",
	FuncLn:   "ln",
	FuncSqrt: "sqrt",
}

func (f Function) String() string {
	if f <= FuncNone || int(f) >= len(funcnames) {
		return "Function(" + strconv.Itoa(int(f)) + ")"
	}
	return funcnames[f]
}

// LookupFunction returns the function with the given name, ignoring case.
// The result is FuncNone if there is no such function.
func LookupFunction(name string) Function {
	for f := FuncSin; int(f) < len(funcnames); f++ {
		if strings.EqualFold(name, funcnames[f]) {
			return f
		}
	}
	return FuncNone
}

// Trig returns whether the function's argument is an angle.
func (f Function) Trig() bool {
	return f == FuncSin || f == FuncCos || f == FuncTan
}

// Apply evaluates the function at x. If degrees is set, the argument of a
// trigonometric function is reduced modulo 360 and converted to radians
// first; other functions ignore it.
func (f Function) Apply(x float64, degrees bool) float64 {
	r := x
	if degrees && f.Trig() {
		r = math.Mod(r, 360)
		r = r * math.Pi / 180
	}
	switch f {
	case FuncSin:
		return math.Sin(r)
	case FuncCos:
		return math.Cos(r)
	case FuncTan:
		return math.Tan(r)
	case FuncLn:
		return math.Log(x)
	case FuncSqrt:
		return math.Sqrt(x)
	default:
		panic("infix: apply of invalid function " + f.String())
	}
}

// funcToken is a function name located in a buffer.
type funcToken struct {
	fn  Function
	pos int
}

func (t funcToken) end() int {
	return t.pos + len(t.fn.String())
}

// nextFunc finds the leftmost function name at or after from. A name only
// matches where it does not continue an identifier to its left, so that
// e.g. "arcsin" is not read as "arc" followed by sin.
func nextFunc(s string, from int) (funcToken, bool) {
	for i := from; i < len(s); i++ {
		if i > 0 && (isLetter(s[i-1]) || s[i-1] == '_') {
			continue
		}
		for f := FuncSin; int(f) < len(funcnames); f++ {
			name := funcnames[f]
			if len(s)-i >= len(name) && strings.EqualFold(s[i:i+len(name)], name) {
				return funcToken{f, i}, true
			}
		}
	}
	return funcToken{}, false
}
