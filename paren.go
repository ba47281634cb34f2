package infix

import (
	"strings"
)

// Group evaluates an expression with parentheses but no function calls.
// Adjacent operands and groups are multiplied: "2(3+4)" and "(3+4)2" are
// both 14.
type Group struct {
	state
}

// NewGroup creates a parenthesis resolver for src. The parentheses in src
// must balance.
func NewGroup(src string, opts ...Option) (*Group, error) {
	s, err := newState(src, opts)
	if err != nil {
		return nil, err
	}
	if k := CheckParens(src); k >= 0 {
		return nil, formatErr(src, k, "unbalanced parentheses")
	}
	return &Group{s}, nil
}

// Eval evaluates the expression.
func (g *Group) Eval() (float64, error) {
	return g.run(g.reduce)
}

// CheckParens returns -1 if the parentheses in s balance. Otherwise, it
// returns the index of the first close parenthesis with no open parenthesis
// before it, or if there is none, the index of the first open parenthesis
// which is never closed.
func CheckParens(s string) int {
	// opens holds the indices of unclosed open parentheses.
	var opens []int
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			opens = append(opens, i)
		case ')':
			if len(opens) == 0 {
				return i
			}
			opens = opens[:len(opens)-1]
		}
	}
	if len(opens) > 0 {
		return opens[0]
	}
	return -1
}

// priorOpen finds the open parenthesis of the last of the most deeply nested
// groups, or -1 if there are no parentheses. No open parenthesis lies between
// the result and its matching close.
func priorOpen(s string) int {
	k, depth, best := -1, 0, -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			if depth >= best {
				k, best = i, depth
			}
			depth++
		case ')':
			depth--
		}
	}
	return k
}

func (g *Group) reduce() (float64, error) {
	n := g.limit()
	for i := 0; i < n; i++ {
		open := priorOpen(g.buf)
		if open < 0 {
			c, err := g.child(g.buf)
			if err != nil {
				return 0, err
			}
			return (&Chain{c}).reduce()
		}
		if err := g.step(open); err != nil {
			return 0, err
		}
	}
	return 0, g.diverged("parenthesis", n)
}

// step replaces the innermost group opened at open by a variable holding its
// value.
func (g *Group) step(open int) error {
	buf := g.buf
	k := strings.IndexByte(buf[open+1:], ')')
	if k < 0 {
		return formatErr(buf, open, "unclosed parenthesis")
	}
	shut := open + 1 + k
	if k == 0 {
		return formatErr(buf, open, "empty parentheses")
	}
	c, err := g.child(buf[open+1 : shut])
	if err != nil {
		return err
	}
	x, err := (&Chain{c}).reduce()
	if err != nil {
		return err
	}

	before := buf[:open]
	if t, ok := lastOp(before, 0); ok {
		before = before[t.end():]
	}
	after := buf[shut+1:]
	if t, ok := nextOp(after, 0); ok {
		after = after[:t.pos]
	}
	mulBefore := g.operand(before, false)
	mulAfter := g.operand(after, true)

	var b strings.Builder
	b.WriteString(strings.TrimSpace(buf[:open]))
	if mulBefore {
		b.WriteString(OpMul.String())
	}
	b.WriteString(g.fold("parenthesis", buf[open:shut+1], x))
	if mulAfter {
		b.WriteString(OpMul.String())
	}
	b.WriteString(strings.TrimSpace(buf[shut+1:]))
	g.buf = b.String()
	return nil
}

// operand reports whether the text beside a group ends (or, if first,
// begins) with something that multiplies the group.
func (g *Group) operand(side string, first bool) bool {
	side = strings.TrimSpace(side)
	if side == "" {
		return false
	}
	edge := side[len(side)-1]
	if first {
		edge = side[0]
	}
	switch {
	case first && edge == '(', !first && edge == ')':
		// Another group abuts this one.
		return true
	case first && edge == ')', !first && edge == '(':
		// This group is the whole content of an enclosing one.
		return false
	}
	fields := strings.Fields(side)
	tok := fields[len(fields)-1]
	if first {
		tok = fields[0]
	}
	tok = strings.NewReplacer("(", "", ")", "").Replace(tok)
	_, err := leaf(tok, g.vars)
	return err == nil
}
