package infix

import "strings"

// Chain evaluates an expression of operands and operators without
// parentheses or function calls.
//
// The chain is reduced by repeatedly folding the leftmost operator of the
// highest precedence tier. In particular, exponentiation is folded left to
// right: "2^3^2" is (2^3)^2 = 64, not 2^(3^2).
type Chain struct {
	state
}

// NewChain creates an operator chain resolver for src.
func NewChain(src string, opts ...Option) (*Chain, error) {
	s, err := newState(src, opts)
	if err != nil {
		return nil, err
	}
	return &Chain{s}, nil
}

// Eval evaluates the chain.
func (c *Chain) Eval() (float64, error) {
	return c.run(c.reduce)
}

// reduce folds operator applications until none remain.
func (c *Chain) reduce() (float64, error) {
	n := c.limit()
	for i := 0; i < n; i++ {
		tok, ok := maxOp(c.buf, 0)
		if !ok {
			return leaf(c.buf, c.vars)
		}
		if err := c.step(tok); err != nil {
			return 0, err
		}
	}
	return 0, c.diverged("operator", n)
}

// step folds the application of the operator tok.
func (c *Chain) step(tok opToken) error {
	buf := c.buf
	if strings.TrimSpace(buf[tok.end():]) == "" {
		return formatErr(buf, tok.pos, "expression ends with operator "+tok.op.String())
	}
	if tok.pos == 0 && !tok.op.Unary() {
		return formatErr(buf, tok.pos, "operator "+tok.op.String()+" cannot begin an expression")
	}

	prev, hasPrev := lastOp(buf[:tok.pos], 0)
	if hasPrev && prev.pos != 0 && stuck(prev, tok, buf) {
		// Two binary operators in a row. Only the second of a pair may be a
		// sign, and tok is never a sign here.
		return formatErr(buf, tok.pos, "operator "+tok.op.String()+" follows operator "+prev.op.String())
	}

	next, hasNext := nextOp(buf, tok.end())
	if hasNext && stuck(tok, next, buf) {
		if tok.pos == 0 || !next.op.Unary() {
			return formatErr(buf, next.pos, "misplaced operator "+next.op.String())
		}
		// next is the sign of the right operand. The operand ends at the
		// operator after it, which must not be stuck to it as well.
		after, ok := nextOp(buf, next.end())
		if ok && stuck(next, after, buf) {
			return formatErr(buf, after.pos, "misplaced operator "+after.op.String())
		}
		next, hasNext = after, ok
	}
	end := len(buf)
	if hasNext {
		end = next.pos
	}

	if tok.pos == 0 {
		// Sign of the first operand.
		x, err := leaf(buf[:end], c.vars)
		if err != nil {
			return err
		}
		c.buf = c.fold("operator", buf[:end], x) + buf[end:]
		return nil
	}

	start := 0
	if hasPrev {
		start = prev.end()
	}
	a, err := leaf(buf[start:tok.pos], c.vars)
	if err != nil {
		return err
	}
	b, err := leaf(buf[tok.end():end], c.vars)
	if err != nil {
		return err
	}
	r := tok.op.Apply(a, b)
	c.buf = buf[:start] + c.fold("operator", buf[start:end], r) + buf[end:]
	return nil
}
