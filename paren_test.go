package infix

import (
	"testing"
)

func TestCheckParens(t *testing.T) {
	cases := []struct {
		s string
		k int
	}{
		{"", -1},
		{"1+2", -1},
		{"()", -1},
		{"(()())", -1},
		{"())(", 2},
		{"(()", 0},
		{"()(", 2},
		{")(", 0},
		{"1+(2", 2},
	}
	for _, c := range cases {
		if k := CheckParens(c.s); k != c.k {
			t.Errorf("%q: want %d, got %d", c.s, c.k, k)
		}
	}
}

func TestPriorOpen(t *testing.T) {
	cases := []struct {
		s string
		k int
	}{
		{"1+2", -1},
		{"(1)", 0},
		{"((1))", 1},
		{"(1)(2)", 3},
		{"((1)(2))", 4},
		{"((1))(2)", 1},
		{"2*(3+(4))-(5)", 5},
	}
	for _, c := range cases {
		if k := priorOpen(c.s); k != c.k {
			t.Errorf("%q: want %d, got %d", c.s, c.k, k)
		}
	}
}

func TestGroup(t *testing.T) {
	cases := []struct {
		src string
		r   float64
	}{
		{"(1+2)*3", 9},
		{"2(3+4)", 14},
		{"(3+4)2", 14},
		{"(1)(2)", 2},
		{"((2))", 2},
		{"x(2)", 6},
		{"(2)x", 6},
		{"2 (3) 4", 24},
		{"-(2)", -2},
		{"2^(1+1)", 4},
		{"(2)^(3)^(2)", 64},
		{"((1+2)(3+4))", 21},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			g, err := NewGroup(c.src, SetVar("x", 3))
			if err != nil {
				t.Fatal(err)
			}
			r, err := g.Eval()
			if err != nil {
				t.Fatal(err)
			}
			if r != c.r {
				t.Errorf("want %g, got %g", c.r, r)
			}
		})
	}
}

func TestGroupErrors(t *testing.T) {
	if _, err := NewGroup("(1+2"); KindOf(err) != KindFormat {
		t.Errorf("unbalanced: want format error, got %v", err)
	}
	cases := []string{"()", "1+()", "(1+)", "(*2)"}
	for _, src := range cases {
		g, err := NewGroup(src)
		if err != nil {
			t.Errorf("%q: %v", src, err)
			continue
		}
		if _, err := g.Eval(); KindOf(err) != KindFormat {
			t.Errorf("%q: want format error, got %v", src, err)
		}
	}
}
