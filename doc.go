// Package infix evaluates infix arithmetic expressions to float64 values.
//
// Expressions contain numbers, variables, the operators + - * / % ^,
// parentheses, the constants e and pi, and the functions sin, cos, tan, ln,
// and sqrt. "2(3+4)" and "(3+4)2" are implicit multiplications. Operators of
// the same precedence are folded left to right, including ^, so "2^3^2" is
// 64.
//
// Evaluation works directly on the text. Each step finds the next function
// call, innermost parenthesized group, or highest-precedence operator,
// evaluates it, and replaces it with a synthetic variable holding its value,
// until a single operand remains. Synthetic variable names begin with Marker,
// which can never begin a user variable name.
//
// The resolvers are layered. Expr handles function calls and hands the rest
// to Group, which handles parentheses and hands the rest to Chain, which
// handles operators and hands single operands to Leaf. Each can also be used
// on its own for text that it fully handles.
package infix
