package parser

import "github.com/dkerns/plc/token"

// value is what every expression-producing grammar rule returns: a type
// mark, a shape (0 for scalar, a positive element count for an array
// result), and the operand text needed to use it. Shape > 0 values carry
// no Operand of their own; Array names the identifier whose elements
// materialize the result, whether that identifier is a real declared
// array or a compiler-introduced temporary.
type value struct {
	Operand string
	Type    token.TypeMark
	Shape   int
	Array   *token.IdentToken
}

func scalar(operand string, typ token.TypeMark) value {
	return value{Operand: operand, Type: typ}
}

func invalid() value {
	return value{Type: token.NONE}
}

func (v value) isArray() bool {
	return v.Shape > 0
}
