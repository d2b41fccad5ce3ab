// Package typecheck implements the operator/operand compatibility rules
// and array-shape checks. Every function here is pure: callers pass the
// operator token for context and get back a verdict, never an abort.
package typecheck

import "github.com/dkerns/plc/token"

// compatible is the symmetric-where-noted primitive compatibility matrix
// from the spec: INT<->INT,FLT,BOOL; FLT<->FLT,INT; BOOL<->BOOL,INT;
// STR<->STR only; NONE compatible with nothing.
var compatible = map[token.TypeMark]map[token.TypeMark]bool{
	token.INT:    {token.INT: true, token.FLT: true, token.BOOL_T: true},
	token.FLT:    {token.FLT: true, token.INT: true},
	token.BOOL_T: {token.BOOL_T: true, token.INT: true},
	token.STR:    {token.STR: true},
}

// Compatible reports whether a and b may appear together per the
// primitive compatibility matrix.
func Compatible(a, b token.TypeMark) bool {
	if a == token.NONE || b == token.NONE {
		return false
	}
	return compatible[a][b]
}

// ConditionOK reports whether an if/for condition's type is usable as a
// boolean.
func ConditionOK(t token.TypeMark) bool {
	return Compatible(t, token.BOOL_T)
}

// LogicalOK checks the & | not family: both operands identical and
// either both INT or both BOOL.
func LogicalOK(left, right token.TypeMark) bool {
	if left != right {
		return false
	}
	return left == token.INT || left == token.BOOL_T
}

// ArithResult validates + - * / and returns the promoted result type.
// Operands must be compatible and neither may be BOOL; the result
// promotes to FLT if either operand is FLT, else INT.
func ArithResult(left, right token.TypeMark) (token.TypeMark, bool) {
	if left == token.BOOL_T || right == token.BOOL_T {
		return token.NONE, false
	}
	if !Compatible(left, right) {
		return token.NONE, false
	}
	if left == token.FLT || right == token.FLT {
		return token.FLT, true
	}
	return token.INT, true
}

// RelationOK validates a relational operator's operands. For STR only ==
// and != are permitted. The result, when valid, is always BOOL.
func RelationOK(op token.Kind, left, right token.TypeMark) bool {
	if !Compatible(left, right) {
		return false
	}
	if left == token.STR || right == token.STR {
		return op == token.EQEQ || op == token.NOTEQ
	}
	return true
}

// AssignableOK validates assignment/return operand compatibility. No
// further restriction beyond the primitive matrix.
func AssignableOK(from, to token.TypeMark) bool {
	return Compatible(from, to)
}

// IndexOK reports whether an index expression's type is usable to index
// an array; it must be exactly INT.
func IndexOK(indexType token.TypeMark) bool {
	return indexType == token.INT
}

// ShapeCompatible implements the array-size check: both scalar, both
// arrays of equal length, or one scalar and the other an array of any
// positive length (scalar broadcasts). Mismatched nonzero lengths fail.
func ShapeCompatible(a, b int) bool {
	if a == b {
		return true
	}
	return a == 0 || b == 0
}
