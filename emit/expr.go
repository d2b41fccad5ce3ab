package emit

import (
	"github.com/dkerns/plc/token"
)

// Convert emits whatever instruction is needed to turn operand of type
// from into type to, returning the (possibly identical) resulting
// operand. Only INT<->FLT and INT<->BOOL are legal conversions; anything
// else is a compiler defect and yields BadReg.
func (e *Emitter) Convert(operand string, from, to token.TypeMark) string {
	if from == to {
		return operand
	}
	f := e.current()
	if f == nil {
		return BadReg
	}

	reg := f.newReg()
	switch {
	case from == token.INT && to == token.FLT:
		f.emit("%s = sitofp i32 %s to float", reg, operand)
	case from == token.FLT && to == token.INT:
		f.emit("%s = fptosi float %s to i32", reg, operand)
	case from == token.BOOL_T && to == token.INT:
		f.emit("%s = zext i1 %s to i32", reg, operand)
	case from == token.INT && to == token.BOOL_T:
		f.emit("%s = icmp ne i32 %s, 0", reg, operand)
	default:
		e.fail("no conversion from %s to %s", from, to)
		return BadReg
	}
	return reg
}

var arithOpcode = map[token.Kind]struct{ i, f string }{
	token.PLUS:  {"add", "fadd"},
	token.MINUS: {"sub", "fsub"},
	token.STAR:  {"mul", "fmul"},
	token.SLASH: {"sdiv", "fdiv"},
}

var relOpcode = map[token.Kind]struct{ i, f string }{
	token.LESS:      {"slt", "olt"},
	token.GREATER:   {"sgt", "ogt"},
	token.LESSEQ:    {"sle", "ole"},
	token.GREATEREQ: {"sge", "oge"},
	token.EQEQ:      {"eq", "oeq"},
	token.NOTEQ:     {"ne", "one"},
}

var logicalOpcode = map[token.Kind]string{
	token.AND: "and",
	token.OR:  "or",
}

// BinaryOp emits the instruction for op over two already-typed operands,
// converting each to resultType first when the operator is arithmetic
// (resultType is the promoted arithmetic type). A relational operator
// compares at the operands' shared type, or, when their types differ,
// converts both to FLT if either is FLT and to INT otherwise. A logical
// operator applies directly at the left operand's type. Returns the result
// operand and its type (BOOL_T for relational operators, the left
// operand's type for logical ones, resultType for arithmetic ones).
func (e *Emitter) BinaryOp(op token.Kind, leftOperand string, leftType token.TypeMark, rightOperand string, rightType token.TypeMark, resultType token.TypeMark) (string, token.TypeMark) {
	f := e.current()
	if f == nil {
		return BadReg, token.NONE
	}

	if opc, ok := arithOpcode[op]; ok {
		l := e.Convert(leftOperand, leftType, resultType)
		r := e.Convert(rightOperand, rightType, resultType)
		reg := f.newReg()
		mnemonic := opc.i
		if resultType == token.FLT {
			mnemonic = opc.f
		}
		f.emit("%s = %s %s %s, %s", reg, mnemonic, llvmType(resultType), l, r)
		return reg, resultType
	}

	if opc, ok := relOpcode[op]; ok {
		operandType := leftType
		if leftType != rightType {
			operandType = token.INT
			if leftType == token.FLT || rightType == token.FLT {
				operandType = token.FLT
			}
		}
		l := e.Convert(leftOperand, leftType, operandType)
		r := e.Convert(rightOperand, rightType, operandType)
		reg := f.newReg()
		cmp := "icmp"
		cond := opc.i
		if operandType == token.FLT {
			cmp = "fcmp"
			cond = opc.f
		}
		f.emit("%s = %s %s %s %s, %s", reg, cmp, cond, llvmType(operandType), l, r)
		return reg, token.BOOL_T
	}

	if mnemonic, ok := logicalOpcode[op]; ok {
		reg := f.newReg()
		f.emit("%s = %s %s %s, %s", reg, mnemonic, llvmType(leftType), leftOperand, rightOperand)
		return reg, leftType
	}

	e.fail("BinaryOp: unsupported operator %s", op)
	return BadReg, token.NONE
}

// UnaryOp emits negation (MINUS) or logical/bitwise complement (NOT, the
// reserved word 'not', emitted as an xor with all-ones: true for BOOL, -1
// for INT).
func (e *Emitter) UnaryOp(op token.Kind, operand string, typ token.TypeMark) (string, token.TypeMark) {
	f := e.current()
	if f == nil {
		return BadReg, token.NONE
	}

	reg := f.newReg()
	switch {
	case op == token.MINUS && typ == token.INT:
		f.emit("%s = sub i32 0, %s", reg, operand)
	case op == token.MINUS && typ == token.FLT:
		f.emit("%s = fsub float 0.0, %s", reg, operand)
	case op == token.MINUS && typ == token.BOOL_T:
		f.emit("%s = xor i1 %s, true", reg, operand)
	case op == token.NOT && typ == token.BOOL_T:
		f.emit("%s = xor i1 %s, true", reg, operand)
	case op == token.NOT && typ == token.INT:
		f.emit("%s = xor i32 %s, -1", reg, operand)
	default:
		e.fail("UnaryOp: unsupported operator %s on %s", op, typ)
		return BadReg, token.NONE
	}
	return reg, typ
}
