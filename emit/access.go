package emit

import (
	"github.com/dkerns/plc/token"
)

// address resolves id (and, for arrays, an element index operand) to a
// pointer register usable by load/store. index == "" addresses the whole
// object (valid for scalars, or an array passed as a unit).
func (e *Emitter) address(id *token.IdentToken, index string) (ptr string, elemType token.TypeMark) {
	f := e.current()
	if f == nil || id == nil {
		return BadReg, token.NONE
	}

	handle := id.Handle
	if handle == "" {
		e.fail("undeclared handle for %q", id.Lexeme)
		return BadReg, token.NONE
	}

	if index == "" {
		return handle, id.Type
	}

	arrType := llvmArrayType(id.Type, id.NumElements)
	reg := f.newReg()
	f.emit("%s = getelementptr inbounds %s, %s* %s, i32 0, i32 %s",
		reg, arrType, arrType, handle, index)
	return reg, id.Type
}

// Load reads id (optionally indexed) into a fresh register and returns the
// operand and its type.
func (e *Emitter) Load(id *token.IdentToken, index string) (operand string, typ token.TypeMark) {
	f := e.current()
	if f == nil {
		return BadReg, token.NONE
	}
	ptr, elemType := e.address(id, index)
	if ptr == BadReg {
		return BadReg, token.NONE
	}
	reg := f.newReg()
	f.emit("%s = load %s, %s* %s", reg, llvmType(elemType), llvmType(elemType), ptr)
	return reg, elemType
}

// Store writes valueOperand (already of type valueType) into id, optionally
// indexed, converting first if valueType differs from id's declared type.
func (e *Emitter) Store(id *token.IdentToken, index string, valueOperand string, valueType token.TypeMark) {
	f := e.current()
	if f == nil {
		return
	}
	ptr, elemType := e.address(id, index)
	if ptr == BadReg {
		return
	}
	operand := e.Convert(valueOperand, valueType, elemType)
	f.emit("store %s %s, %s* %s", llvmType(elemType), operand, llvmType(elemType), ptr)
}
