package emit

import (
	"strings"

	"github.com/dkerns/plc/token"
)

// CallBuilder accumulates a procedure call's arguments as they are parsed
// one at a time, converting each to its declared parameter type before it
// is appended to the eventual call instruction.
type CallBuilder struct {
	callee *token.IdentToken
	symbol string
	args   []string
}

// ProcCallBegin starts a call to callee, resolving whether it is a
// user-defined function (its own IR symbol) or a runtime builtin (a
// possibly-renamed external symbol, e.g. sqrt -> altsqrt).
func (e *Emitter) ProcCallBegin(callee *token.IdentToken) *CallBuilder {
	symbol := "@" + callee.Lexeme
	if callee.Symbol != "" {
		symbol = "@" + callee.Symbol
	} else if rt := RuntimeSymbol(callee.Lexeme); rt != "" {
		symbol = "@" + rt
	}
	return &CallBuilder{callee: callee, symbol: symbol}
}

// Arg converts operand from its expression type to the i'th parameter's
// declared type and appends it to the pending call.
func (cb *CallBuilder) Arg(e *Emitter, operand string, operandType token.TypeMark) {
	i := len(cb.args)
	paramType := operandType
	if p, ok := cb.callee.GetParam(i); ok {
		paramType = p.Type
	}
	converted := e.Convert(operand, operandType, paramType)
	cb.args = append(cb.args, llvmType(paramType)+" "+converted)
}

// ProcCallEnd emits the call instruction and returns its result operand
// and type (an empty operand typed NONE for a callee whose type is NONE,
// which is called as void).
func (e *Emitter) ProcCallEnd(cb *CallBuilder) (string, token.TypeMark) {
	f := e.current()
	if f == nil {
		return BadReg, token.NONE
	}

	retType := llvmType(cb.callee.Type)
	if cb.callee.Type == token.NONE {
		retType = "void"
		f.emit("call %s %s(%s)", retType, cb.symbol, strings.Join(cb.args, ", "))
		return "", token.NONE
	}

	reg := f.newReg()
	f.emit("%s = call %s %s(%s)", reg, retType, cb.symbol, strings.Join(cb.args, ", "))
	return reg, cb.callee.Type
}
