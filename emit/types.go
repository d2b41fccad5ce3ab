package emit

import (
	"fmt"

	"github.com/dkerns/plc/token"
)

// BadReg and BadType are the sentinel strings the emitter injects into its
// own output when it hits a defect it cannot recover from (empty function
// stack, null token, bad type mark) — the defect stays visible in the
// emitted IR rather than crashing the compiler.
const (
	BadReg  = "BAD_REG"
	BadType = "BAD_TYPE"
)

// llvmType maps a primitive type mark onto its LLVM textual type. STR
// values are always pointers to bytes.
func llvmType(tm token.TypeMark) string {
	switch tm {
	case token.INT:
		return "i32"
	case token.FLT:
		return "float"
	case token.BOOL_T:
		return "i1"
	case token.STR:
		return "i8*"
	default:
		return BadType
	}
}

// llvmArrayType returns the LLVM type for a value of the given primitive
// type and element count; n <= 0 means scalar.
func llvmArrayType(tm token.TypeMark, n int) string {
	base := llvmType(tm)
	if n <= 0 {
		return base
	}
	return fmt.Sprintf("[%d x %s]", n, base)
}

// zeroValue returns the textual zero-valued literal for a scalar type,
// used for the blank return CloseFunction inserts.
func zeroValue(tm token.TypeMark) string {
	switch tm {
	case token.INT:
		return "0"
	case token.FLT:
		return "0.0"
	case token.BOOL_T:
		return "false"
	case token.STR:
		return "null"
	default:
		return BadReg
	}
}
