package emit

import (
	"fmt"
	"math"
)

// IntOperand renders an INT literal's operand text.
func IntOperand(v int32) string {
	return fmt.Sprintf("%d", v)
}

// BoolOperand renders a BOOL literal's operand text.
func BoolOperand(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// FloatOperand renders an FLT literal's operand text as LLVM's
// hexadecimal floating-point constant form: the 16-hex-digit bit pattern
// of the value widened to double precision, regardless of whether the
// value would also round-trip through decimal notation. This sidesteps
// any ambiguity from float32-to-decimal-to-float32 rounding.
func FloatOperand(v float32) string {
	bits := math.Float64bits(float64(v))
	return fmt.Sprintf("0x%016X", bits)
}
